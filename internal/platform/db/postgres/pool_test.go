package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/contratacao-empresa/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "user",
		Password:        "p@ss",
		Name:            "empresas",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", poolCfg.MaxConns)
	}
	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}
	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}
	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}
	if poolCfg.ConnConfig.Database != "empresas" {
		t.Errorf("expected database empresas, got %s", poolCfg.ConnConfig.Database)
	}
	if poolCfg.ConnConfig.Password != "p@ss" {
		t.Errorf("expected escaped password to round-trip, got %s", poolCfg.ConnConfig.Password)
	}
	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != applicationName {
		t.Errorf("expected application_name %s, got %s", applicationName, got)
	}
}

func TestBuildPoolConfig_KeepsDefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass",
		Name:     "empresas",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MinConns != 0 {
		t.Errorf("expected MinConns default 0, got %d", poolCfg.MinConns)
	}
	if poolCfg.MaxConns <= 0 {
		t.Errorf("expected pgx default MaxConns, got %d", poolCfg.MaxConns)
	}
}
