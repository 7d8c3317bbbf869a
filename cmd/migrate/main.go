package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/config"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/db/migration"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/logger"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "assets/migrations", "directory containing migration files")
	)
	flag.Parse()

	raw := "up"
	if flag.NArg() > 0 {
		raw = flag.Arg(0)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	action, err := migration.ParseAction(raw)
	if err != nil {
		log.Error("invalid action", slog.Any("error", err))
		os.Exit(2)
	}

	if err := migration.Run(action, *migrationsDir, cfg.Database.DSN(), log); err != nil {
		log.Error("migration failed", slog.String("action", string(action)), slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("migration completed", slog.String("action", string(action)))
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}
