// Package migration は golang-migrate を用いたスキーマ移行を実行します。
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Action はマイグレーションの操作種別です。
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

// ErrUnsupportedAction は未対応の操作が指定された場合に返却されます。
var ErrUnsupportedAction = errors.New("migration: unsupported action")

// ParseAction は文字列を Action に変換します。
func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionUp, ActionDown, ActionDrop, ActionVersion:
		return a, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedAction, raw)
	}
}

// SourceURL はマイグレーションディレクトリを file:// 形式の URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// Run は dir 配下のマイグレーションを dsn のデータベースに対して実行します。
func Run(action Action, dir, dsn string, logger *slog.Logger) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	if logger == nil {
		logger = slog.Default()
	}

	source, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case ActionUp:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case ActionDown:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case ActionDrop:
		return m.Drop()
	case ActionVersion:
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}

	return nil
}
