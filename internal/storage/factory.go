package storage

import (
	"fmt"

	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/config"
)

// NewRunRepository builds the repository selected by STORAGE_BACKEND.
func NewRunRepository(cfg *config.Config, logger internal.Logger) (RunRepository, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.RunsFile, logger)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}
