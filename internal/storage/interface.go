package storage

import (
	"context"
	"errors"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// ErrNoRun is returned when a user has no persisted snapshot yet.
var ErrNoRun = errors.New("storage: no run found")

// RunRepository persists whole-state run snapshots. Saves are insert-only:
// existing rows are never updated, the latest row by CreatedAt wins.
type RunRepository interface {
	SaveRun(ctx context.Context, run *internal.Run) error
	LatestRun(ctx context.Context, userID string) (*internal.Run, error)
	DeleteRuns(ctx context.Context, userID string) error
	Close() error
}
