package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- RunRepository ---

func (p *PostgresStorage) SaveRun(ctx context.Context, run *internal.Run) error {
	userData, err := json.Marshal(run.UserData)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO planner_runs (id, user_id, user_data, total_xp, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.UserID, userData, run.TotalXP, run.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert run: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) LatestRun(ctx context.Context, userID string) (*internal.Run, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, user_data, total_xp, created_at FROM planner_runs WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`,
		userID)
	var r internal.Run
	var userData []byte
	if err := row.Scan(&r.ID, &r.UserID, &userData, &r.TotalXP, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRun
		}
		p.logger.Errorf("failed to query latest run: %v", err)
		return nil, err
	}
	cats, err := internal.UnmarshalCategories(userData)
	if err != nil {
		p.logger.Errorf("failed to decode run user_data: %v", err)
		return nil, err
	}
	r.UserData = cats
	return &r, nil
}

func (p *PostgresStorage) DeleteRuns(ctx context.Context, userID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM planner_runs WHERE user_id = $1`, userID)
	if err != nil {
		p.logger.Errorf("failed to delete runs: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertion ---
var _ RunRepository = (*PostgresStorage)(nil)
