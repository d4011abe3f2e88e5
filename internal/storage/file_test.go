package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

func newTestFileStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.json")
	s, err := NewFileStorage(path, internal.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func testRun(userID string, createdAt time.Time, xp int) *internal.Run {
	return &internal.Run{
		ID:     userID + "-" + createdAt.Format(time.RFC3339Nano),
		UserID: userID,
		UserData: []internal.CategoryRecord{
			{Category: "Família", Score: 6, Goals: []internal.Goal{}},
		},
		TotalXP:   xp,
		CreatedAt: createdAt,
	}
}

func TestFileStorage_LatestRunPicksNewest(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.SaveRun(ctx, testRun("u1", base, 100)))
	require.NoError(t, s.SaveRun(ctx, testRun("u1", base.Add(time.Minute), 250)))
	// out-of-order insert must not become the latest
	require.NoError(t, s.SaveRun(ctx, testRun("u1", base.Add(-time.Minute), 50)))

	latest, err := s.LatestRun(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 250, latest.TotalXP)
}

func TestFileStorage_NoRun(t *testing.T) {
	s, _ := newTestFileStorage(t)
	_, err := s.LatestRun(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestFileStorage_DeleteRuns(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, testRun("u1", time.Now(), 100)))
	require.NoError(t, s.DeleteRuns(ctx, "u1"))

	_, err := s.LatestRun(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	ctx := context.Background()

	s, err := NewFileStorage(path, internal.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(ctx, testRun("u1", time.Now(), 100)))
	require.NoError(t, s.SaveRun(ctx, testRun("u1", time.Now().Add(time.Second), 180)))
	require.NoError(t, s.SaveRun(ctx, testRun("u2", time.Now(), 40)))
	require.NoError(t, s.Close()) // flushes

	s2, err := NewFileStorage(path, internal.NopLogger{})
	require.NoError(t, err)
	defer s2.Close()

	latest, err := s2.LatestRun(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 180, latest.TotalXP)

	other, err := s2.LatestRun(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 40, other.TotalXP)
}

func TestFileStorage_LatestRunReturnsCopy(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()
	require.NoError(t, s.SaveRun(ctx, testRun("u1", time.Now(), 100)))

	latest, err := s.LatestRun(ctx, "u1")
	require.NoError(t, err)
	latest.TotalXP = 999

	again, err := s.LatestRun(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, again.TotalXP)
}

func TestFileStorage_UsersAreIsolated(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, testRun("u1", time.Now(), 100)))
	require.NoError(t, s.SaveRun(ctx, testRun("u2", time.Now(), 200)))
	require.NoError(t, s.DeleteRuns(ctx, "u1"))

	latest, err := s.LatestRun(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 200, latest.TotalXP)
}
