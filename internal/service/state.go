package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/engine"
	"github.com/giovanaluizapereira/planner-2026/internal/storage"
)

var (
	ErrNoActiveRun      = errors.New("service: no active run")
	ErrCategoryNotFound = errors.New("service: category not found")
	ErrEmptyScores      = errors.New("service: at least one category score is required")
)

// ScoreEntry is the confirmation shape shared by manual entry, quiz
// averaging, and AI extraction.
type ScoreEntry struct {
	Category string  `json:"category" validate:"required"`
	Score    float64 `json:"score" validate:"gte=0,lte=10"`
}

// StateView is what mutating operations hand back to the API layer:
// evolved categories, the XP total, and any level-up events the change
// produced.
type StateView struct {
	Categories []internal.CategoryRecord `json:"categories"`
	TotalXP    int                       `json:"total_xp"`
	LevelUps   []engine.LevelUp          `json:"level_ups,omitempty"`
	StartedAt  time.Time                 `json:"started_at"`
}

// runState is the in-memory working copy of one user's active run.
// The save path is armed only after the initial load settles, so loading
// a snapshot can never itself trigger a save.
type runState struct {
	categories []internal.CategoryRecord
	tracker    *engine.Tracker
	startedAt  time.Time
	armed      bool
}

// Manager owns the per-user run states, the level-up tracker, and the
// debounced persistence policy. State is keyed by authenticated user id;
// there is no cross-user sharing.
type Manager struct {
	repo   storage.RunRepository
	saver  *Saver
	logger internal.Logger
	now    func() time.Time

	mu     sync.Mutex
	states map[string]*runState
}

func NewManager(repo storage.RunRepository, saver *Saver, logger internal.Logger) *Manager {
	return &Manager{
		repo:   repo,
		saver:  saver,
		logger: logger,
		now:    time.Now,
		states: make(map[string]*runState),
	}
}

// StartRun begins a fresh run from confirmed base scores and saves the
// first snapshot immediately (not debounced), mirroring the original
// confirm-scores flow.
func (m *Manager) StartRun(ctx context.Context, userID string, entries []ScoreEntry) (*StateView, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyScores
	}
	categories := make([]internal.CategoryRecord, len(entries))
	for i, e := range entries {
		categories[i] = internal.CategoryRecord{
			Category: e.Category,
			Score:    clampScore(e.Score),
			Goals:    []internal.Goal{},
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := &runState{
		categories: categories,
		tracker:    engine.NewTracker(m.now()),
		startedAt:  m.now(),
		armed:      true,
	}
	st.tracker.Seed(engine.Evolve(categories))
	m.states[userID] = st

	run := m.buildRun(userID, st)
	if err := m.saver.SaveNow(ctx, run); err != nil {
		// Keep the in-memory run usable; persistence will retry on the
		// next dirty cycle.
		m.logger.Warnf("state: initial save failed for user %s: %v", userID, err)
	}
	return m.view(st, nil), nil
}

// Load returns the user's active run, reading the latest snapshot from
// storage when nothing is in memory. Returns ErrNoActiveRun when the user
// has never confirmed scores.
func (m *Manager) Load(ctx context.Context, userID string) (*StateView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.loadLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.view(st, nil), nil
}

func (m *Manager) loadLocked(ctx context.Context, userID string) (*runState, error) {
	if st, ok := m.states[userID]; ok {
		return st, nil
	}
	run, err := m.repo.LatestRun(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRun) {
			return nil, ErrNoActiveRun
		}
		return nil, err
	}
	st := &runState{
		categories: run.UserData,
		tracker:    engine.NewTracker(run.CreatedAt),
		startedAt:  run.CreatedAt,
	}
	// Seed so the first mutation compares against the loaded baseline
	// instead of firing spurious level-ups.
	st.tracker.Seed(engine.Evolve(run.UserData))
	st.armed = true
	m.states[userID] = st
	return st, nil
}

// UpdateGoals applies a mutation to one category's goal list, re-evolves
// scores, feeds the level-up tracker, and schedules a debounced save.
func (m *Manager) UpdateGoals(ctx context.Context, userID, category string, fn func([]internal.Goal) ([]internal.Goal, error)) (*StateView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.loadLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range st.categories {
		if c.Category == category {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrCategoryNotFound
	}

	goals, err := fn(st.categories[idx].Goals)
	if err != nil {
		return nil, err
	}

	next := make([]internal.CategoryRecord, len(st.categories))
	copy(next, st.categories)
	next[idx].Goals = goals
	st.categories = next

	evolved := engine.Evolve(st.categories)
	events := st.tracker.Observe(evolved)
	if st.armed {
		m.scheduleSave(userID)
	}
	return m.view(st, events), nil
}

// Reset wipes the user's run: all persisted snapshots are deleted, the
// pending save is cancelled, and in-memory state is dropped.
func (m *Manager) Reset(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saver.Cancel(userID)
	delete(m.states, userID)
	return m.repo.DeleteRuns(ctx, userID)
}

// Invalidate drops a user's in-memory state without touching storage.
// Called on sign-out / identity switch so no save can fire with stale
// cross-user data before the next load.
func (m *Manager) Invalidate(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saver.Cancel(userID)
	delete(m.states, userID)
}

func (m *Manager) scheduleSave(userID string) {
	m.saver.Schedule(userID, func() *internal.Run {
		m.mu.Lock()
		defer m.mu.Unlock()
		st, ok := m.states[userID]
		if !ok {
			return nil
		}
		return m.buildRun(userID, st)
	})
}

func (m *Manager) buildRun(userID string, st *runState) *internal.Run {
	evolved := engine.Evolve(st.categories)
	return &internal.Run{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserData:  st.categories,
		TotalXP:   engine.TotalXP(evolved),
		CreatedAt: m.now(),
	}
}

func (m *Manager) view(st *runState, events []engine.LevelUp) *StateView {
	evolved := engine.Evolve(st.categories)
	return &StateView{
		Categories: evolved,
		TotalXP:    engine.TotalXP(evolved),
		LevelUps:   events,
		StartedAt:  st.startedAt,
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > engine.MaxScore {
		return engine.MaxScore
	}
	return v
}
