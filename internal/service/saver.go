package service

import (
	"context"
	"sync"
	"time"

	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/storage"
)

// Saver owns one pending snapshot write per user. Schedule cancels and
// re-arms the user's timer, so rapid successive changes coalesce into a
// single insert carrying the final state. Failures are logged and local
// state stays intact; the next dirty cycle retries.
type Saver struct {
	repo   storage.RunRepository
	logger internal.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

func NewSaver(repo storage.RunRepository, logger internal.Logger, delay time.Duration) *Saver {
	return &Saver{
		repo:    repo,
		logger:  logger,
		delay:   delay,
		pending: make(map[string]*time.Timer),
	}
}

// Schedule arms (or re-arms) the debounced write for a user. The snapshot
// callback runs at fire time so the write always carries the latest state;
// it may return nil to skip the write.
func (s *Saver) Schedule(userID string, snapshot func() *internal.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.pending[userID]; ok {
		t.Stop()
	}
	s.pending[userID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
		s.write(snapshot())
	})
}

// SaveNow writes a snapshot immediately, cancelling any pending write for
// the same user.
func (s *Saver) SaveNow(ctx context.Context, run *internal.Run) error {
	if run == nil {
		return nil
	}
	s.Cancel(run.UserID)
	if err := s.repo.SaveRun(ctx, run); err != nil {
		s.logger.Errorf("saver: failed to save run for user %s: %v", run.UserID, err)
		return err
	}
	return nil
}

// Cancel drops the pending write for a user, if any.
func (s *Saver) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[userID]; ok {
		t.Stop()
		delete(s.pending, userID)
	}
}

// Close cancels every pending write.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for userID, t := range s.pending {
		t.Stop()
		delete(s.pending, userID)
	}
}

func (s *Saver) write(run *internal.Run) {
	if run == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.repo.SaveRun(ctx, run); err != nil {
		s.logger.Errorf("saver: failed to save run for user %s: %v", run.UserID, err)
		return
	}
	s.logger.Debugf("saver: snapshot saved for user %s", run.UserID)
}
