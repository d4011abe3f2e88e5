package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// FileStorage keeps all runs in memory and flushes them to a JSON file
// through a debounced background worker, so bursts of snapshot inserts
// collapse into one disk write.
type FileStorage struct {
	runs         map[string][]*internal.Run // userID -> runs, newest first
	mu           sync.RWMutex
	runsFile     string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(runsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		runs:         make(map[string][]*internal.Run),
		runsFile:     runsFile,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load runs: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.runsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var runs []*internal.Run
	if err := json.NewDecoder(file).Decode(&runs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range runs {
		s.runs[r.UserID] = append(s.runs[r.UserID], r)
	}
	for userID := range s.runs {
		sort.Slice(s.runs[userID], func(i, j int) bool {
			return s.runs[userID][i].CreatedAt.After(s.runs[userID][j].CreatedAt)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) flush() error {
	s.mu.RLock()
	var runs []*internal.Run
	for _, userRuns := range s.runs {
		runs = append(runs, userRuns...)
	}
	s.mu.RUnlock()
	if runs == nil {
		runs = make([]*internal.Run, 0)
	}
	return atomicWriteFileJSON(s.runsFile, runs)
}

func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.flush(); err != nil {
				s.logger.Errorf("storage: error saving runs: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	return s.flush()
}

func (s *FileStorage) markDirty() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// --- RunRepository ---

func (s *FileStorage) SaveRun(ctx context.Context, run *internal.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := s.runs[run.UserID]
	inserted := false
	for i, existing := range runs {
		if existing.CreatedAt.Before(run.CreatedAt) {
			runs = append(runs[:i], append([]*internal.Run{run}, runs[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		runs = append(runs, run)
	}
	s.runs[run.UserID] = runs
	s.markDirty()
	return nil
}

func (s *FileStorage) LatestRun(ctx context.Context, userID string) (*internal.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs, ok := s.runs[userID]
	if !ok || len(runs) == 0 {
		return nil, ErrNoRun
	}
	cp := *runs[0]
	return &cp, nil
}

func (s *FileStorage) DeleteRuns(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, userID)
	s.markDirty()
	return nil
}

// --- Compile-time assertion ---
var _ RunRepository = (*FileStorage)(nil)
