package engine

import (
	"time"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// LevelUp is emitted when a category's integer level increases between two
// observations of the same run.
type LevelUp struct {
	Category string `json:"category"`
	Days     int    `json:"days"`
	Level    int    `json:"level"`
}

// Tracker watches evolved scores across state changes and detects level-up
// events and dirtiness. It is not safe for concurrent use; callers hold
// their own lock around the owning run state.
type Tracker struct {
	prev    map[string]float64
	started time.Time
	now     func() time.Time
}

func NewTracker(started time.Time) *Tracker {
	return &Tracker{
		prev:    make(map[string]float64),
		started: started,
		now:     time.Now,
	}
}

// Seed records baseline scores without emitting events, so a freshly
// loaded run does not trigger spurious level-ups.
func (t *Tracker) Seed(categories []internal.CategoryRecord) {
	for _, c := range categories {
		score := c.CurrentScore
		if score == 0 {
			score = c.Score
		}
		t.prev[c.Category] = score
	}
}

// Observe compares evolved scores against the previous observation and
// returns any level-up events. A category seen for the first time is
// seeded silently.
func (t *Tracker) Observe(evolved []internal.CategoryRecord) []LevelUp {
	var events []LevelUp
	for _, c := range evolved {
		score := c.CurrentScore
		if score == 0 {
			score = c.Score
		}
		prev, seen := t.prev[c.Category]
		if seen && Level(score) > Level(prev) {
			events = append(events, LevelUp{
				Category: c.Category,
				Days:     t.elapsedDays(),
				Level:    Level(score),
			})
		}
		t.prev[c.Category] = score
	}
	return events
}

// elapsedDays counts days since the run started, starting at 1.
func (t *Tracker) elapsedDays() int {
	return int(t.now().Sub(t.started).Hours()/24) + 1
}
