package tracker

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StorageKey names the blob that holds the practice log.
const StorageKey = "innervation-atlas-time-data"

// Event is one completed practice step. Duration is the configured phase
// length in seconds, not the measured time.
type Event struct {
	Section   string  `json:"section"`
	Routine   *string `json:"routine"`
	Movement  string  `json:"movement"`
	Duration  int     `json:"duration"`
	Timestamp int64   `json:"timestamp"`
}

// RoutineName returns the routine or an empty string.
func (event Event) RoutineName() string {
	if event.Routine == nil {
		return ""
	}
	return *event.Routine
}

// Time returns the event timestamp.
func (event Event) Time() time.Time {
	return time.UnixMilli(event.Timestamp)
}

type document struct {
	Sessions []Event `json:"sessions"`
}

// Store persists the log as a single blob. Load returns nil data when
// nothing has been saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(tracker *Tracker) {
		if logger != nil {
			tracker.logger = logger
		}
	}
}

// WithNow overrides the time source.
func WithNow(now func() time.Time) Option {
	return func(tracker *Tracker) {
		if now != nil {
			tracker.now = now
		}
	}
}

// Tracker owns the practice log and the open session.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
	now    func() time.Time
	data   document

	sessionStart        int64
	sessionOpen         bool
	section             string
	routine             *string
	lastSessionDuration int
}

// New loads the log from store. A missing or unreadable log starts empty.
// A nil store keeps the log in memory only.
func New(store Store, opts ...Option) *Tracker {
	tracker := &Tracker{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tracker)
	}
	tracker.data = tracker.load()
	return tracker
}

func (tracker *Tracker) load() document {
	empty := document{Sessions: []Event{}}
	if tracker.store == nil {
		return empty
	}

	raw, err := tracker.store.Load()
	if err != nil {
		tracker.logger.Error("load practice log", zap.Error(err))
		return empty
	}
	if len(raw) == 0 {
		return empty
	}

	var loaded document
	if err := json.Unmarshal(raw, &loaded); err != nil {
		tracker.logger.Error("decode practice log", zap.Error(err))
		return empty
	}
	if loaded.Sessions == nil {
		loaded.Sessions = []Event{}
	}
	return loaded
}

// saveLocked is best effort. The in-memory log stays authoritative.
func (tracker *Tracker) saveLocked() {
	if tracker.store == nil {
		return
	}
	raw, err := json.Marshal(tracker.data)
	if err != nil {
		tracker.logger.Error("encode practice log", zap.Error(err))
		return
	}
	if err := tracker.store.Save(raw); err != nil {
		tracker.logger.Warn("save practice log", zap.Error(err))
	}
}

// StartSession opens a session for section. An empty routine is stored as null.
// Any open session is stopped first.
func (tracker *Tracker) StartSession(section, routine string) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.stopSessionLocked()
	tracker.section = section
	tracker.routine = nil
	if routine != "" {
		name := routine
		tracker.routine = &name
	}
	tracker.sessionStart = tracker.now().UnixMilli()
	tracker.sessionOpen = true
}

// RecordMovement appends one event to the open session. It does nothing when
// no session is open or durationSeconds is below one.
func (tracker *Tracker) RecordMovement(label string, durationSeconds int) bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if !tracker.sessionOpen || durationSeconds < 1 {
		return false
	}

	tracker.data.Sessions = append(tracker.data.Sessions, Event{
		Section:   tracker.section,
		Routine:   copyRoutine(tracker.routine),
		Movement:  label,
		Duration:  durationSeconds,
		Timestamp: tracker.now().UnixMilli(),
	})
	tracker.saveLocked()
	return true
}

// StopSession closes the open session and remembers its recorded total.
func (tracker *Tracker) StopSession() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.stopSessionLocked()
}

func (tracker *Tracker) stopSessionLocked() {
	if tracker.sessionOpen {
		tracker.lastSessionDuration = tracker.currentSessionDurationLocked()
	}
	tracker.sessionOpen = false
	tracker.sessionStart = 0
	tracker.section = ""
	tracker.routine = nil
}

// SessionOpen reports whether a session is open.
func (tracker *Tracker) SessionOpen() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.sessionOpen
}

// CurrentSessionDuration sums the seconds recorded since the open session began.
func (tracker *Tracker) CurrentSessionDuration() int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.currentSessionDurationLocked()
}

func (tracker *Tracker) currentSessionDurationLocked() int {
	if !tracker.sessionOpen {
		return 0
	}
	total := 0
	for _, event := range tracker.data.Sessions {
		if event.Timestamp >= tracker.sessionStart {
			total += event.Duration
		}
	}
	return total
}

// LastSessionDuration returns the total of the most recently stopped session.
func (tracker *Tracker) LastSessionDuration() int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.lastSessionDuration
}

// Events returns a copy of the log.
func (tracker *Tracker) Events() []Event {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	events := make([]Event, len(tracker.data.Sessions))
	for i, event := range tracker.data.Sessions {
		event.Routine = copyRoutine(event.Routine)
		events[i] = event
	}
	return events
}

func copyRoutine(routine *string) *string {
	if routine == nil {
		return nil
	}
	name := *routine
	return &name
}
