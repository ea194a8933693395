package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidImport is returned when an import payload is not a practice log.
var ErrInvalidImport = errors.New("invalid practice log")

// ExportFileName returns the date-stamped backup name for at.
func ExportFileName(at time.Time) string {
	return fmt.Sprintf("innervation-atlas-stats-%s.json", at.Format("2006-01-02"))
}

// Export returns the full log as indented JSON.
func (tracker *Tracker) Export() ([]byte, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	raw, err := json.MarshalIndent(tracker.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode practice log: %w", err)
	}
	return raw, nil
}

// Import replaces the log with payload. The payload must be an object with
// a "sessions" array whose entries carry a timestamp, a section and a
// non-negative duration. On any failure the current log is left untouched.
func (tracker *Tracker) Import(payload []byte) error {
	var envelope struct {
		Sessions json.RawMessage `json:"sessions"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		tracker.logger.Warn("import practice log", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	trimmed := bytes.TrimSpace(envelope.Sessions)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: missing sessions array", ErrInvalidImport)
	}

	var sessions []Event
	if err := json.Unmarshal(trimmed, &sessions); err != nil {
		tracker.logger.Warn("import practice log", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if sessions == nil {
		sessions = []Event{}
	}
	for i, event := range sessions {
		if err := event.validate(); err != nil {
			tracker.logger.Warn("import practice log", zap.Int("entry", i), zap.Error(err))
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidImport, i, err)
		}
	}

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.data = document{Sessions: sessions}
	tracker.saveLocked()
	tracker.logger.Info("practice log imported", zap.Int("events", len(sessions)))
	return nil
}

func (event Event) validate() error {
	switch {
	case event.Timestamp <= 0:
		return errors.New("missing timestamp")
	case event.Section == "":
		return errors.New("missing section")
	case event.Duration < 0:
		return fmt.Errorf("negative duration %d", event.Duration)
	}
	return nil
}

// ClearAll empties the log, closes the open session and forgets the last
// session total.
func (tracker *Tracker) ClearAll() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.data = document{Sessions: []Event{}}
	tracker.lastSessionDuration = 0
	tracker.sessionOpen = false
	tracker.sessionStart = 0
	tracker.section = ""
	tracker.routine = nil
	tracker.saveLocked()
}
