package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data    []byte
	saves   int
	failErr error
}

func (store *memStore) Load() ([]byte, error) {
	return store.data, nil
}

func (store *memStore) Save(data []byte) error {
	if store.failErr != nil {
		return store.failErr
	}
	store.saves++
	store.data = append([]byte(nil), data...)
	return nil
}

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

func (clock *testClock) Advance(delta time.Duration) {
	clock.now = clock.now.Add(delta)
}

func newTestTracker(t *testing.T) (*Tracker, *memStore, *testClock) {
	t.Helper()
	store := &memStore{}
	clock := &testClock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)}
	return New(store, WithNow(clock.Now)), store, clock
}

func TestRecordRequiresOpenSession(t *testing.T) {
	tracker, store, _ := newTestTracker(t)

	assert.False(t, tracker.RecordMovement("X", 45))
	assert.Zero(t, tracker.Summary().TotalSessions)
	assert.Zero(t, store.saves)

	tracker.StartSession("Head Innervation", "TILT")
	assert.False(t, tracker.RecordMovement("X", 0))
	assert.True(t, tracker.RecordMovement("X", 45))
	assert.Equal(t, 1, tracker.Summary().TotalSessions)
	assert.Equal(t, 1, store.saves)

	tracker.StopSession()
	assert.False(t, tracker.RecordMovement("X", 45))
	assert.Equal(t, 1, tracker.Summary().TotalSessions)
}

func TestEventCarriesSessionContext(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	tracker.StartSession("Mudras", "")
	tracker.RecordMovement("Mudra 1", 30)
	tracker.StartSession("Upper Body Innervation", "PALMSTOGETHER")
	clock.Advance(time.Second)
	tracker.RecordMovement("Clasp Mid", 45)

	events := tracker.Events()
	require.Len(t, events, 2)
	assert.Nil(t, events[0].Routine)
	assert.Equal(t, "Mudras", events[0].Section)
	assert.Equal(t, "PALMSTOGETHER", events[1].RoutineName())
	assert.Equal(t, clock.now.UnixMilli(), events[1].Timestamp)
}

func TestEventsDoNotShareRoutine(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	tracker.StartSession("Head Innervation", "TILT")
	tracker.RecordMovement("Tilt Left", 45)
	clock.Advance(time.Second)
	tracker.RecordMovement("Tilt Right", 45)

	events := tracker.Events()
	require.Len(t, events, 2)
	require.NotNil(t, events[0].Routine)
	assert.NotSame(t, events[0].Routine, events[1].Routine)

	*events[0].Routine = "CHANGED"
	fresh := tracker.Events()
	assert.Equal(t, "TILT", fresh[0].RoutineName())
	assert.Equal(t, "TILT", fresh[1].RoutineName())
}

func TestSessionDurations(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	tracker.StartSession("Head Innervation", "TILT")
	clock.Advance(time.Second)
	tracker.RecordMovement("Tilt Left", 45)
	tracker.RecordMovement("Tilt Right", 45)
	assert.Equal(t, 90, tracker.CurrentSessionDuration())

	tracker.StopSession()
	assert.Zero(t, tracker.CurrentSessionDuration())
	assert.Equal(t, 90, tracker.LastSessionDuration())

	clock.Advance(time.Minute)
	tracker.StartSession("Head Innervation", "TURN")
	clock.Advance(time.Second)
	tracker.RecordMovement("Turn Left", 10)
	assert.Equal(t, 10, tracker.CurrentSessionDuration())

	// Starting a new session closes the previous one.
	clock.Advance(time.Minute)
	tracker.StartSession("Mudras", "")
	assert.Equal(t, 10, tracker.LastSessionDuration())
}

func TestLoadsPersistedLog(t *testing.T) {
	store := &memStore{data: []byte(`{"sessions":[{"section":"Mudras","routine":null,"movement":"Mudra 2","duration":60,"timestamp":1700000000000}]}`)}
	tracker := New(store)

	events := tracker.Events()
	require.Len(t, events, 1)
	assert.Equal(t, 60, tracker.TimeForSection("Mudras"))
	assert.Equal(t, 60, tracker.TimeForMovement("Mudras", "Mudra 2"))
}

func TestMalformedPersistedLogStartsEmpty(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"sessions":null}`, `{}`} {
		tracker := New(&memStore{data: []byte(raw)})
		assert.Empty(t, tracker.Events(), raw)
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	store := &memStore{failErr: errors.New("quota exceeded")}
	tracker := New(store)

	tracker.StartSession("Mudras", "")
	assert.True(t, tracker.RecordMovement("Mudra 1", 30))
	assert.Len(t, tracker.Events(), 1)
	assert.Nil(t, store.data)
}

func TestNilStoreIsMemoryOnly(t *testing.T) {
	tracker := New(nil)
	tracker.StartSession("Mudras", "")
	tracker.RecordMovement("Mudra 1", 30)
	assert.Equal(t, 30, tracker.TimeForSection("Mudras"))
}

func TestExportImportRoundTrip(t *testing.T) {
	tracker, _, clock := newTestTracker(t)
	tracker.StartSession("Upper Body Innervation", "PALMSTOGETHER")
	tracker.RecordMovement("Clasp Mid", 45)
	clock.Advance(-3 * day)
	tracker.RecordMovement("Clasp High", 45)
	tracker.StartSession("Mudras", "")
	clock.Advance(-40 * day)
	tracker.RecordMovement("Mudra 3", 20)
	clock.Advance(43 * day)

	before := tracker.Summary()
	exported, err := tracker.Export()
	require.NoError(t, err)

	other, _, otherClock := newTestTracker(t)
	otherClock.now = clock.now
	require.NoError(t, other.Import(exported))
	assert.Equal(t, before, other.Summary())

	require.NoError(t, tracker.Import(exported))
	assert.Equal(t, before, tracker.Summary())
}

func TestImportRejectsInvalidPayload(t *testing.T) {
	tracker, store, _ := newTestTracker(t)
	tracker.StartSession("Mudras", "")
	tracker.RecordMovement("Mudra 1", 30)
	saves := store.saves

	payloads := []string{
		"",
		"{",
		`[]`,
		`{"events":[]}`,
		`{"sessions":{}}`,
		`{"sessions":"x"}`,
		`{"sessions":[{"duration":"long"}]}`,
		`{"sessions":[{}]}`,
		`{"sessions":[{"section":"Mudras","duration":30}]}`,
		`{"sessions":[{"duration":30,"timestamp":1700000000000}]}`,
		`{"sessions":[{"section":"X","duration":-100,"timestamp":1700000000000}]}`,
	}
	for _, payload := range payloads {
		err := tracker.Import([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidImport, payload)
	}

	assert.Len(t, tracker.Events(), 1)
	assert.Equal(t, saves, store.saves)
}

func TestImportEmptySessions(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.StartSession("Mudras", "")
	tracker.RecordMovement("Mudra 1", 30)

	require.NoError(t, tracker.Import([]byte(`{"sessions":[]}`)))
	assert.Empty(t, tracker.Events())
}

func TestClearAll(t *testing.T) {
	tracker, store, _ := newTestTracker(t)
	tracker.StartSession("Mudras", "")
	tracker.RecordMovement("Mudra 1", 30)
	tracker.StopSession()
	require.Equal(t, 30, tracker.LastSessionDuration())

	tracker.ClearAll()
	assert.Empty(t, tracker.Events())
	assert.Zero(t, tracker.LastSessionDuration())
	assert.False(t, tracker.SessionOpen())
	assert.JSONEq(t, `{"sessions":[]}`, string(store.data))
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2026, 1, 7, 23, 10, 0, 0, time.UTC)
	assert.Equal(t, "innervation-atlas-stats-2026-01-07.json", ExportFileName(at))
}
