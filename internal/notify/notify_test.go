package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	changes atomic.Int32
}

func (o *countingObserver) OnChange() { o.changes.Add(1) }

func TestPostAssignsMonotonicIDs(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	first := m.Post("created", SeveritySuccess)
	second := m.Post("deleted", SeverityInfo)
	assert.Greater(t, second, first)

	// A fresh manager starts its own counter; ids are per-instance.
	other := NewManager(nil)
	defer other.Close()
	assert.Equal(t, first, other.Post("independent", SeverityInfo))
}

func TestActivePreservesInsertionOrder(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	m.PostTTL("one", SeverityInfo, time.Minute)
	m.PostTTL("two", SeverityWarning, time.Minute)
	m.PostTTL("three", SeverityError, time.Minute)

	active := m.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "one", active[0].Message)
	assert.Equal(t, "two", active[1].Message)
	assert.Equal(t, "three", active[2].Message)
}

func TestDismissIsIdempotent(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	id := m.PostTTL("transient", SeverityInfo, time.Minute)
	keep := m.PostTTL("stays", SeverityInfo, time.Minute)

	m.Dismiss(id)
	m.Dismiss(id)
	m.Dismiss(99999)

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, keep, active[0].ID)
}

func TestTimerExpiryRemovesNotification(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	m.PostTTL("short lived", SeverityInfo, 100*time.Millisecond)
	require.Len(t, m.Active(), 1)

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, m.Active())
}

func TestManualDismissCancelsTimer(t *testing.T) {
	obs := &countingObserver{}
	m := NewManager(obs)
	defer m.Close()

	id := m.PostTTL("cancel me", SeverityInfo, 50*time.Millisecond)
	m.Dismiss(id)
	before := obs.changes.Load()

	// If the timer were still pending it would fire here and observe again.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, obs.changes.Load())
	assert.Empty(t, m.Active())
}

func TestObserverSeesPostAndDismiss(t *testing.T) {
	obs := &countingObserver{}
	m := NewManager(obs)
	defer m.Close()

	id := m.PostTTL("observed", SeveritySuccess, time.Minute)
	m.Dismiss(id)
	assert.Equal(t, int32(2), obs.changes.Load())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "success", SeveritySuccess.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
}
