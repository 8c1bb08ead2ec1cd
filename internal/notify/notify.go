// Package notify manages the queue of transient user-facing messages
// (toasts). Each notification carries its own TTL timer; timer expiry and
// manual dismissal share one removal path, so neither can double-fire.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is applied when Post is called without an explicit duration.
const DefaultTTL = 5 * time.Second

// Severity classifies a notification for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a single timed message.
type Notification struct {
	ID        int
	Message   string
	Severity  Severity
	TTL       time.Duration
	CreatedAt time.Time
}

// Observer is notified whenever the active set changes. Implementations
// must not block; the TUI bridges this onto its message loop via a channel.
type Observer interface {
	OnChange()
}

// Manager owns the live notification set. The id counter is per-instance,
// not process-wide, so independent managers never collide.
type Manager struct {
	mu       sync.Mutex
	nextID   int
	active   []Notification
	timers   map[int]*time.Timer
	observer Observer
	now      func() time.Time
}

// NewManager creates an empty manager. observer may be nil.
func NewManager(observer Observer) *Manager {
	return &Manager{
		nextID:   1,
		timers:   make(map[int]*time.Timer),
		observer: observer,
		now:      time.Now,
	}
}

// Post appends a notification with the default TTL and returns its id.
func (m *Manager) Post(message string, severity Severity) int {
	return m.PostTTL(message, severity, DefaultTTL)
}

// PostTTL appends a notification that auto-dismisses after ttl.
func (m *Manager) PostTTL(message string, severity Severity, ttl time.Duration) int {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.active = append(m.active, Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		TTL:       ttl,
		CreatedAt: m.now(),
	})
	m.timers[id] = time.AfterFunc(ttl, func() { m.Dismiss(id) })
	m.mu.Unlock()

	m.notifyChange()
	return id
}

// Dismiss removes the notification with the given id and cancels its timer.
// Dismissing an unknown or already-removed id is a no-op.
func (m *Manager) Dismiss(id int) {
	m.mu.Lock()
	timer, known := m.timers[id]
	if !known {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)
	for i, n := range m.active {
		if n.ID == id {
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	timer.Stop()
	m.notifyChange()
}

// Active returns the live notifications in insertion order.
func (m *Manager) Active() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.active))
	copy(out, m.active)
	return out
}

// Close cancels all pending timers and clears the set.
func (m *Manager) Close() {
	m.mu.Lock()
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
	m.active = nil
	m.mu.Unlock()
}

func (m *Manager) notifyChange() {
	if m.observer != nil {
		m.observer.OnChange()
	}
}
