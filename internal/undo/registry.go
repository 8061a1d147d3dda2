// Package undo keeps restore actions alive for the visible window of an undo
// notification. Only one notification is visible at a time: registering a new
// entry cancels the pending one.
package undo

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownEntry = errors.New("undo entry not found or expired")

type Kind string

const (
	KindExperiment Kind = "experiment"
	KindWin        Kind = "win"
	KindCollection Kind = "collection"
	KindActivation Kind = "activation"
)

// RestoreFunc re-applies the state captured when the entry was registered.
type RestoreFunc func() (any, error)

type Entry struct {
	ID        string
	Kind      Kind
	ExpiresAt time.Time
}

type pendingEntry struct {
	entry   Entry
	restore RestoreFunc
	timer   *time.Timer
}

type Registry struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	pending map[string]*pendingEntry
	closed  bool
}

func NewRegistry(window time.Duration) *Registry {
	return &Registry{
		window:  window,
		now:     time.Now,
		pending: make(map[string]*pendingEntry),
	}
}

func (registry *Registry) Window() time.Duration {
	return registry.window
}

func (registry *Registry) Register(kind Kind, restore RestoreFunc) Entry {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.cancelAllLocked()

	entry := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		ExpiresAt: registry.now().Add(registry.window),
	}
	if registry.closed {
		return entry
	}

	pending := &pendingEntry{entry: entry, restore: restore}
	pending.timer = time.AfterFunc(registry.window, func() {
		registry.expire(entry.ID, pending)
	})
	registry.pending[entry.ID] = pending
	return entry
}

// Invoke runs and forgets the entry's restore action.
func (registry *Registry) Invoke(id string) (Entry, any, error) {
	pending, ok := registry.take(id)
	if !ok {
		return Entry{}, nil, ErrUnknownEntry
	}
	restored, err := pending.restore()
	return pending.entry, restored, err
}

// Dismiss drops the entry without restoring, as when the notification is closed by hand.
func (registry *Registry) Dismiss(id string) bool {
	_, ok := registry.take(id)
	return ok
}

func (registry *Registry) Lookup(id string) (Entry, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	pending, ok := registry.pending[id]
	if !ok {
		return Entry{}, false
	}
	return pending.entry, true
}

func (registry *Registry) Pending() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.pending)
}

// DismissAll drops every pending entry without restoring.
func (registry *Registry) DismissAll() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.cancelAllLocked()
}

// Close cancels every pending timer; later registrations are never invocable.
func (registry *Registry) Close() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.cancelAllLocked()
	registry.closed = true
}

func (registry *Registry) take(id string) (*pendingEntry, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	pending, ok := registry.pending[id]
	if !ok {
		return nil, false
	}
	pending.timer.Stop()
	delete(registry.pending, id)
	return pending, true
}

func (registry *Registry) expire(id string, expected *pendingEntry) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if current, ok := registry.pending[id]; ok && current == expected {
		delete(registry.pending, id)
	}
}

func (registry *Registry) cancelAllLocked() {
	for id, pending := range registry.pending {
		pending.timer.Stop()
		delete(registry.pending, id)
	}
}
