package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginSuccesses  uint64
	LoginFailures   uint64
	ItemsCreated    uint64
	ItemsUpdated    uint64
	ItemsToggled    uint64
	ItemsDeleted    uint64
	ItemsCleared    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginSuccesses  uint64
	loginFailures   uint64
	itemsCreated    uint64
	itemsUpdated    uint64
	itemsToggled    uint64
	itemsDeleted    uint64
	itemsCleared    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		ItemsCreated:    atomic.LoadUint64(&m.itemsCreated),
		ItemsUpdated:    atomic.LoadUint64(&m.itemsUpdated),
		ItemsToggled:    atomic.LoadUint64(&m.itemsToggled),
		ItemsDeleted:    atomic.LoadUint64(&m.itemsDeleted),
		ItemsCleared:    atomic.LoadUint64(&m.itemsCleared),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncItemCreated increments the item creation counter.
func (m *InMemoryRecorder) IncItemCreated() {
	atomic.AddUint64(&m.itemsCreated, 1)
}

// IncItemUpdated increments the item update counter.
func (m *InMemoryRecorder) IncItemUpdated() {
	atomic.AddUint64(&m.itemsUpdated, 1)
}

// IncItemToggled increments the toggle counter.
func (m *InMemoryRecorder) IncItemToggled() {
	atomic.AddUint64(&m.itemsToggled, 1)
}

// IncItemDeleted increments the single-delete counter.
func (m *InMemoryRecorder) IncItemDeleted() {
	atomic.AddUint64(&m.itemsDeleted, 1)
}

// AddItemsCleared adds the bulk-clear removal count.
func (m *InMemoryRecorder) AddItemsCleared(count int64) {
	if count > 0 {
		atomic.AddUint64(&m.itemsCleared, uint64(count))
	}
}
