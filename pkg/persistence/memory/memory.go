package memory

import (
	"fmt"
	"sync"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"go.uber.org/zap"
)

// MemoryPersistence is an in-memory implementation of IAllowlistPersistence.
// This implementation is intended for TESTING ONLY.
//
// All data is stored in memory and will be lost when the process exits.
// Snapshots are deep copied on the way in and out to prevent external mutation.
type MemoryPersistence struct {
	mu sync.RWMutex

	// name -> snapshot
	snapshots map[string]*persistence.AllowlistSnapshot

	activeName string

	closed bool
}

// NewMemoryPersistence creates a new in-memory persistence layer.
// Logs a loud warning since this should only be used for testing.
func NewMemoryPersistence(logger *zap.Logger) *MemoryPersistence {
	logger.Sugar().Warnw("Using in-memory persistence - ALL SNAPSHOTS WILL BE LOST ON RESTART",
		"hint", "set AIRDROP_PERSISTENCE_TYPE=badger for production")

	return &MemoryPersistence{
		snapshots: make(map[string]*persistence.AllowlistSnapshot),
	}
}

// SaveSnapshot persists a snapshot.
func (m *MemoryPersistence) SaveSnapshot(snapshot *persistence.AllowlistSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot save nil AllowlistSnapshot")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}

	m.snapshots[snapshot.Name] = snapshot.Copy()
	return nil
}

// LoadSnapshot retrieves a snapshot by name.
func (m *MemoryPersistence) LoadSnapshot(name string) (*persistence.AllowlistSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	snapshot, exists := m.snapshots[name]
	if !exists {
		return nil, nil // Not found is not an error
	}
	return snapshot.Copy(), nil
}

// ListSnapshots returns all snapshots ordered by creation time.
func (m *MemoryPersistence) ListSnapshots() ([]*persistence.AllowlistSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	result := make([]*persistence.AllowlistSnapshot, 0, len(m.snapshots))
	for _, snapshot := range m.snapshots {
		result = append(result, snapshot.Copy())
	}
	persistence.SortSnapshots(result)

	return result, nil
}

// DeleteSnapshot removes a snapshot.
func (m *MemoryPersistence) DeleteSnapshot(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}

	delete(m.snapshots, name)
	if m.activeName == name {
		m.activeName = ""
	}
	return nil
}

// SetActiveSnapshot marks a snapshot as active.
func (m *MemoryPersistence) SetActiveSnapshot(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}

	if name != "" {
		if _, exists := m.snapshots[name]; !exists {
			return fmt.Errorf("%w: %q", persistence.ErrSnapshotNotFound, name)
		}
	}

	m.activeName = name
	return nil
}

// GetActiveSnapshot returns the active snapshot or nil.
func (m *MemoryPersistence) GetActiveSnapshot() (*persistence.AllowlistSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	if m.activeName == "" {
		return nil, nil
	}
	return m.snapshots[m.activeName].Copy(), nil
}

// Close shuts down the persistence layer.
func (m *MemoryPersistence) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck verifies the persistence layer is operational.
func (m *MemoryPersistence) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return persistence.ErrClosed
	}

	return nil
}
