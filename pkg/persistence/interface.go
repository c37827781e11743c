package persistence

// IAllowlistPersistence stores allowlist snapshots so the tree that was deployed
// can be served again after a restart. All implementations must be thread-safe.
//
// The interface supports:
// - Snapshot management (save, load, list, delete), keyed by snapshot name
// - Active snapshot tracking (which snapshot the proof service serves)
// - Lifecycle management (close, health check)
type IAllowlistPersistence interface {
	// Snapshot Management

	// SaveSnapshot persists a snapshot under its name, overwriting any snapshot
	// with the same name. The snapshot must pass Validate.
	SaveSnapshot(snapshot *AllowlistSnapshot) error

	// LoadSnapshot retrieves a snapshot by name.
	// Returns nil if the snapshot doesn't exist, error only on storage failure.
	LoadSnapshot(name string) (*AllowlistSnapshot, error)

	// ListSnapshots returns all snapshots ordered by creation time, then name.
	// Returns empty slice if no snapshots exist, error only on storage failure.
	ListSnapshots() ([]*AllowlistSnapshot, error)

	// DeleteSnapshot removes a snapshot by name. Deleting the active snapshot
	// clears the active pointer.
	// Idempotent - returns nil if snapshot doesn't exist.
	DeleteSnapshot(name string) error

	// Active Snapshot Tracking

	// SetActiveSnapshot marks the named snapshot as the one being served.
	// Returns ErrSnapshotNotFound if no such snapshot exists. An empty name
	// clears the active snapshot.
	SetActiveSnapshot(name string) error

	// GetActiveSnapshot returns the active snapshot, or nil if none is set.
	GetActiveSnapshot() (*AllowlistSnapshot, error)

	// Lifecycle Management

	// Close cleanly shuts down the persistence layer.
	// Idempotent - safe to call multiple times.
	// After Close(), all other operations return errors.
	Close() error

	// HealthCheck verifies the persistence layer is operational.
	HealthCheck() error
}
