package badger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// Key prefixes for namespacing
const (
	keyPrefixSnapshot     = "snapshot:"
	keyActiveSnapshot     = "active:snapshot"
	keySchemaVersion      = "metadata:schema_version"
	currentSchemaVersion  = "v1"
	defaultGCInterval     = 5 * time.Minute
	defaultGCDiscardRatio = 0.5
)

// BadgerPersistence stores allowlist snapshots on local disk using Badger.
type BadgerPersistence struct {
	db       *badgerdb.DB
	logger   *zap.Logger
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
}

// NewBadgerPersistence creates a new Badger-backed persistence layer.
// The database is opened at the specified path with SyncWrites enabled for durability.
// A background goroutine is started for garbage collection.
func NewBadgerPersistence(dataPath string, logger *zap.Logger) (*BadgerPersistence, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = &badgerLoggerAdapter{logger: logger.Named("badger")}
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	opts.NumVersionsToKeep = 1

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", absPath, err)
	}

	bp := &BadgerPersistence{
		db:     db,
		logger: logger,
	}

	if err := bp.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bp.gcCancel = cancel
	bp.gcWg.Add(1)
	go bp.runGC(ctx)

	logger.Sugar().Infow("Badger persistence initialized", "path", absPath)

	return bp, nil
}

// initSchema initializes or validates the schema version
func (b *BadgerPersistence) initSchema() error {
	return b.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(keySchemaVersion))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return txn.Set([]byte(keySchemaVersion), []byte(currentSchemaVersion))
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		existingVersion, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("failed to read schema version value: %w", err)
		}
		if string(existingVersion) != currentSchemaVersion {
			return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
		}
		return nil
	})
}

// runGC runs periodic value log garbage collection in the background
func (b *BadgerPersistence) runGC(ctx context.Context) {
	defer b.gcWg.Done()

	ticker := time.NewTicker(defaultGCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := b.db.RunValueLogGC(defaultGCDiscardRatio)
			if err != nil && !errors.Is(err, badgerdb.ErrNoRewrite) {
				b.logger.Sugar().Warnw("Badger GC error", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func snapshotKey(name string) []byte {
	return []byte(keyPrefixSnapshot + name)
}

// get returns a copy of the value at key, or nil if the key does not exist.
func get(txn *badgerdb.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// SaveSnapshot persists a snapshot
func (b *BadgerPersistence) SaveSnapshot(snapshot *persistence.AllowlistSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot save nil AllowlistSnapshot")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	data, err := persistence.MarshalAllowlistSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal AllowlistSnapshot: %w", err)
	}

	err = b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(snapshotKey(snapshot.Name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save AllowlistSnapshot: %w", err)
	}

	b.logger.Sugar().Debugw("Saved allowlist snapshot",
		"name", snapshot.Name, "root", snapshot.Root, "leaves", len(snapshot.Addresses))
	return nil
}

// LoadSnapshot retrieves a snapshot by name
func (b *BadgerPersistence) LoadSnapshot(name string) (*persistence.AllowlistSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, persistence.ErrClosed
	}

	var data []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		var err error
		data, err = get(txn, snapshotKey(name))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load AllowlistSnapshot: %w", err)
	}
	if data == nil {
		return nil, nil // Not found
	}

	snapshot, err := persistence.UnmarshalAllowlistSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal AllowlistSnapshot: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns all snapshots ordered by creation time
func (b *BadgerPersistence) ListSnapshots() ([]*persistence.AllowlistSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, persistence.ErrClosed
	}

	snapshots := make([]*persistence.AllowlistSnapshot, 0)

	err := b.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefixSnapshot)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			data, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to read value: %w", err)
			}

			snapshot, err := persistence.UnmarshalAllowlistSnapshot(data)
			if err != nil {
				b.logger.Sugar().Warnw("Failed to unmarshal AllowlistSnapshot, skipping",
					"key", string(item.Key()), "error", err)
				continue
			}

			snapshots = append(snapshots, snapshot)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list AllowlistSnapshots: %w", err)
	}

	persistence.SortSnapshots(snapshots)
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot and clears the active pointer if it named it
func (b *BadgerPersistence) DeleteSnapshot(name string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	return b.db.Update(func(txn *badgerdb.Txn) error {
		active, err := get(txn, []byte(keyActiveSnapshot))
		if err != nil {
			return err
		}
		if string(active) == name {
			if err := txn.Delete([]byte(keyActiveSnapshot)); err != nil {
				return err
			}
		}
		return txn.Delete(snapshotKey(name))
	})
}

// SetActiveSnapshot stores the name of the active snapshot
func (b *BadgerPersistence) SetActiveSnapshot(name string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	return b.db.Update(func(txn *badgerdb.Txn) error {
		if name == "" {
			return txn.Delete([]byte(keyActiveSnapshot))
		}

		_, err := txn.Get(snapshotKey(name))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", persistence.ErrSnapshotNotFound, name)
		}
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyActiveSnapshot), []byte(name))
	})
}

// GetActiveSnapshot returns the active snapshot or nil
func (b *BadgerPersistence) GetActiveSnapshot() (*persistence.AllowlistSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, persistence.ErrClosed
	}

	var data []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		name, err := get(txn, []byte(keyActiveSnapshot))
		if err != nil || name == nil {
			return err
		}
		data, err = get(txn, snapshotKey(string(name)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get active snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	snapshot, err := persistence.UnmarshalAllowlistSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal AllowlistSnapshot: %w", err)
	}
	return snapshot, nil
}

// Close shuts down the persistence layer
func (b *BadgerPersistence) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.gcCancel != nil {
		b.gcCancel()
	}
	b.gcWg.Wait()

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}

	b.logger.Sugar().Info("Badger persistence closed")
	return nil
}

// HealthCheck verifies the persistence layer is operational
func (b *BadgerPersistence) HealthCheck() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	return b.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get([]byte(keySchemaVersion))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return fmt.Errorf("schema version not found - database may be corrupted")
		}
		return err
	})
}
