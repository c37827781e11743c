package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Key prefixes for namespacing in Redis
const (
	keyPrefixSnapshot    = "airdrop:snapshot:"
	keyActiveSnapshot    = "airdrop:active:snapshot"
	keySchemaVersion     = "airdrop:metadata:schema_version"
	currentSchemaVersion = "v1"

	// Index set for listing (Redis doesn't support prefix iteration natively)
	keySetSnapshots = "airdrop:snapshots:index"

	defaultOperationTimeout = 5 * time.Second
)

// RedisPersistence stores allowlist snapshots in Redis so several proof
// servers can share them.
type RedisPersistence struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	mu        sync.RWMutex
	closed    bool
}

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string `yaml:"address"`
	// Password is the optional Redis password
	Password string `yaml:"password"`
	// DB is the Redis database number (0-15)
	DB int `yaml:"db"`
	// KeyPrefix is prepended to every key, e.g. "season1:" gives
	// "season1:airdrop:snapshot:<name>".
	KeyPrefix string `yaml:"keyPrefix"`
}

// NewRedisPersistence creates a new Redis-backed persistence layer.
func NewRedisPersistence(cfg *RedisConfig, logger *zap.Logger) (*RedisPersistence, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	rp := &RedisPersistence{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	if err := rp.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Infow("Redis persistence initialized", "address", cfg.Address, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)

	return rp, nil
}

func (r *RedisPersistence) prefixKey(key string) string {
	return r.keyPrefix + key
}

func (r *RedisPersistence) snapshotKey(name string) string {
	return r.prefixKey(keyPrefixSnapshot + name)
}

// initSchema initializes or validates the schema version
func (r *RedisPersistence) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(keySchemaVersion)

	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if errors.Is(err, redis.Nil) {
		return r.client.Set(ctx, schemaKey, currentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if existingVersion != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
	}
	return nil
}

// SaveSnapshot persists a snapshot and adds it to the index set
func (r *RedisPersistence) SaveSnapshot(snapshot *persistence.AllowlistSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot save nil AllowlistSnapshot")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	data, err := persistence.MarshalAllowlistSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal AllowlistSnapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.snapshotKey(snapshot.Name), data, 0)
	pipe.SAdd(ctx, r.prefixKey(keySetSnapshots), snapshot.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save AllowlistSnapshot: %w", err)
	}

	r.logger.Sugar().Debugw("Saved allowlist snapshot",
		"name", snapshot.Name, "root", snapshot.Root, "leaves", len(snapshot.Addresses))
	return nil
}

// LoadSnapshot retrieves a snapshot by name
func (r *RedisPersistence) LoadSnapshot(name string) (*persistence.AllowlistSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	return r.load(ctx, name)
}

func (r *RedisPersistence) load(ctx context.Context, name string) (*persistence.AllowlistSnapshot, error) {
	data, err := r.client.Get(ctx, r.snapshotKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AllowlistSnapshot: %w", err)
	}

	snapshot, err := persistence.UnmarshalAllowlistSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal AllowlistSnapshot: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns all snapshots ordered by creation time
func (r *RedisPersistence) ListSnapshots() ([]*persistence.AllowlistSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	indexKey := r.prefixKey(keySetSnapshots)
	names, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list AllowlistSnapshot names: %w", err)
	}
	if len(names) == 0 {
		return []*persistence.AllowlistSnapshot{}, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = r.snapshotKey(name)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch AllowlistSnapshots: %w", err)
	}

	snapshots := make([]*persistence.AllowlistSnapshot, 0, len(values))
	for i, val := range values {
		if val == nil {
			// Key was in index but doesn't exist - clean up index
			r.client.SRem(ctx, indexKey, names[i])
			continue
		}

		data, ok := val.(string)
		if !ok {
			r.logger.Sugar().Warnw("Unexpected value type for AllowlistSnapshot", "key", keys[i])
			continue
		}

		snapshot, err := persistence.UnmarshalAllowlistSnapshot([]byte(data))
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal AllowlistSnapshot, skipping",
				"key", keys[i], "error", err)
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	persistence.SortSnapshots(snapshots)
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot, its index entry and, if it was active,
// the active pointer
func (r *RedisPersistence) DeleteSnapshot(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	activeKey := r.prefixKey(keyActiveSnapshot)
	active, err := r.client.Get(ctx, activeKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to read active snapshot: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.snapshotKey(name))
	pipe.SRem(ctx, r.prefixKey(keySetSnapshots), name)
	if active == name {
		pipe.Del(ctx, activeKey)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete AllowlistSnapshot: %w", err)
	}
	return nil
}

// SetActiveSnapshot stores the name of the active snapshot
func (r *RedisPersistence) SetActiveSnapshot(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	activeKey := r.prefixKey(keyActiveSnapshot)
	if name == "" {
		return r.client.Del(ctx, activeKey).Err()
	}

	exists, err := r.client.Exists(ctx, r.snapshotKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check snapshot %q: %w", name, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %q", persistence.ErrSnapshotNotFound, name)
	}

	if err := r.client.Set(ctx, activeKey, name, 0).Err(); err != nil {
		return fmt.Errorf("failed to set active snapshot: %w", err)
	}
	return nil
}

// GetActiveSnapshot returns the active snapshot or nil
func (r *RedisPersistence) GetActiveSnapshot() (*persistence.AllowlistSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	name, err := r.client.Get(ctx, r.prefixKey(keyActiveSnapshot)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active snapshot: %w", err)
	}

	return r.load(ctx, name)
}

// Close shuts down the persistence layer
func (r *RedisPersistence) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	r.logger.Sugar().Info("Redis persistence closed")
	return nil
}

// HealthCheck verifies the persistence layer is operational
func (r *RedisPersistence) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOperationTimeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	exists, err := r.client.Exists(ctx, r.prefixKey(keySchemaVersion)).Result()
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("schema version not found - database may be corrupted")
	}
	return nil
}
