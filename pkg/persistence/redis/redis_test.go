package redis

import (
	"os"
	"testing"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/logger"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTestRedisAddress returns the Redis address for testing.
// Uses REDIS_TEST_ADDRESS env var if set, otherwise defaults to localhost:6379.
func getTestRedisAddress() string {
	if addr := os.Getenv("REDIS_TEST_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// requireRedis skips the test if Redis is not available. Every test gets its
// own key prefix so runs never see each other's snapshots.
func requireRedis(t *testing.T) *RedisPersistence {
	t.Helper()

	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	cfg := &RedisConfig{
		Address:   getTestRedisAddress(),
		DB:        15, // Use DB 15 for tests to avoid conflicts
		KeyPrefix: "test:" + uuid.New().String() + ":",
	}

	rp, err := NewRedisPersistence(cfg, testLogger)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", cfg.Address, err)
		return nil
	}
	return rp
}

func newTestSnapshot(t *testing.T, name string, createdAt int64) *persistence.AllowlistSnapshot {
	t.Helper()
	tree, err := merkle.BuildMerkleTreeFromHex([]string{
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
	})
	require.NoError(t, err)
	s := persistence.NewAllowlistSnapshot(name, tree)
	s.CreatedAt = createdAt
	return s
}

func TestNewRedisPersistence_InvalidConfig(t *testing.T) {
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	_, err := NewRedisPersistence(nil, testLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")

	_, err = NewRedisPersistence(&RedisConfig{}, testLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address cannot be empty")
}

func TestRedisPersistence_SaveAndLoadSnapshot(t *testing.T) {
	rp := requireRedis(t)
	defer func() { _ = rp.Close() }()

	snapshot := newTestSnapshot(t, "season-1", 100)
	require.NoError(t, rp.SaveSnapshot(snapshot))

	loaded, err := rp.LoadSnapshot("season-1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	missing, err := rp.LoadSnapshot("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisPersistence_ListAndDelete(t *testing.T) {
	rp := requireRedis(t)
	defer func() { _ = rp.Close() }()

	list, err := rp.ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, rp.SaveSnapshot(newTestSnapshot(t, "b", 2)))
	require.NoError(t, rp.SaveSnapshot(newTestSnapshot(t, "a", 1)))

	list, err = rp.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)

	require.NoError(t, rp.DeleteSnapshot("a"))
	require.NoError(t, rp.DeleteSnapshot("a"))

	list, err = rp.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
}

func TestRedisPersistence_ActiveSnapshot(t *testing.T) {
	rp := requireRedis(t)
	defer func() { _ = rp.Close() }()

	active, err := rp.GetActiveSnapshot()
	require.NoError(t, err)
	assert.Nil(t, active)

	assert.ErrorIs(t, rp.SetActiveSnapshot("missing"), persistence.ErrSnapshotNotFound)

	require.NoError(t, rp.SaveSnapshot(newTestSnapshot(t, "season-1", 1)))
	require.NoError(t, rp.SetActiveSnapshot("season-1"))

	active, err = rp.GetActiveSnapshot()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "season-1", active.Name)

	require.NoError(t, rp.DeleteSnapshot("season-1"))
	active, err = rp.GetActiveSnapshot()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestRedisPersistence_Close(t *testing.T) {
	rp := requireRedis(t)
	require.NoError(t, rp.HealthCheck())

	require.NoError(t, rp.Close())
	require.NoError(t, rp.Close())

	assert.ErrorIs(t, rp.HealthCheck(), persistence.ErrClosed)
	_, err := rp.ListSnapshots()
	assert.ErrorIs(t, err, persistence.ErrClosed)
}
