package badger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/logger"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPersistence(t *testing.T, dir string) *BadgerPersistence {
	t.Helper()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	bp, err := NewBadgerPersistence(dir, testLogger)
	require.NoError(t, err)
	return bp
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

func TestBadgerPersistence_SaveAndLoadSnapshot(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	snapshot := newTestSnapshot(t, "season-1", 100)
	snapshot.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	snapshot.ChainID = 11155111

	require.NoError(t, bp.SaveSnapshot(snapshot))

	loaded, err := bp.LoadSnapshot("season-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot, loaded)
}

func TestBadgerPersistence_LoadSnapshot_NotFound(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	loaded, err := bp.LoadSnapshot("missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBadgerPersistence_SaveSnapshot_Nil(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	err := bp.SaveSnapshot(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil AllowlistSnapshot")
}

func TestBadgerPersistence_ListAndDelete(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	list, err := bp.ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, bp.SaveSnapshot(newTestSnapshot(t, "b", 200)))
	require.NoError(t, bp.SaveSnapshot(newTestSnapshot(t, "a", 300)))
	require.NoError(t, bp.SaveSnapshot(newTestSnapshot(t, "c", 100)))

	list, err = bp.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].Name, list[1].Name, list[2].Name})

	require.NoError(t, bp.DeleteSnapshot("b"))
	require.NoError(t, bp.DeleteSnapshot("b"))

	list, err = bp.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestBadgerPersistence_ActiveSnapshot(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	active, err := bp.GetActiveSnapshot()
	require.NoError(t, err)
	assert.Nil(t, active)

	assert.ErrorIs(t, bp.SetActiveSnapshot("missing"), persistence.ErrSnapshotNotFound)

	require.NoError(t, bp.SaveSnapshot(newTestSnapshot(t, "season-1", 1)))
	require.NoError(t, bp.SetActiveSnapshot("season-1"))

	active, err = bp.GetActiveSnapshot()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "season-1", active.Name)

	require.NoError(t, bp.DeleteSnapshot("season-1"))
	active, err = bp.GetActiveSnapshot()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestBadgerPersistence_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	bp := newTestPersistence(t, dir)
	snapshot := newTestSnapshot(t, "season-1", 1)
	require.NoError(t, bp.SaveSnapshot(snapshot))
	require.NoError(t, bp.SetActiveSnapshot("season-1"))
	require.NoError(t, bp.Close())

	reopened := newTestPersistence(t, dir)
	defer func() { _ = reopened.Close() }()

	require.NoError(t, reopened.HealthCheck())
	active, err := reopened.GetActiveSnapshot()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, snapshot, active)

	tree, err := active.Tree()
	require.NoError(t, err)
	assert.Equal(t, snapshot.Root, tree.RootHash().Hex())
}

func TestBadgerPersistence_Close(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	require.NoError(t, bp.HealthCheck())

	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())

	assert.ErrorIs(t, bp.HealthCheck(), persistence.ErrClosed)
	assert.ErrorIs(t, bp.SaveSnapshot(newTestSnapshot(t, "x", 1)), persistence.ErrClosed)
	_, err := bp.LoadSnapshot("x")
	assert.ErrorIs(t, err, persistence.ErrClosed)
	_, err = bp.GetActiveSnapshot()
	assert.ErrorIs(t, err, persistence.ErrClosed)
}

func TestBadgerPersistence_ThreadSafety(t *testing.T) {
	bp := newTestPersistence(t, t.TempDir())
	defer func() { _ = bp.Close() }()

	snapshots := make([]*persistence.AllowlistSnapshot, 10)
	for i := range snapshots {
		snapshots[i] = newTestSnapshot(t, fmt.Sprintf("snapshot-%d", i), int64(i))
	}

	var wg sync.WaitGroup
	for _, s := range snapshots {
		wg.Add(1)
		go func(s *persistence.AllowlistSnapshot) {
			defer wg.Done()
			assert.NoError(t, bp.SaveSnapshot(s))
			loaded, err := bp.LoadSnapshot(s.Name)
			assert.NoError(t, err)
			assert.NotNil(t, loaded)
		}(s)
	}
	wg.Wait()

	list, err := bp.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, list, 10)
}
