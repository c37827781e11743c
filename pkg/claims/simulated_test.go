package claims

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/logger"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	receiver = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	user1    = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func newTestContract(t *testing.T) (*Simulated, *merkle.MerkleTree) {
	t.Helper()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	tree, err := merkle.BuildMerkleTreeFromHex([]string{
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"0x90F79bf6EB2c4f870365E785982E1f101E93b906",
		"0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65",
		"0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc",
	})
	require.NoError(t, err)
	return NewSimulated(tree.Root, testLogger), tree
}

func TestSimulated_MerkleRoot(t *testing.T) {
	contract, tree := newTestContract(t)
	root, err := contract.MerkleRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tree.Root, root)
}

func TestSimulated_CanClaim(t *testing.T) {
	ctx := context.Background()
	contract, tree := newTestContract(t)

	t.Run("valid proof not yet claimed", func(t *testing.T) {
		ok, err := contract.CanClaim(ctx, receiver, tree.GenerateProof(receiver).Proof)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member", func(t *testing.T) {
		ok, err := contract.CanClaim(ctx, user1, tree.GenerateProof(user1).Proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("member with someone else's proof", func(t *testing.T) {
		other := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
		ok, err := contract.CanClaim(ctx, receiver, tree.GenerateProof(other).Proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("valid proof already claimed", func(t *testing.T) {
		proof := tree.GenerateProof(receiver).Proof
		_, err := contract.Claim(ctx, receiver, proof)
		require.NoError(t, err)

		ok, err := contract.CanClaim(ctx, receiver, proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSimulated_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		contract, tree := newTestContract(t)

		receipt, err := contract.Claim(ctx, receiver, tree.GenerateProof(receiver).Proof)
		require.NoError(t, err)
		assert.Equal(t, receiver, receipt.Account)
		assert.Equal(t, big.NewInt(1), receipt.Amount)
		assert.NotEqual(t, common.Hash{}, receipt.TxHash)

		claimed, err := contract.IsClaimed(ctx, receiver)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, big.NewInt(1), contract.BalanceOf(receiver))
	})

	t.Run("second claim reverts", func(t *testing.T) {
		contract, tree := newTestContract(t)
		proof := tree.GenerateProof(receiver).Proof

		_, err := contract.Claim(ctx, receiver, proof)
		require.NoError(t, err)

		_, err = contract.Claim(ctx, receiver, proof)
		assert.ErrorIs(t, err, ErrAlreadyClaimed)
		assert.Equal(t, big.NewInt(1), contract.BalanceOf(receiver))
	})

	t.Run("invalid proof reverts", func(t *testing.T) {
		contract, tree := newTestContract(t)

		_, err := contract.Claim(ctx, receiver, tree.GenerateProof(user1).Proof)
		assert.ErrorIs(t, err, ErrNotInAllowList)

		claimed, err := contract.IsClaimed(ctx, receiver)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Equal(t, 0, contract.BalanceOf(receiver).Sign())
	})

	t.Run("cancelled context", func(t *testing.T) {
		contract, tree := newTestContract(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := contract.Claim(cctx, receiver, tree.GenerateProof(receiver).Proof)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimulated_ConcurrentClaimsSucceedOnce(t *testing.T) {
	ctx := context.Background()
	contract, tree := newTestContract(t)
	proof := tree.GenerateProof(receiver).Proof

	var successes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := contract.Claim(ctx, receiver, proof); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrAlreadyClaimed)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}
