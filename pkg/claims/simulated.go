package claims

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Simulated is an in-process IClaimContract with the same rules as the
// deployed contract. It backs tests and dry runs of the claim flow.
type Simulated struct {
	root   [32]byte
	logger *zap.Logger

	mu       sync.RWMutex
	claimed  map[common.Address]bool
	balances map[common.Address]*big.Int
	nonce    uint64
}

var _ IClaimContract = (*Simulated)(nil)

// NewSimulated deploys a simulated contract holding root.
func NewSimulated(root [32]byte, logger *zap.Logger) *Simulated {
	return &Simulated{
		root:     root,
		logger:   logger,
		claimed:  make(map[common.Address]bool),
		balances: make(map[common.Address]*big.Int),
	}
}

func (s *Simulated) MerkleRoot(_ context.Context) ([32]byte, error) {
	return s.root, nil
}

func (s *Simulated) IsClaimed(_ context.Context, account common.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claimed[account], nil
}

func (s *Simulated) CanClaim(_ context.Context, account common.Address, proof [][32]byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.claimed[account] {
		return false, nil
	}
	return merkle.VerifyAddressProof(account, proof, s.root), nil
}

func (s *Simulated) Claim(ctx context.Context, account common.Address, proof [][32]byte) (*ClaimReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claimed[account] {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyClaimed, account.Hex())
	}
	if !merkle.VerifyAddressProof(account, proof, s.root) {
		return nil, fmt.Errorf("%w: %s", ErrNotInAllowList, account.Hex())
	}

	s.claimed[account] = true
	balance, ok := s.balances[account]
	if !ok {
		balance = new(big.Int)
		s.balances[account] = balance
	}
	balance.Add(balance, big.NewInt(1))

	s.nonce++
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], s.nonce)

	receipt := &ClaimReceipt{
		Account: account,
		Amount:  big.NewInt(1),
		TxHash:  crypto.Keccak256Hash(account.Bytes(), nonce[:]),
	}

	s.logger.Sugar().Infow("Airdrop claimed",
		"account", account.Hex(),
		"amount", receipt.Amount.String(),
		"txHash", receipt.TxHash.Hex(),
	)
	return receipt, nil
}

// BalanceOf returns the airdrop token balance of account.
func (s *Simulated) BalanceOf(account common.Address) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if balance, ok := s.balances[account]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}
