// Package airdrop serves proofs for the active allowlist tree.
package airdrop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/deployment"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	// ErrNoTree is returned by queries made before a tree was loaded.
	ErrNoTree = errors.New("no allowlist tree loaded")

	// ErrNoActiveSnapshot is returned when persistence has no active snapshot to serve.
	ErrNoActiveSnapshot = errors.New("no active allowlist snapshot")
)

// TreeInfo describes the tree being served.
type TreeInfo struct {
	Root     common.Hash
	Leaves   int
	Depth    int
	Policy   merkle.OddNodePolicy
	Snapshot string
}

// Proof is an inclusion proof together with the root it verifies against.
type Proof struct {
	*merkle.MerkleProof
	Eligible bool
	Root     [32]byte
}

// Eligibility is the allowlist and claim status of one address.
type Eligibility struct {
	*Proof
	// Claimed is nil when no contract is configured.
	Claimed *bool
}

// CanClaim reports whether a claim with Proof would be accepted, as far as the
// service knows.
func (e *Eligibility) CanClaim() bool {
	return e.Eligible && (e.Claimed == nil || !*e.Claimed)
}

// Service answers proof queries for one tree at a time. The tree can be
// replaced while requests are in flight; each request sees either the old or
// the new tree, never a mix.
type Service struct {
	logger   *zap.Logger
	contract claims.IClaimContract
	store    persistence.IAllowlistPersistence

	mu       sync.RWMutex
	tree     *merkle.MerkleTree
	snapshot string
}

type Option func(*Service)

// WithContract checks every tree against the contract's root and reports
// claim status in Eligibility.
func WithContract(contract claims.IClaimContract) Option {
	return func(s *Service) {
		s.contract = contract
	}
}

// WithPersistence lets the service reload the active snapshot.
func WithPersistence(store persistence.IAllowlistPersistence) Option {
	return func(s *Service) {
		s.store = store
	}
}

// NewService creates a service without a tree. Load one with Reload or
// ReloadSnapshot before serving.
func NewService(logger *zap.Logger, opts ...Option) *Service {
	s := &Service{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload swaps in tree. snapshot names the stored snapshot it came from and
// may be empty. With a contract configured, a tree whose root differs from the
// contract's is rejected and the current tree stays in place.
func (s *Service) Reload(ctx context.Context, tree *merkle.MerkleTree, snapshot string) error {
	if tree == nil {
		return fmt.Errorf("tree cannot be nil")
	}
	if s.contract != nil {
		if err := deployment.ValidateRoot(ctx, tree, s.contract); err != nil {
			return err
		}
	}

	s.mu.Lock()
	previous := s.tree
	s.tree = tree
	s.snapshot = snapshot
	s.mu.Unlock()

	fields := []interface{}{"root", tree.RootHash().Hex(), "leaves", tree.Len(), "snapshot", snapshot}
	if previous != nil {
		fields = append(fields, "previousRoot", previous.RootHash().Hex())
	}
	s.logger.Sugar().Infow("Loaded allowlist tree", fields...)
	return nil
}

// ReloadSnapshot loads the active snapshot from persistence, rebuilds and
// validates its tree, then swaps it in.
func (s *Service) ReloadSnapshot(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("no persistence configured")
	}

	snapshot, err := s.store.GetActiveSnapshot()
	if err != nil {
		return fmt.Errorf("failed to read active snapshot: %w", err)
	}
	if snapshot == nil {
		return ErrNoActiveSnapshot
	}

	tree, err := deployment.ValidateSnapshot(snapshot)
	if err != nil {
		return err
	}
	return s.Reload(ctx, tree, snapshot.Name)
}

func (s *Service) current() (*merkle.MerkleTree, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, "", ErrNoTree
	}
	return s.tree, s.snapshot, nil
}

// Tree returns the tree being served.
func (s *Service) Tree() (*merkle.MerkleTree, error) {
	tree, _, err := s.current()
	return tree, err
}

func (s *Service) Info() (*TreeInfo, error) {
	tree, snapshot, err := s.current()
	if err != nil {
		return nil, err
	}
	return &TreeInfo{
		Root:     tree.RootHash(),
		Leaves:   tree.Len(),
		Depth:    tree.Depth(),
		Policy:   tree.Policy,
		Snapshot: snapshot,
	}, nil
}

// Root returns the root of the served tree.
func (s *Service) Root() ([32]byte, error) {
	tree, _, err := s.current()
	if err != nil {
		return [32]byte{}, err
	}
	return tree.Root, nil
}

// Proof parses address and returns its proof. An address outside the
// allowlist gets an empty proof and Eligible == false.
func (s *Service) Proof(address string) (*Proof, error) {
	addr, err := merkle.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	tree, _, err := s.current()
	if err != nil {
		return nil, err
	}
	return &Proof{
		MerkleProof: tree.GenerateProof(addr),
		Eligible:    tree.Contains(addr),
		Root:        tree.Root,
	}, nil
}

// Verify checks proof for address against the served root.
func (s *Service) Verify(address common.Address, proof [][32]byte) (bool, error) {
	tree, _, err := s.current()
	if err != nil {
		return false, err
	}
	return merkle.VerifyAddressProof(address, proof, tree.Root), nil
}

// VerifyLeaf checks proof for leaf against root, or the served root when root
// is nil.
func (s *Service) VerifyLeaf(leaf [32]byte, proof [][32]byte, root *[32]byte) (bool, error) {
	if root == nil {
		served, err := s.Root()
		if err != nil {
			return false, err
		}
		root = &served
	}
	return merkle.VerifyProof(leaf, proof, *root), nil
}

// Eligibility reports whether address is in the allowlist, its proof and,
// with a contract configured, whether it has already claimed.
func (s *Service) Eligibility(ctx context.Context, address string) (*Eligibility, error) {
	proof, err := s.Proof(address)
	if err != nil {
		return nil, err
	}

	result := &Eligibility{Proof: proof}

	if s.contract != nil {
		claimed, err := s.contract.IsClaimed(ctx, proof.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to read claim status: %w", err)
		}
		result.Claimed = &claimed
	}
	return result, nil
}

// HealthCheck reports whether a tree is loaded and persistence, if any, is up.
func (s *Service) HealthCheck() error {
	if _, _, err := s.current(); err != nil {
		return err
	}
	if s.store != nil {
		return s.store.HealthCheck()
	}
	return nil
}
