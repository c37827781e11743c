package persistence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

var (
	// ErrSnapshotNotFound is returned when an operation names a snapshot that
	// has not been saved.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotRootMismatch means the stored root does not match the root
	// rebuilt from the stored addresses.
	ErrSnapshotRootMismatch = errors.New("snapshot root does not match its allowlist")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("persistence layer is closed")
)

// AllowlistSnapshot is an allowlist together with the root built from it and,
// once deployed, the contract holding that root.
type AllowlistSnapshot struct {
	// ID is a random identifier assigned when the snapshot is created.
	ID string `json:"id"`

	// Name is the primary key, e.g. "season-1".
	Name string `json:"name"`

	// Addresses in leaf order. Order is part of the root.
	Addresses []string `json:"addresses"`

	// Root is the 0x-prefixed merkle root of Addresses.
	Root string `json:"root"`

	// OddNodePolicy used when building the tree.
	OddNodePolicy string `json:"oddNodePolicy"`

	// ContractAddress is the airdrop contract the root was deployed to, if any.
	ContractAddress string `json:"contractAddress,omitempty"`

	// ChainID of the deployment, if any.
	ChainID uint64 `json:"chainId,omitempty"`

	// CreatedAt is the Unix timestamp the snapshot was taken.
	CreatedAt int64 `json:"createdAt"`
}

// NewAllowlistSnapshot captures tree under name.
func NewAllowlistSnapshot(name string, tree *merkle.MerkleTree) *AllowlistSnapshot {
	addrs := tree.Addresses()
	hexes := make([]string, len(addrs))
	for i, a := range addrs {
		hexes[i] = a.Hex()
	}

	return &AllowlistSnapshot{
		ID:            uuid.New().String(),
		Name:          name,
		Addresses:     hexes,
		Root:          tree.RootHash().Hex(),
		OddNodePolicy: tree.Policy.String(),
		CreatedAt:     time.Now().Unix(),
	}
}

// Validate checks the fields required to store a snapshot.
func (s *AllowlistSnapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if len(s.Addresses) == 0 {
		return fmt.Errorf("snapshot %q: %w", s.Name, merkle.ErrEmptyAllowlist)
	}
	if _, err := merkle.ParseHash(s.Root); err != nil {
		return fmt.Errorf("snapshot %q root: %w", s.Name, err)
	}
	if !merkle.OddNodePolicy(s.OddNodePolicy).Valid() {
		return fmt.Errorf("snapshot %q: unknown odd node policy %q", s.Name, s.OddNodePolicy)
	}
	if s.ContractAddress != "" && !common.IsHexAddress(s.ContractAddress) {
		return fmt.Errorf("snapshot %q: invalid contract address %q", s.Name, s.ContractAddress)
	}
	return nil
}

// Tree rebuilds the merkle tree from the stored addresses and checks it against
// the stored root. A snapshot whose root no longer matches is never served.
func (s *AllowlistSnapshot) Tree() (*merkle.MerkleTree, error) {
	policy := merkle.OddNodePolicy(s.OddNodePolicy)
	if policy == "" {
		policy = merkle.OddNodeDuplicate
	}

	tree, err := merkle.BuildMerkleTreeFromHex(s.Addresses, merkle.WithOddNodePolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild snapshot %q: %w", s.Name, err)
	}

	stored, err := merkle.ParseHash(s.Root)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q root: %w", s.Name, err)
	}
	if stored != tree.Root {
		return nil, fmt.Errorf("%w: snapshot %q stores %s, allowlist builds %s",
			ErrSnapshotRootMismatch, s.Name, s.Root, tree.RootHash().Hex())
	}

	return tree, nil
}

// Copy returns a deep copy of the snapshot.
func (s *AllowlistSnapshot) Copy() *AllowlistSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Addresses = make([]string, len(s.Addresses))
	copy(out.Addresses, s.Addresses)
	return &out
}
