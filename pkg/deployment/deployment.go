// Package deployment checks that an allowlist and the contract it was deployed
// to agree on the merkle root.
package deployment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/ethereum/go-ethereum/common"
)

// ErrRootMismatch means the contract holds a root other than the one built
// from the allowlist. Proofs from the local tree would all be rejected.
var ErrRootMismatch = errors.New("merkle root mismatch")

// ValidateRoot reads the root stored in contract and compares it to tree's.
func ValidateRoot(ctx context.Context, tree *merkle.MerkleTree, contract claims.IClaimContract) error {
	if tree == nil {
		return fmt.Errorf("tree cannot be nil")
	}

	onChain, err := contract.MerkleRoot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read contract root: %w", err)
	}

	if onChain != tree.Root {
		return fmt.Errorf("%w: allowlist root %s, contract root %s",
			ErrRootMismatch, tree.RootHash().Hex(), common.Hash(onChain).Hex())
	}
	return nil
}

// ValidateSnapshot rebuilds the tree stored in snapshot and checks it against
// the recorded root.
func ValidateSnapshot(snapshot *persistence.AllowlistSnapshot) (*merkle.MerkleTree, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	tree, err := snapshot.Tree()
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", snapshot.Name, err)
	}
	return tree, nil
}

// ValidateSnapshotDeployment runs ValidateSnapshot and then ValidateRoot
// against the contract.
func ValidateSnapshotDeployment(ctx context.Context, snapshot *persistence.AllowlistSnapshot, contract claims.IClaimContract) (*merkle.MerkleTree, error) {
	tree, err := ValidateSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	if err := ValidateRoot(ctx, tree, contract); err != nil {
		return nil, err
	}
	return tree, nil
}
