package merkle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type buildOptions struct {
	policy OddNodePolicy
}

// Option configures BuildMerkleTree.
type Option func(*buildOptions)

// WithOddNodePolicy selects the odd node rule. The default is OddNodeDuplicate.
func WithOddNodePolicy(policy OddNodePolicy) Option {
	return func(o *buildOptions) {
		o.policy = policy
	}
}

// BuildMerkleTree creates a binary merkle tree from an ordered allowlist.
//
// Leaves keep the order of addresses, so the same list always yields the same
// root. Parents are keccak256 over the sorted pair of children, which keeps the
// tree compatible with OpenZeppelin's MerkleProof.verify.
// If there's an odd number of nodes at any level, the last node is duplicated
// unless WithOddNodePolicy(OddNodePromote) is given.
func BuildMerkleTree(addresses []common.Address, opts ...Option) (*MerkleTree, error) {
	if len(addresses) == 0 {
		return nil, ErrEmptyAllowlist
	}

	o := &buildOptions{policy: OddNodeDuplicate}
	for _, opt := range opts {
		opt(o)
	}
	if !o.policy.Valid() {
		return nil, fmt.Errorf("unknown odd node policy %q", o.policy)
	}

	addrs := make([]common.Address, len(addresses))
	copy(addrs, addresses)

	leaves := make([][32]byte, len(addrs))
	leafIndex := make(map[[32]byte]int, len(addrs))
	for i, addr := range addrs {
		leaves[i] = HashAddress(addr)
		if _, seen := leafIndex[leaves[i]]; !seen {
			leafIndex[leaves[i]] = i
		}
	}

	levels := make([][][32]byte, 0)
	levels = append(levels, leaves)

	currentLevel := leaves
	for len(currentLevel) > 1 {
		nextLevel := make([][32]byte, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			if i+1 < len(currentLevel) {
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i+1]))
				continue
			}

			// Last node on an odd level
			if o.policy == OddNodePromote {
				nextLevel = append(nextLevel, currentLevel[i])
			} else {
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i]))
			}
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	if len(currentLevel) != 1 {
		return nil, fmt.Errorf("merkle tree construction failed: final level has %d nodes instead of 1", len(currentLevel))
	}

	return &MerkleTree{
		Leaves:    leaves,
		Root:      currentLevel[0],
		Policy:    o.policy,
		addresses: addrs,
		leafIndex: leafIndex,
		levels:    levels,
	}, nil
}

// BuildMerkleTreeFromHex parses every entry with ParseAddress before building.
// Any malformed entry aborts construction with ErrInvalidAddress.
func BuildMerkleTreeFromHex(addresses []string, opts ...Option) (*MerkleTree, error) {
	parsed := make([]common.Address, len(addresses))
	for i, s := range addresses {
		addr, err := ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("allowlist entry %d: %w", i, err)
		}
		parsed[i] = addr
	}
	return BuildMerkleTree(parsed, opts...)
}

// RootHash returns the root as a common.Hash, mostly for printing.
func (mt *MerkleTree) RootHash() common.Hash {
	return common.Hash(mt.Root)
}

// Len returns the number of leaves.
func (mt *MerkleTree) Len() int {
	return len(mt.Leaves)
}

// Depth returns the number of levels above the leaves.
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// Addresses returns a copy of the allowlist the tree was built from.
func (mt *MerkleTree) Addresses() []common.Address {
	out := make([]common.Address, len(mt.addresses))
	copy(out, mt.addresses)
	return out
}

// Contains reports whether address is in the allowlist.
func (mt *MerkleTree) Contains(address common.Address) bool {
	_, ok := mt.leafIndex[HashAddress(address)]
	return ok
}

// GenerateProof returns the inclusion proof for address.
//
// An address that is not in the allowlist gets a proof with an empty sibling
// list, which fails verification against the root of any tree with more than
// one leaf. It is not an error.
func (mt *MerkleTree) GenerateProof(address common.Address) *MerkleProof {
	leaf := HashAddress(address)
	index, ok := mt.leafIndex[leaf]
	if !ok {
		return &MerkleProof{
			Address: address,
			Leaf:    leaf,
			Proof:   [][32]byte{},
		}
	}

	return &MerkleProof{
		Address: address,
		Leaf:    leaf,
		Proof:   mt.siblings(index),
	}
}

// GenerateProofForIndex creates a merkle proof for the leaf at the given index.
func (mt *MerkleTree) GenerateProofForIndex(leafIndex int) (*MerkleProof, error) {
	if leafIndex < 0 || leafIndex >= len(mt.Leaves) {
		return nil, fmt.Errorf("leaf index %d out of bounds (tree has %d leaves)", leafIndex, len(mt.Leaves))
	}

	return &MerkleProof{
		Address: mt.addresses[leafIndex],
		Leaf:    mt.Leaves[leafIndex],
		Proof:   mt.siblings(leafIndex),
	}, nil
}

// siblings walks from the leaf at index to the root collecting sibling hashes.
func (mt *MerkleTree) siblings(index int) [][32]byte {
	proof := make([][32]byte, 0, mt.Depth())

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		siblingIndex := index ^ 1
		switch {
		case siblingIndex < len(currentLevel):
			proof = append(proof, currentLevel[siblingIndex])
		case mt.Policy == OddNodeDuplicate:
			// Last node of an odd level was hashed with itself
			proof = append(proof, currentLevel[index])
		}
		// OddNodePromote: nothing to combine with at this level

		index = index / 2
	}

	return proof
}

// Verify checks proof against the tree's root.
func (mt *MerkleTree) Verify(proof *MerkleProof) bool {
	if proof == nil {
		return false
	}
	return VerifyProof(proof.Leaf, proof.Proof, mt.Root)
}

// VerifyProof recomputes the root from leaf and its sibling path and reports
// whether it equals root. Any wrong leaf, tampered sibling or wrong root yields
// false.
func VerifyProof(leaf [32]byte, proof [][32]byte, root [32]byte) bool {
	currentHash := leaf
	for _, siblingHash := range proof {
		currentHash = hashPair(currentHash, siblingHash)
	}
	return currentHash == root
}

// VerifyAddressProof verifies proof for address against root.
func VerifyAddressProof(address common.Address, proof [][32]byte, root [32]byte) bool {
	return VerifyProof(HashAddress(address), proof, root)
}
