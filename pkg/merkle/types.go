package merkle

import (
	"github.com/ethereum/go-ethereum/common"
)

// OddNodePolicy decides what happens to the last node of a level that has an
// odd number of nodes.
type OddNodePolicy string

const (
	// OddNodeDuplicate pairs the last node with itself: parent = keccak256(x || x).
	OddNodeDuplicate OddNodePolicy = "duplicate"

	// OddNodePromote carries the last node up to the next level unchanged.
	// This is the merkletreejs default and is only needed to re-derive roots
	// that were produced with that library.
	OddNodePromote OddNodePolicy = "promote"
)

func (p OddNodePolicy) String() string {
	return string(p)
}

// Valid reports whether p is a known policy.
func (p OddNodePolicy) Valid() bool {
	return p == OddNodeDuplicate || p == OddNodePromote
}

// MerkleTree is an allowlist merkle tree. Leaves are keccak256 hashes of the
// allowlisted addresses in input order and every internal node is the hash of
// its two children sorted byte-wise, so proofs carry no position flags.
//
// A MerkleTree is never modified after BuildMerkleTree returns and is safe for
// concurrent use.
type MerkleTree struct {
	// Leaves contains the leaf hashes in allowlist order
	Leaves [][32]byte

	// Root is the merkle root hash
	Root [32]byte

	// Policy is the odd node rule the tree was built with
	Policy OddNodePolicy

	addresses []common.Address

	// leafIndex maps a leaf hash to the first position it appears at
	leafIndex map[[32]byte]int

	// levels[0] = leaves, levels[len-1] = [root]
	levels [][][32]byte
}

// MerkleProof is an inclusion proof for a single allowlist address.
type MerkleProof struct {
	Address common.Address

	// Leaf is keccak256(Address)
	Leaf [32]byte

	// Proof holds the sibling hashes from the leaf up to the root.
	// An empty proof for an address that is not the only member means the
	// address is not in the allowlist.
	Proof [][32]byte
}

// Hex returns the proof elements as 0x-prefixed hex strings, the form the
// claim contract and the frontend consume.
func (p *MerkleProof) Hex() []string {
	out := make([]string, len(p.Proof))
	for i, h := range p.Proof {
		out[i] = common.Hash(h).Hex()
	}
	return out
}
