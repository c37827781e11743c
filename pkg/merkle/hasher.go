package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// HashAddress returns the leaf for an address: keccak256 over its 20 raw bytes.
// This is what ethers' keccak256(address) computes for a hex address string.
func HashAddress(address common.Address) [32]byte {
	return keccak256(address.Bytes())
}

// hashPair computes keccak256(min(a, b) || max(a, b)).
func hashPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return keccak256(a[:], b[:])
}

func keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
