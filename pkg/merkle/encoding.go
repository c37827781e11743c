package merkle

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddress parses a 20-byte hex address. The 0x prefix is optional and hex
// case is ignored. Unlike common.HexToAddress it never pads or truncates, so a
// short or overlong entry is reported instead of silently hashed.
func ParseAddress(s string) (common.Address, error) {
	raw := strip0x(strings.TrimSpace(s))
	if len(raw) != 2*common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: %q must be %d hex characters", ErrInvalidAddress, s, 2*common.AddressLength)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return common.BytesToAddress(b), nil
}

// ParseHash parses a 32-byte hex hash (leaf, proof element or root).
func ParseHash(s string) ([32]byte, error) {
	raw := strip0x(strings.TrimSpace(s))
	if len(raw) != 2*common.HashLength {
		return [32]byte{}, fmt.Errorf("%w: %q must be %d hex characters", ErrMalformedProof, s, 2*common.HashLength)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: %q: %v", ErrMalformedProof, s, err)
	}
	var out [32]byte
	copy(out[:], b)
	return out, nil
}

// ParseProof parses hex encoded proof elements.
func ParseProof(elements []string) ([][32]byte, error) {
	proof := make([][32]byte, len(elements))
	for i, e := range elements {
		h, err := ParseHash(e)
		if err != nil {
			return nil, fmt.Errorf("proof element %d: %w", i, err)
		}
		proof[i] = h
	}
	return proof, nil
}

// ParseProofBytes splits a packed proof (siblings concatenated) into 32-byte
// elements. A length that is not a multiple of 32 is a truncated proof.
func ParseProofBytes(packed []byte) ([][32]byte, error) {
	if len(packed)%common.HashLength != 0 {
		return nil, fmt.Errorf("%w: packed proof length %d is not a multiple of %d", ErrMalformedProof, len(packed), common.HashLength)
	}
	proof := make([][32]byte, len(packed)/common.HashLength)
	for i := range proof {
		copy(proof[i][:], packed[i*common.HashLength:(i+1)*common.HashLength])
	}
	return proof, nil
}

// VerifyHexProof is VerifyProof for hex encoded input. It returns
// ErrMalformedProof when any value is not a 32-byte hash; otherwise the bool is
// the verification result.
func VerifyHexProof(leafHex string, proofHex []string, rootHex string) (bool, error) {
	leaf, err := ParseHash(leafHex)
	if err != nil {
		return false, fmt.Errorf("leaf: %w", err)
	}
	root, err := ParseHash(rootHex)
	if err != nil {
		return false, fmt.Errorf("root: %w", err)
	}
	proof, err := ParseProof(proofHex)
	if err != nil {
		return false, err
	}
	return VerifyProof(leaf, proof, root), nil
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
