package merkle

import "errors"

var (
	// ErrInvalidAddress is returned for an allowlist entry that is not a
	// 20-byte hex address. A bad entry aborts the whole build.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrEmptyAllowlist is returned when building a tree from no addresses.
	ErrEmptyAllowlist = errors.New("cannot build merkle tree from empty allowlist")

	// ErrMalformedProof is returned when a proof element, leaf or root is not
	// exactly 32 bytes. A well-formed proof that does not verify is not an
	// error; it simply verifies to false.
	ErrMalformedProof = errors.New("malformed proof")
)
