// Package claims models the on-chain airdrop contract that stores the merkle
// root and tracks which accounts have claimed.
package claims

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrAlreadyClaimed mirrors the contract's Airdrop__AlreadyClaimed revert.
	ErrAlreadyClaimed = errors.New("airdrop already claimed")

	// ErrNotInAllowList mirrors the contract's Airdrop__NotInAllowList revert.
	ErrNotInAllowList = errors.New("account is not in the allowlist")
)

// AirdropTokenID is the token id every claim mints one unit of.
const AirdropTokenID = 0

// ClaimReceipt describes a successful claim, mirroring the
// AirdropClaimed(account, amount) event.
type ClaimReceipt struct {
	Account common.Address
	Amount  *big.Int
	TxHash  common.Hash
}

// IClaimContract is the claim contract as seen from off-chain tooling.
//
// The contract holds the root it was deployed with and the set of accounts
// that have claimed. A claim succeeds at most once per account and only with a
// proof that verifies against that root.
type IClaimContract interface {
	// MerkleRoot returns the root stored in the contract.
	MerkleRoot(ctx context.Context) ([32]byte, error)

	// IsClaimed reports whether account has already claimed.
	IsClaimed(ctx context.Context, account common.Address) (bool, error)

	// CanClaim reports whether account could claim with proof right now.
	CanClaim(ctx context.Context, account common.Address, proof [][32]byte) (bool, error)

	// Claim submits a claim for account. It returns ErrAlreadyClaimed or
	// ErrNotInAllowList when the contract would reject it.
	Claim(ctx context.Context, account common.Address, proof [][32]byte) (*ClaimReceipt, error)
}
