package contractCaller

import (
	"context"
	"math/big"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/ethereum/go-ethereum/common"
)

// IContractCaller talks to a deployed airdrop contract.
type IContractCaller interface {
	claims.IClaimContract

	// ContractAddress returns the address of the airdrop contract.
	ContractAddress() common.Address

	// BalanceOf returns how many units of the airdrop token account holds.
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}
