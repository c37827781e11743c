package contractCaller

import (
	"context"
	"math/big"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// SimulatedContractCaller adapts claims.Simulated to IContractCaller so the
// claim flow can be exercised without a chain.
type SimulatedContractCaller struct {
	*claims.Simulated
	address common.Address
}

var _ IContractCaller = (*SimulatedContractCaller)(nil)

// NewSimulatedContractCaller deploys a simulated contract holding root at address.
func NewSimulatedContractCaller(address common.Address, root [32]byte, logger *zap.Logger) *SimulatedContractCaller {
	return &SimulatedContractCaller{
		Simulated: claims.NewSimulated(root, logger),
		address:   address,
	}
}

func (s *SimulatedContractCaller) ContractAddress() common.Address {
	return s.address
}

func (s *SimulatedContractCaller) BalanceOf(_ context.Context, account common.Address) (*big.Int, error) {
	return s.Simulated.BalanceOf(account), nil
}
