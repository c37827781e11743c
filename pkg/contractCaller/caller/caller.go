package caller

import (
	"bytes"
	"context"
	"math/big"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/contractCaller"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/middleware-bindings/Airdrop"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoSigner is returned by Claim when the caller was built read-only.
var ErrNoSigner = errors.New("no transaction signer configured")

type ContractCaller struct {
	ethclient       transactionSigner.EthBackend
	logger          *zap.Logger
	signer          transactionSigner.ITransactionSigner
	contractAddress common.Address

	airdrop     *Airdrop.Airdrop
	contractAbi *abi.ABI
}

var _ contractCaller.IContractCaller = (*ContractCaller)(nil)

// NewContractCaller binds the airdrop contract at contractAddress. signer may be
// nil, in which case only the read methods are usable.
func NewContractCaller(
	contractAddress common.Address,
	ethclient transactionSigner.EthBackend,
	signer transactionSigner.ITransactionSigner,
	logger *zap.Logger,
) (*ContractCaller, error) {
	if contractAddress == (common.Address{}) {
		return nil, errors.New("contract address cannot be the zero address")
	}

	airdrop, err := Airdrop.NewAirdrop(contractAddress, ethclient)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create airdrop contract instance")
	}

	contractAbi, err := Airdrop.AirdropMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse airdrop ABI")
	}

	logger.Sugar().Infow("Using airdrop contract",
		zap.String("address", contractAddress.Hex()),
		zap.Bool("canSign", signer != nil),
	)

	return &ContractCaller{
		ethclient:       ethclient,
		logger:          logger,
		signer:          signer,
		contractAddress: contractAddress,
		airdrop:         airdrop,
		contractAbi:     contractAbi,
	}, nil
}

func (cc *ContractCaller) ContractAddress() common.Address {
	return cc.contractAddress
}

func (cc *ContractCaller) MerkleRoot(ctx context.Context) ([32]byte, error) {
	root, err := cc.airdrop.GetMerkleRoot(&bind.CallOpts{Context: ctx})
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to get merkle root")
	}
	return root, nil
}

func (cc *ContractCaller) IsClaimed(ctx context.Context, account common.Address) (bool, error) {
	claimed, err := cc.airdrop.SClaimed(&bind.CallOpts{Context: ctx}, account)
	if err != nil {
		return false, errors.Wrapf(err, "failed to get claim status for %s", account.Hex())
	}
	return claimed, nil
}

// CanClaim asks the contract whether account could claim with proof. The
// contract reverts instead of returning false for a proof outside the
// allowlist, so known reverts are reported as false.
func (cc *ContractCaller) CanClaim(ctx context.Context, account common.Address, proof [][32]byte) (bool, error) {
	ok, err := cc.airdrop.CanClaim(&bind.CallOpts{Context: ctx, From: account}, account, proof)
	if err != nil {
		if revertErr := cc.decodeRevert(err); revertErr != nil {
			cc.logger.Sugar().Debugw("canClaim reverted",
				zap.String("account", account.Hex()),
				zap.Error(revertErr),
			)
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to check claim eligibility for %s", account.Hex())
	}
	return ok, nil
}

func (cc *ContractCaller) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := cc.airdrop.BalanceOf(&bind.CallOpts{Context: ctx}, account, big.NewInt(claims.AirdropTokenID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get balance for %s", account.Hex())
	}
	return balance, nil
}

// decodeRevert maps a call error carrying one of the contract's custom errors
// to its sentinel. Anything else yields nil.
func (cc *ContractCaller) decodeRevert(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil
	}

	var data []byte
	switch v := dataErr.ErrorData().(type) {
	case string:
		data = common.FromHex(v)
	case []byte:
		data = v
	}
	if len(data) < 4 {
		return nil
	}

	for name, sentinel := range map[string]error{
		"Airdrop__AlreadyClaimed": claims.ErrAlreadyClaimed,
		"Airdrop__NotInAllowList": claims.ErrNotInAllowList,
	} {
		abiErr, ok := cc.contractAbi.Errors[name]
		if ok && bytes.Equal(abiErr.ID[:4], data[:4]) {
			return sentinel
		}
	}
	return nil
}
