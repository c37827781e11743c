package caller

import (
	"context"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/claims"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Claim submits claimAirdrop(proof) from the signer's account. The contract
// claims for msg.sender, so account must be the signer's address.
//
// The claim status and proof are checked with calls first so the common
// rejections come back as claims.ErrAlreadyClaimed or claims.ErrNotInAllowList
// without spending gas.
func (cc *ContractCaller) Claim(ctx context.Context, account common.Address, proof [][32]byte) (*claims.ClaimReceipt, error) {
	if cc.signer == nil {
		return nil, ErrNoSigner
	}
	if from := cc.signer.GetFromAddress(); from != account {
		return nil, errors.Errorf("claims are sent by the signer %s, cannot claim for %s", from.Hex(), account.Hex())
	}

	claimed, err := cc.IsClaimed(ctx, account)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, claims.ErrAlreadyClaimed
	}

	ok, err := cc.CanClaim(ctx, account, proof)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, claims.ErrNotInAllowList
	}

	opts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction options")
	}

	tx, err := cc.airdrop.ClaimAirdrop(opts, proof)
	if err != nil {
		if revertErr := cc.decodeRevert(err); revertErr != nil {
			return nil, revertErr
		}
		return nil, errors.Wrap(err, "failed to build claimAirdrop transaction")
	}

	cc.logger.Sugar().Infow("Claiming airdrop",
		zap.String("account", account.Hex()),
		zap.Int("proofLength", len(proof)),
	)

	receipt, err := cc.signAndSendTransaction(ctx, tx, "claimAirdrop")
	if err != nil {
		return nil, errors.Wrap(err, "failed to send claimAirdrop transaction")
	}

	return cc.claimReceiptFromLogs(receipt)
}

// claimReceiptFromLogs finds the AirdropClaimed event the contract emitted.
func (cc *ContractCaller) claimReceiptFromLogs(receipt *ethereumTypes.Receipt) (*claims.ClaimReceipt, error) {
	eventID := cc.contractAbi.Events["AirdropClaimed"].ID

	for _, log := range receipt.Logs {
		if log == nil || log.Address != cc.contractAddress || len(log.Topics) == 0 || log.Topics[0] != eventID {
			continue
		}
		event, err := cc.airdrop.ParseAirdropClaimed(*log)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse AirdropClaimed event")
		}
		return &claims.ClaimReceipt{
			Account: event.Account,
			Amount:  event.Amount,
			TxHash:  receipt.TxHash,
		}, nil
	}

	return nil, errors.Errorf("transaction %s emitted no AirdropClaimed event", receipt.TxHash.Hex())
}
