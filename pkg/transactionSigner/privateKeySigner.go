package transactionSigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

var fallbackGasTipCap = big.NewInt(1_000_000_000) // 1 gwei

const baseFeeMultiplier = 2

// PrivateKeySigner implements ITransactionSigner with a local ECDSA key.
type PrivateKeySigner struct {
	ethClient   EthBackend
	logger      *zap.Logger
	chainID     *big.Int
	privateKey  *ecdsa.PrivateKey
	fromAddress common.Address
}

// NewPrivateKeySigner creates a signer from a hex encoded private key. The chain
// id is read from the client once.
func NewPrivateKeySigner(privateKeyHex string, ethClient EthBackend, logger *zap.Logger) (*PrivateKeySigner, error) {
	chainID, err := ethClient.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return newPrivateKeySigner(privateKeyHex, chainID, ethClient, logger)
}

func newPrivateKeySigner(privateKeyHex string, chainID *big.Int, ethClient EthBackend, logger *zap.Logger) (*PrivateKeySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &PrivateKeySigner{
		ethClient:   ethClient,
		logger:      logger,
		chainID:     chainID,
		privateKey:  privateKey,
		fromAddress: crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// GetTransactOpts returns keyed transaction options with NoSend set, so
// bindings build and sign the transaction and SignAndSendTransaction submits it.
func (pks *PrivateKeySigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pks.privateKey, pks.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.NoSend = true
	return opts, nil
}

// SignAndSendTransaction signs tx if it isn't already signed by this key, sends
// it and waits for the receipt. A reverted receipt is an error.
func (pks *PrivateKeySigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	signer := types.LatestSignerForChainID(pks.chainID)

	signedTx := tx
	if sender, err := types.Sender(signer, tx); err != nil || sender != pks.fromAddress {
		signedTx, err = types.SignTx(tx, signer, pks.privateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to sign transaction: %w", err)
		}
	}

	if err := pks.ethClient.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	pks.logger.Sugar().Infow("SignAndSendTransaction: transaction sent",
		"txHash", signedTx.Hash().Hex(),
		"from", pks.fromAddress.Hex(),
		"nonce", signedTx.Nonce(),
		"gasLimit", signedTx.Gas(),
	)

	receipt, err := bind.WaitMined(ctx, pks.ethClient, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		pks.logger.Sugar().Errorw("SignAndSendTransaction: transaction failed",
			"txHash", receipt.TxHash.Hex(),
			"status", receipt.Status,
			"gasUsed", receipt.GasUsed,
		)
		return nil, fmt.Errorf("transaction %s failed with status %d", receipt.TxHash.Hex(), receipt.Status)
	}

	pks.logger.Sugar().Infow("SignAndSendTransaction: transaction succeeded",
		"txHash", receipt.TxHash.Hex(),
		"gasUsed", receipt.GasUsed,
		"blockNumber", receipt.BlockNumber,
	)
	return receipt, nil
}

// GetFromAddress returns the address derived from the private key
func (pks *PrivateKeySigner) GetFromAddress() common.Address {
	return pks.fromAddress
}

// EstimateGasPriceAndLimit returns maxFeePerGas (2x base fee plus tip) and the
// estimated gas limit with a 20% buffer.
func (pks *PrivateKeySigner) EstimateGasPriceAndLimit(ctx context.Context, tx *types.Transaction) (*big.Int, uint64, error) {
	gasTipCap, err := pks.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		pks.logger.Sugar().Warnw("EstimateGasPriceAndLimit: cannot get gasTipCap, using fallback", "error", err)
		gasTipCap = fallbackGasTipCap
	}

	header, err := pks.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get latest block header: %w", err)
	}

	maxFeePerGas := new(big.Int).Set(gasTipCap)
	if header.BaseFee != nil {
		maxFeePerGas.Add(maxFeePerGas, new(big.Int).Mul(header.BaseFee, big.NewInt(baseFeeMultiplier)))
	}

	gasLimit, err := pks.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:      pks.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to estimate gas: %w", err)
	}

	return maxFeePerGas, addGasBuffer(gasLimit), nil
}

func addGasBuffer(gasLimit uint64) uint64 {
	return gasLimit * 12 / 10
}
