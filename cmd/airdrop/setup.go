package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/allowlist"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/config"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/deployment"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/logger"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/factory"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/redis"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// loadConfig reads the optional config file and applies the flags that were set.
func loadConfig(c *cli.Context) (*config.AirdropConfig, error) {
	cfg := config.NewDefaultAirdropConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadAirdropConfig(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("chain-id") {
		cfg.ChainID = config.ChainId(c.Uint64("chain-id"))
	}
	if c.IsSet("rpc-url") {
		cfg.RpcUrl = c.String("rpc-url")
	}
	if c.IsSet("odd-node-policy") {
		cfg.OddNodePolicy = c.String("odd-node-policy")
	}
	if c.IsSet("persistence") {
		cfg.Persistence.Type = config.PersistenceType(c.String("persistence"))
	}
	if c.IsSet("data-path") {
		cfg.Persistence.DataPath = c.String("data-path")
	}
	if c.IsSet("redis-address") || c.IsSet("redis-password") {
		if cfg.Persistence.Redis == nil {
			cfg.Persistence.Redis = &redis.RedisConfig{}
		}
		if c.IsSet("redis-address") {
			cfg.Persistence.Redis.Address = c.String("redis-address")
		}
		if c.IsSet("redis-password") {
			cfg.Persistence.Redis.Password = c.String("redis-password")
		}
	}
	if c.IsSet("verbose") {
		cfg.Debug = c.Bool("verbose")
	}

	if c.IsSet("allowlist") {
		cfg.AllowlistPath = c.String("allowlist")
	}
	if c.IsSet("snapshot") {
		cfg.Snapshot = c.String("snapshot")
	}
	if c.IsSet("contract") {
		cfg.ContractAddress = c.String("contract")
	}
	if c.IsSet("private-key") {
		cfg.Signer = &transactionSigner.SignerConfig{PrivateKey: c.String("private-key")}
	}
	if c.IsSet("listen") {
		cfg.Server.ListenAddress = c.String("listen")
	}
	if c.IsSet("cors-origins") {
		cfg.Server.CORSOrigins = c.StringSlice("cors-origins")
	}
	if c.IsSet("rate-limit") {
		cfg.Server.RateLimit = c.Float64("rate-limit")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(c *cli.Context) (*config.AirdropConfig, *zap.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, l, nil
}

func openPersistence(cfg *config.AirdropConfig, l *zap.Logger) (persistence.IAllowlistPersistence, error) {
	store, err := factory.NewPersistence(&cfg.Persistence, l)
	if err != nil {
		return nil, fmt.Errorf("failed to open persistence: %w", err)
	}
	return store, nil
}

// loadAllowlistFile reads and parses the allowlist file, warning about repeated entries.
func loadAllowlistFile(path string, l *zap.Logger) (*allowlist.Allowlist, error) {
	list, err := allowlist.Load(path)
	if err != nil {
		return nil, err
	}
	if dups := list.Duplicates(); len(dups) > 0 {
		l.Sugar().Warnw("Allowlist contains duplicate addresses, proofs use the first occurrence",
			"count", len(dups), "first", dups[0].Hex())
	}
	return list, nil
}

// loadTree builds the tree from --allowlist or rebuilds it from --snapshot.
// The returned name is the snapshot's, or empty for a file.
func loadTree(cfg *config.AirdropConfig, store persistence.IAllowlistPersistence, l *zap.Logger) (*merkle.MerkleTree, string, error) {
	if err := cfg.RequireAllowlistSource(); err != nil {
		return nil, "", err
	}

	if cfg.AllowlistPath != "" {
		list, err := loadAllowlistFile(cfg.AllowlistPath, l)
		if err != nil {
			return nil, "", err
		}
		tree, err := list.Tree(merkle.WithOddNodePolicy(cfg.Policy()))
		if err != nil {
			return nil, "", err
		}
		return tree, "", nil
	}

	if store == nil {
		return nil, "", fmt.Errorf("snapshot %q requested but no persistence is open", cfg.Snapshot)
	}
	snapshot, err := store.LoadSnapshot(cfg.Snapshot)
	if err != nil {
		return nil, "", err
	}
	if snapshot == nil {
		return nil, "", fmt.Errorf("%w: %q", persistence.ErrSnapshotNotFound, cfg.Snapshot)
	}
	tree, err := deployment.ValidateSnapshot(snapshot)
	if err != nil {
		return nil, "", err
	}
	return tree, snapshot.Name, nil
}

// withTree opens persistence only when a snapshot is requested.
func withTree(cfg *config.AirdropConfig, l *zap.Logger) (*merkle.MerkleTree, string, error) {
	if cfg.Snapshot == "" {
		return loadTree(cfg, nil, l)
	}
	store, err := openPersistence(cfg, l)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = store.Close() }()
	return loadTree(cfg, store, l)
}

// dialContract connects to the RPC endpoint and binds the airdrop contract.
// The signer is created only when withSigner is set.
func dialContract(ctx context.Context, cfg *config.AirdropConfig, withSigner bool, l *zap.Logger) (*caller.ContractCaller, transactionSigner.ITransactionSigner, func(), error) {
	if err := cfg.RequireContract(); err != nil {
		return nil, nil, nil, err
	}

	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.RpcUrl, err)
	}

	var signer transactionSigner.ITransactionSigner
	if withSigner {
		if err := cfg.RequireSigner(); err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		if signer, err = transactionSigner.NewTransactionSigner(cfg.Signer, client, l); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("failed to create signer: %w", err)
		}
	}

	cc, err := caller.NewContractCaller(common.HexToAddress(cfg.ContractAddress), client, signer, l)
	if err != nil {
		client.Close()
		return nil, nil, nil, err
	}
	return cc, signer, client.Close, nil
}

func writeJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
