package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/airdrop"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/allowlist"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/clients/airdropClient"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/config"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/contractCaller"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/deployment"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/server"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

type diffOutput struct {
	OldRoot  string   `json:"old_root"`
	NewRoot  string   `json:"new_root"`
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Redeploy bool     `json:"redeploy"`
}

type snapshotOutput struct {
	Name            string `json:"name"`
	Root            string `json:"root"`
	Leaves          int    `json:"leaves"`
	OddNodePolicy   string `json:"odd_node_policy"`
	ContractAddress string `json:"contract_address,omitempty"`
	ChainID         uint64 `json:"chain_id,omitempty"`
	CreatedAt       string `json:"created_at"`
	Active          bool   `json:"active"`
}

type claimOutput struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	TxHash  string `json:"tx_hash"`
	Balance string `json:"balance"`
}

func rootResponse(tree *merkle.MerkleTree, snapshot string) *types.RootResponse {
	return &types.RootResponse{
		Root:          tree.RootHash().Hex(),
		Leaves:        tree.Len(),
		Depth:         tree.Depth(),
		OddNodePolicy: tree.Policy.String(),
		Snapshot:      snapshot,
	}
}

func hexAddresses(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}

func buildCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	if cfg.AllowlistPath == "" {
		return fmt.Errorf("--allowlist is required")
	}
	tree, _, err := loadTree(cfg, nil, l)
	if err != nil {
		return err
	}
	l.Sugar().Infow("Built allowlist tree",
		"root", tree.RootHash().Hex(), "leaves", tree.Len(), "policy", tree.Policy)

	name := c.String("save")
	if name == "" {
		if c.Bool("activate") {
			return fmt.Errorf("--activate requires --save")
		}
		return writeJSON(c, rootResponse(tree, ""))
	}

	if cfg.Persistence.Type == config.PersistenceType_Memory {
		l.Sugar().Warnw("Saving a snapshot to memory persistence, it will not outlive this command")
	}
	store, err := openPersistence(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshot := persistence.NewAllowlistSnapshot(name, tree)
	if cfg.ContractAddress != "" {
		snapshot.ContractAddress = common.HexToAddress(cfg.ContractAddress).Hex()
		snapshot.ChainID = uint64(cfg.ChainID)
	}
	if err := store.SaveSnapshot(snapshot); err != nil {
		return err
	}
	if c.Bool("activate") {
		if err := store.SetActiveSnapshot(name); err != nil {
			return err
		}
	}
	l.Sugar().Infow("Saved allowlist snapshot", "name", name, "active", c.Bool("activate"))

	return writeJSON(c, rootResponse(tree, name))
}

func proofCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	addr, err := merkle.ParseAddress(c.String("address"))
	if err != nil {
		return err
	}
	tree, _, err := withTree(cfg, l)
	if err != nil {
		return err
	}

	proof := tree.GenerateProof(addr)
	eligible := tree.Contains(addr)
	if !eligible {
		l.Sugar().Warnw("Address is not in the allowlist", "address", addr.Hex())
	}
	return writeJSON(c, &types.ProofResponse{
		Address:  addr.Hex(),
		Leaf:     common.Hash(proof.Leaf).Hex(),
		Proof:    proof.Hex(),
		Root:     tree.RootHash().Hex(),
		Eligible: eligible,
	})
}

func verifyCommand(c *cli.Context) error {
	address, leafHex := c.String("address"), c.String("leaf")
	if (address == "") == (leafHex == "") {
		return fmt.Errorf("exactly one of --address or --leaf is required")
	}

	root, err := merkle.ParseHash(c.String("root"))
	if err != nil {
		return fmt.Errorf("invalid --root: %w", err)
	}
	proof, err := merkle.ParseProof(c.StringSlice("proof"))
	if err != nil {
		return fmt.Errorf("invalid --proof: %w", err)
	}

	var leaf [32]byte
	if address != "" {
		addr, err := merkle.ParseAddress(address)
		if err != nil {
			return err
		}
		leaf = merkle.HashAddress(addr)
	} else if leaf, err = merkle.ParseHash(leafHex); err != nil {
		return fmt.Errorf("invalid --leaf: %w", err)
	}

	valid := merkle.VerifyProof(leaf, proof, root)
	if err := writeJSON(c, &types.VerifyResponse{Valid: valid, Root: common.Hash(root).Hex()}); err != nil {
		return err
	}
	if !valid {
		return errors.New("proof does not verify against root")
	}
	return nil
}

func diffCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	oldList, err := loadAllowlistFile(c.String("old"), l)
	if err != nil {
		return err
	}
	newList, err := loadAllowlistFile(c.String("new"), l)
	if err != nil {
		return err
	}

	oldTree, err := oldList.Tree(merkle.WithOddNodePolicy(cfg.Policy()))
	if err != nil {
		return fmt.Errorf("old allowlist: %w", err)
	}
	newTree, err := newList.Tree(merkle.WithOddNodePolicy(cfg.Policy()))
	if err != nil {
		return fmt.Errorf("new allowlist: %w", err)
	}

	diff := allowlist.Compare(oldList, newList)
	return writeJSON(c, &diffOutput{
		OldRoot:  oldTree.RootHash().Hex(),
		NewRoot:  newTree.RootHash().Hex(),
		Added:    hexAddresses(diff.Added),
		Removed:  hexAddresses(diff.Removed),
		Redeploy: oldTree.Root != newTree.Root,
	})
}

func snapshotsListCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	store, err := openPersistence(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshots, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	active, err := store.GetActiveSnapshot()
	if err != nil {
		return err
	}

	out := make([]*snapshotOutput, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, &snapshotOutput{
			Name:            s.Name,
			Root:            s.Root,
			Leaves:          len(s.Addresses),
			OddNodePolicy:   s.OddNodePolicy,
			ContractAddress: s.ContractAddress,
			ChainID:         s.ChainID,
			CreatedAt:       time.Unix(s.CreatedAt, 0).UTC().Format(time.RFC3339),
			Active:          active != nil && active.Name == s.Name,
		})
	}
	return writeJSON(c, out)
}

func snapshotName(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one snapshot NAME")
	}
	return c.Args().First(), nil
}

func snapshotsActivateCommand(c *cli.Context) error {
	name, err := snapshotName(c)
	if err != nil {
		return err
	}
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	store, err := openPersistence(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.LoadSnapshot(name)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: %q", persistence.ErrSnapshotNotFound, name)
	}
	// A snapshot that no longer rebuilds to its root is never served.
	tree, err := deployment.ValidateSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := store.SetActiveSnapshot(name); err != nil {
		return err
	}
	l.Sugar().Infow("Activated allowlist snapshot", "name", name, "root", snapshot.Root)
	return writeJSON(c, rootResponse(tree, name))
}

func snapshotsDeleteCommand(c *cli.Context) error {
	name, err := snapshotName(c)
	if err != nil {
		return err
	}
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	store, err := openPersistence(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteSnapshot(name); err != nil {
		return err
	}
	l.Sugar().Infow("Deleted allowlist snapshot", "name", name)
	return nil
}

func validateDeploymentCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	tree, name, err := withTree(cfg, l)
	if err != nil {
		return err
	}

	contract, _, closeClient, err := dialContract(c.Context, cfg, false, l)
	if err != nil {
		return err
	}
	defer closeClient()

	if err := deployment.ValidateRoot(c.Context, tree, contract); err != nil {
		return err
	}
	l.Sugar().Infow("Contract root matches allowlist",
		"contract", contract.ContractAddress().Hex(), "root", tree.RootHash().Hex())
	return writeJSON(c, rootResponse(tree, name))
}

func claimCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	contract, signer, closeClient, err := dialContract(c.Context, cfg, true, l)
	if err != nil {
		return err
	}
	defer closeClient()
	account := signer.GetFromAddress()

	var proof [][32]byte
	var root [32]byte
	if serverURL := c.String("proof-server"); serverURL != "" {
		client, err := airdropClient.NewClient(&airdropClient.ClientConfig{BaseURL: serverURL, Logger: l})
		if err != nil {
			return err
		}
		if proof, root, err = client.FetchClaimProof(c.Context, account.Hex()); err != nil {
			return err
		}
	} else {
		tree, _, err := withTree(cfg, l)
		if err != nil {
			return err
		}
		if !tree.Contains(account) {
			return fmt.Errorf("account %s is not in the allowlist", account.Hex())
		}
		proof, root = tree.GenerateProof(account).Proof, tree.Root
	}

	out, err := claimAirdrop(c.Context, contract, account, proof, root)
	if err != nil {
		return err
	}
	l.Sugar().Infow("Airdrop claimed", "account", out.Account, "txHash", out.TxHash, "balance", out.Balance)
	return writeJSON(c, out)
}

// claimAirdrop submits the claim once the contract is known to hold root.
func claimAirdrop(ctx context.Context, contract contractCaller.IContractCaller, account common.Address, proof [][32]byte, root [32]byte) (*claimOutput, error) {
	deployed, err := contract.MerkleRoot(ctx)
	if err != nil {
		return nil, err
	}
	if deployed != root {
		return nil, fmt.Errorf("%w: contract %s holds %s, proof is for %s", deployment.ErrRootMismatch,
			contract.ContractAddress().Hex(), common.Hash(deployed).Hex(), common.Hash(root).Hex())
	}

	receipt, err := contract.Claim(ctx, account, proof)
	if err != nil {
		return nil, err
	}
	balance, err := contract.BalanceOf(ctx, account)
	if err != nil {
		return nil, err
	}
	return &claimOutput{
		Account: receipt.Account.Hex(),
		Amount:  receipt.Amount.String(),
		TxHash:  receipt.TxHash.Hex(),
		Balance: balance.String(),
	}, nil
}

func serveCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []airdrop.Option
	if cfg.ContractAddress != "" {
		contract, _, closeClient, err := dialContract(ctx, cfg, false, l)
		if err != nil {
			return err
		}
		defer closeClient()
		opts = append(opts, airdrop.WithContract(contract))
	}

	// Without a file the server serves stored snapshots and can be reloaded.
	var tree *merkle.MerkleTree
	var name string
	if cfg.AllowlistPath != "" {
		if tree, _, err = loadTree(cfg, nil, l); err != nil {
			return err
		}
	} else {
		store, err := openPersistence(cfg, l)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, airdrop.WithPersistence(store))

		if cfg.Snapshot != "" {
			if tree, name, err = loadTree(cfg, store, l); err != nil {
				return err
			}
		}
	}

	service := airdrop.NewService(l, opts...)
	if tree != nil {
		err = service.Reload(ctx, tree, name)
	} else {
		err = service.ReloadSnapshot(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load allowlist tree: %w", err)
	}

	srv := server.NewServer(service, &cfg.Server, l)
	if err := srv.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	l.Sugar().Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
