package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/config"
	"github.com/urfave/cli/v2"
)

var (
	allowlistFlag = &cli.StringFlag{
		Name:    "allowlist",
		Aliases: []string{"a"},
		Usage:   "Allowlist file (.json, .yaml or one address per line)",
		EnvVars: []string{config.EnvAirdropAllowlist},
	}
	snapshotFlag = &cli.StringFlag{
		Name:    "snapshot",
		Usage:   "Name of a stored allowlist snapshot, used instead of --allowlist",
		EnvVars: []string{config.EnvAirdropSnapshot},
	}
	contractFlag = &cli.StringFlag{
		Name:    "contract",
		Usage:   "Airdrop contract address",
		EnvVars: []string{config.EnvAirdropContractAddress},
	}
	privateKeyFlag = &cli.StringFlag{
		Name:    "private-key",
		Usage:   "Hex private key of the claiming account",
		EnvVars: []string{config.EnvAirdropPrivateKey},
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "airdrop",
		Usage: "Merkle allowlist tooling for the airdrop contract",
		Description: `Builds the merkle tree of an airdrop allowlist and works with the contract it is deployed to.

The root printed by "build" is the value the contract is deployed with. Proofs from
"proof" or the proof server are what claimAirdrop takes.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file; flags override its values",
				EnvVars: []string{config.EnvAirdropConfig},
			},
			&cli.Uint64Flag{
				Name:    "chain-id",
				Usage:   fmt.Sprintf("Ethereum chain ID: %s", config.GetSupportedChainIDsString()),
				EnvVars: []string{config.EnvAirdropChainID},
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Aliases: []string{"rpc"},
				Usage:   "Ethereum RPC endpoint URL",
				EnvVars: []string{config.EnvAirdropRPCURL},
			},
			&cli.StringFlag{
				Name:    "odd-node-policy",
				Usage:   "How an unpaired node is lifted: duplicate or promote",
				EnvVars: []string{config.EnvAirdropOddNodePolicy},
			},
			&cli.StringFlag{
				Name:    "persistence",
				Usage:   "Snapshot storage: memory, badger or redis",
				EnvVars: []string{config.EnvAirdropPersistence},
			},
			&cli.StringFlag{
				Name:    "data-path",
				Usage:   "Badger data directory",
				EnvVars: []string{config.EnvAirdropDataPath},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis host:port",
				EnvVars: []string{config.EnvAirdropRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvAirdropRedisPassword},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvAirdropVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Build the merkle tree of an allowlist and print its root",
				Flags: []cli.Flag{
					allowlistFlag,
					&cli.StringFlag{
						Name:  "save",
						Usage: "Store the allowlist as a snapshot with this name",
					},
					&cli.BoolFlag{
						Name:  "activate",
						Usage: "Mark the saved snapshot as the one the proof server serves",
					},
					contractFlag,
				},
				Action: buildCommand,
			},
			{
				Name:  "proof",
				Usage: "Print the inclusion proof of an address",
				Flags: []cli.Flag{
					allowlistFlag,
					snapshotFlag,
					&cli.StringFlag{
						Name:     "address",
						Usage:    "Address to prove",
						Required: true,
					},
				},
				Action: proofCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify a proof against a root",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "root",
						Usage:    "Merkle root (hex)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "address",
						Usage: "Address the proof is for",
					},
					&cli.StringFlag{
						Name:  "leaf",
						Usage: "Leaf hash, used instead of --address",
					},
					&cli.StringSliceFlag{
						Name:  "proof",
						Usage: "Proof elements, leaf to root, comma separated",
					},
				},
				Action: verifyCommand,
			},
			{
				Name:  "diff",
				Usage: "Show addresses added and removed between two allowlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "old",
						Usage:    "Previous allowlist file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "new",
						Usage:    "Next allowlist file",
						Required: true,
					},
				},
				Action: diffCommand,
			},
			{
				Name:  "snapshots",
				Usage: "Manage stored allowlist snapshots",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored snapshots",
						Action: snapshotsListCommand,
					},
					{
						Name:      "activate",
						Usage:     "Mark a snapshot as the one the proof server serves",
						ArgsUsage: "NAME",
						Action:    snapshotsActivateCommand,
					},
					{
						Name:      "delete",
						Usage:     "Delete a snapshot",
						ArgsUsage: "NAME",
						Action:    snapshotsDeleteCommand,
					},
				},
			},
			{
				Name:  "validate-deployment",
				Usage: "Check that the contract holds the root of the allowlist",
				Flags: []cli.Flag{
					allowlistFlag,
					snapshotFlag,
					contractFlag,
				},
				Action: validateDeploymentCommand,
			},
			{
				Name:  "claim",
				Usage: "Claim the airdrop for the account of --private-key",
				Flags: []cli.Flag{
					allowlistFlag,
					snapshotFlag,
					contractFlag,
					privateKeyFlag,
					&cli.StringFlag{
						Name:  "proof-server",
						Usage: "Fetch the proof from this proof server instead of building the tree locally",
					},
				},
				Action: claimCommand,
			},
			{
				Name:  "serve",
				Usage: "Serve proofs over HTTP",
				Flags: []cli.Flag{
					allowlistFlag,
					snapshotFlag,
					contractFlag,
					&cli.StringFlag{
						Name:    "listen",
						Usage:   "Listen address",
						EnvVars: []string{config.EnvAirdropListenAddress},
					},
					&cli.StringSliceFlag{
						Name:    "cors-origins",
						Usage:   "Allowed CORS origins",
						EnvVars: []string{config.EnvAirdropCORSOrigins},
					},
					&cli.Float64Flag{
						Name:    "rate-limit",
						Usage:   "Requests per second per client, 0 disables",
						EnvVars: []string{config.EnvAirdropRateLimit},
					},
				},
				Action: serveCommand,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
