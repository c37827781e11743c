package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultAirdropConfig(t *testing.T) {
	cfg := NewDefaultAirdropConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ChainName_EthereumAnvil, cfg.ChainName)
	assert.Equal(t, merkle.OddNodeDuplicate, cfg.Policy())
}

func TestParseAirdropConfig(t *testing.T) {
	data := []byte(`
chainId: 11155111
rpcUrl: https://sepolia.example.org
contractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
allowlist: ./allowlist.json
oddNodePolicy: promote
persistence:
  type: redis
  redis:
    address: localhost:6379
    db: 2
server:
  listenAddress: ":9000"
  corsOrigins: ["https://app.example.org"]
  readTimeout: 3s
signer:
  privateKey: "0xabc"
`)

	cfg, err := ParseAirdropConfig(data)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ChainId_EthereumSepolia, cfg.ChainID)
	assert.Equal(t, ChainName_EthereumSepolia, cfg.ChainName)
	assert.Equal(t, merkle.OddNodePromote, cfg.Policy())
	assert.Equal(t, PersistenceType_Redis, cfg.Persistence.Type)
	assert.Equal(t, 2, cfg.Persistence.Redis.DB)
	assert.Equal(t, ":9000", cfg.Server.ListenAddress)
	assert.Equal(t, []string{"https://app.example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	// untouched defaults survive
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, float64(10), cfg.Server.RateLimit)
	require.NotNil(t, cfg.Signer)
	assert.Equal(t, "0xabc", cfg.Signer.PrivateKey)

	require.NoError(t, cfg.RequireContract())
	require.NoError(t, cfg.RequireSigner())
	require.NoError(t, cfg.RequireAllowlistSource())
}

func TestParseAirdropConfig_Invalid(t *testing.T) {
	_, err := ParseAirdropConfig([]byte("chainId: [1, 2"))
	require.Error(t, err)
}

func TestLoadAirdropConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chainId: 1\nsnapshot: season-1\n"), 0o600))

	cfg, err := LoadAirdropConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ChainId_EthereumMainnet, cfg.ChainID)
	assert.Equal(t, "season-1", cfg.Snapshot)

	_, err = LoadAirdropConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestAirdropConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AirdropConfig)
		wantErr string
	}{
		{
			name:    "unsupported chain",
			mutate:  func(c *AirdropConfig) { c.ChainID = 5 },
			wantErr: "chainId",
		},
		{
			name:    "unknown odd node policy",
			mutate:  func(c *AirdropConfig) { c.OddNodePolicy = "sorted" },
			wantErr: "oddNodePolicy",
		},
		{
			name:    "bad contract address",
			mutate:  func(c *AirdropConfig) { c.ContractAddress = "0x1234" },
			wantErr: "contractAddress",
		},
		{
			name:    "badger without data path",
			mutate:  func(c *AirdropConfig) { c.Persistence.Type = PersistenceType_Badger },
			wantErr: "persistence.dataPath",
		},
		{
			name:    "redis without address",
			mutate:  func(c *AirdropConfig) { c.Persistence.Type = PersistenceType_Redis },
			wantErr: "persistence.redis.address",
		},
		{
			name:    "unknown persistence type",
			mutate:  func(c *AirdropConfig) { c.Persistence.Type = "postgres" },
			wantErr: "persistence.type",
		},
		{
			name:    "missing listen address",
			mutate:  func(c *AirdropConfig) { c.Server.ListenAddress = "" },
			wantErr: "server.listenAddress",
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *AirdropConfig) { c.Server.RateBurst = 0 },
			wantErr: "server.rateBurst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultAirdropConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("collects every error", func(t *testing.T) {
		cfg := NewDefaultAirdropConfig()
		cfg.ChainID = 5
		cfg.Server.ListenAddress = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chainId")
		assert.Contains(t, err.Error(), "server.listenAddress")
	})
}

func TestAirdropConfig_Requirements(t *testing.T) {
	cfg := NewDefaultAirdropConfig()

	err := cfg.RequireContract()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contractAddress")

	err = cfg.RequireSigner()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signer.privateKey")

	require.Error(t, cfg.RequireAllowlistSource())
	cfg.AllowlistPath = "list.txt"
	require.NoError(t, cfg.RequireAllowlistSource())
	cfg.Snapshot = "v1"
	require.Error(t, cfg.RequireAllowlistSource())
}
