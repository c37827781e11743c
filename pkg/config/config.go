package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/redis"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for airdrop tooling configuration
const (
	EnvAirdropConfig          = "AIRDROP_CONFIG"
	EnvAirdropRPCURL          = "AIRDROP_RPC_URL"
	EnvAirdropChainID         = "AIRDROP_CHAIN_ID"
	EnvAirdropContractAddress = "AIRDROP_CONTRACT_ADDRESS"
	EnvAirdropAllowlist       = "AIRDROP_ALLOWLIST"
	EnvAirdropOddNodePolicy   = "AIRDROP_ODD_NODE_POLICY"
	EnvAirdropSnapshot        = "AIRDROP_SNAPSHOT"
	EnvAirdropPrivateKey      = "AIRDROP_PRIVATE_KEY"
	EnvAirdropPersistence     = "AIRDROP_PERSISTENCE"
	EnvAirdropDataPath        = "AIRDROP_DATA_PATH"
	EnvAirdropRedisAddress    = "AIRDROP_REDIS_ADDRESS"
	EnvAirdropRedisPassword   = "AIRDROP_REDIS_PASSWORD"
	EnvAirdropListenAddress   = "AIRDROP_LISTEN_ADDRESS"
	EnvAirdropCORSOrigins     = "AIRDROP_CORS_ORIGINS"
	EnvAirdropRateLimit       = "AIRDROP_RATE_LIMIT"
	EnvAirdropVerbose         = "AIRDROP_VERBOSE"
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_EthereumMainnet,
		ChainId_EthereumSepolia,
		ChainId_EthereumAnvil,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (sepolia), %d (anvil)",
		ChainId_EthereumMainnet, ChainId_EthereumSepolia, ChainId_EthereumAnvil)
}

type PersistenceType string

const (
	PersistenceType_Memory PersistenceType = "memory"
	PersistenceType_Badger PersistenceType = "badger"
	PersistenceType_Redis  PersistenceType = "redis"
)

type PersistenceConfig struct {
	Type     PersistenceType    `yaml:"type"`
	DataPath string             `yaml:"dataPath"`
	Redis    *redis.RedisConfig `yaml:"redis"`
}

func (pc *PersistenceConfig) Validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList
	switch pc.Type {
	case PersistenceType_Memory:
	case PersistenceType_Badger:
		if pc.DataPath == "" {
			allErrors = append(allErrors, field.Required(path.Child("dataPath"), "dataPath is required for badger persistence"))
		}
	case PersistenceType_Redis:
		if pc.Redis == nil || pc.Redis.Address == "" {
			allErrors = append(allErrors, field.Required(path.Child("redis", "address"), "redis address is required for redis persistence"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(path.Child("type"), pc.Type,
			[]string{string(PersistenceType_Memory), string(PersistenceType_Badger), string(PersistenceType_Redis)}))
	}
	return allErrors
}

type ServerConfig struct {
	ListenAddress string        `yaml:"listenAddress"`
	CORSOrigins   []string      `yaml:"corsOrigins"`
	RateLimit     float64       `yaml:"rateLimit"` // requests per second per client, 0 disables
	RateBurst     int           `yaml:"rateBurst"`
	ReadTimeout   time.Duration `yaml:"readTimeout"`
	WriteTimeout  time.Duration `yaml:"writeTimeout"`
}

func (sc *ServerConfig) Validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList
	if sc.ListenAddress == "" {
		allErrors = append(allErrors, field.Required(path.Child("listenAddress"), "listenAddress is required"))
	}
	if sc.RateLimit < 0 {
		allErrors = append(allErrors, field.Invalid(path.Child("rateLimit"), sc.RateLimit, "must not be negative"))
	}
	if sc.RateLimit > 0 && sc.RateBurst < 1 {
		allErrors = append(allErrors, field.Invalid(path.Child("rateBurst"), sc.RateBurst, "must be at least 1 when rate limiting is enabled"))
	}
	return allErrors
}

// AirdropConfig is the configuration shared by the airdrop CLI commands and
// the proof server. Values come from an optional YAML file, then flags.
type AirdropConfig struct {
	// Chain configuration
	ChainID   ChainId   `yaml:"chainId"`
	ChainName ChainName `yaml:"-"`
	RpcUrl    string    `yaml:"rpcUrl"`

	// Airdrop contract the allowlist was deployed to
	ContractAddress string `yaml:"contractAddress"`

	// Allowlist source: a file, or a snapshot in persistence
	AllowlistPath string `yaml:"allowlist"`
	Snapshot      string `yaml:"snapshot"`
	OddNodePolicy string `yaml:"oddNodePolicy"`

	Persistence PersistenceConfig               `yaml:"persistence"`
	Server      ServerConfig                    `yaml:"server"`
	Signer      *transactionSigner.SignerConfig `yaml:"signer"`

	Debug bool `yaml:"debug"`
}

// NewDefaultAirdropConfig returns the configuration used when nothing is set.
func NewDefaultAirdropConfig() *AirdropConfig {
	return &AirdropConfig{
		ChainID:       ChainId_EthereumAnvil,
		RpcUrl:        "http://localhost:8545",
		OddNodePolicy: merkle.OddNodeDuplicate.String(),
		Persistence: PersistenceConfig{
			Type: PersistenceType_Memory,
		},
		Server: ServerConfig{
			ListenAddress: ":8080",
			CORSOrigins:   []string{"*"},
			RateLimit:     10,
			RateBurst:     20,
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  10 * time.Second,
		},
	}
}

// LoadAirdropConfig reads a YAML file over the defaults.
func LoadAirdropConfig(path string) (*AirdropConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseAirdropConfig(data)
}

// ParseAirdropConfig decodes YAML over the defaults.
func ParseAirdropConfig(data []byte) (*AirdropConfig, error) {
	cfg := NewDefaultAirdropConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Policy returns the configured odd node policy.
func (c *AirdropConfig) Policy() merkle.OddNodePolicy {
	if c.OddNodePolicy == "" {
		return merkle.OddNodeDuplicate
	}
	return merkle.OddNodePolicy(strings.ToLower(c.OddNodePolicy))
}

// Validate checks the fields every command relies on and resolves ChainName.
// Command specific requirements are checked with the Require* helpers.
func (c *AirdropConfig) Validate() error {
	var allErrors field.ErrorList

	chainName, exists := ChainIdToName[c.ChainID]
	if !exists {
		allErrors = append(allErrors, field.Invalid(field.NewPath("chainId"), c.ChainID,
			fmt.Sprintf("unsupported chain ID, supported: %s", GetSupportedChainIDsString())))
	}
	if !c.Policy().Valid() {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("oddNodePolicy"), c.OddNodePolicy,
			[]string{merkle.OddNodeDuplicate.String(), merkle.OddNodePromote.String()}))
	}
	if c.ContractAddress != "" && !common.IsHexAddress(c.ContractAddress) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("contractAddress"), c.ContractAddress, "invalid address format"))
	}
	allErrors = append(allErrors, c.Persistence.Validate(field.NewPath("persistence"))...)
	allErrors = append(allErrors, c.Server.Validate(field.NewPath("server"))...)

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	c.ChainName = chainName
	return nil
}

// RequireContract checks what commands that talk to the contract need.
func (c *AirdropConfig) RequireContract() error {
	var allErrors field.ErrorList
	if c.RpcUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	}
	if c.ContractAddress == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("contractAddress"), "contractAddress is required"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// RequireSigner checks that a signing key is configured.
func (c *AirdropConfig) RequireSigner() error {
	if c.Signer == nil || c.Signer.PrivateKey == "" {
		return field.ErrorList{
			field.Required(field.NewPath("signer", "privateKey"), "privateKey is required to send transactions"),
		}.ToAggregate()
	}
	return nil
}

// RequireAllowlistSource checks that exactly one allowlist source is set.
func (c *AirdropConfig) RequireAllowlistSource() error {
	switch {
	case c.AllowlistPath == "" && c.Snapshot == "":
		return field.ErrorList{
			field.Required(field.NewPath("allowlist"), "either allowlist or snapshot is required"),
		}.ToAggregate()
	case c.AllowlistPath != "" && c.Snapshot != "":
		return field.ErrorList{
			field.Forbidden(field.NewPath("snapshot"), "allowlist and snapshot are mutually exclusive"),
		}.ToAggregate()
	}
	return nil
}
