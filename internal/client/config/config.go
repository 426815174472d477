package config

import "time"

// Config holds runtime settings for the VoiceVote CLI.
//
// Fields:
//   - APIBaseURL: base URL of the VoiceVote REST backend.
//   - AIBaseURL: base URL of the caption/hashtag enrichment service.
//   - ChainRPCURL: JSON-RPC endpoint of the attestation chain node.
//   - ChainID: numeric chain id the client insists on before sending
//     transactions (0x4105 is the 0G mainnet).
//   - ContractAddress: nullifier registry contract.
//   - DatabasePath: sqlite DSN of the local client store.
//   - AccountsCheckInterval: how often the wallet watcher polls for
//     account changes.
//   - RequestTimeout: per-request deadline for backend calls.
type Config struct {
	APIBaseURL            string
	AIBaseURL             string
	ChainRPCURL           string
	ContractAddress       string
	DatabasePath          string
	ChainID               int64
	AccountsCheckInterval time.Duration
	RequestTimeout        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.AIBaseURL = "http://127.0.0.1:8000"
	c.ChainRPCURL = "https://evmrpc.0g.ai"
	c.ChainID = 0x4105
	c.ContractAddress = "0xE940A67c83a9B9fDce85af250A1DABB3C5b8f38A"
	c.DatabasePath = "voicevote.db"
	c.AccountsCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
