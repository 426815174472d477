package config

import (
	"encoding/json"
	"os"

	"github.com/voicevote/voicevote/internal/flagx"
	"github.com/voicevote/voicevote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL            string         `json:"api_base_url"`
	AIBaseURL             string         `json:"ai_base_url"`
	ChainRPCURL           string         `json:"chain_rpc_url"`
	ContractAddress       string         `json:"contract_address"`
	DatabasePath          string         `json:"database_path"`
	ChainID               int64          `json:"chain_id"`
	AccountsCheckInterval timex.Duration `json:"accounts_check_interval"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Missing file path means no JSON is loaded. Read or
// unmarshal errors panic; callers can recover if desired. Empty JSON fields
// leave the current Config values untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AIBaseURL != "" {
		cfg.AIBaseURL = jc.AIBaseURL
	}
	if jc.ChainRPCURL != "" {
		cfg.ChainRPCURL = jc.ChainRPCURL
	}
	if jc.ContractAddress != "" {
		cfg.ContractAddress = jc.ContractAddress
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ChainID != 0 {
		cfg.ChainID = jc.ChainID
	}
	if jc.AccountsCheckInterval.Duration != 0 {
		cfg.AccountsCheckInterval = jc.AccountsCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
