// Package config loads runtime configuration for the VoiceVote CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-e string   base URL of the enrichment service
//	-r string   JSON-RPC endpoint of the attestation chain
//	-n string   nullifier registry contract address
//	-d string   sqlite DSN of the local store
//	-i int      wallet accounts poll interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.voicevote.example",
//	  "ai_base_url": "https://ai.voicevote.example",
//	  "chain_rpc_url": "https://evmrpc.0g.ai",
//	  "chain_id": 16645,
//	  "contract_address": "0x...",
//	  "database_path": "voicevote.db",
//	  "accounts_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
