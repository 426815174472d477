package config

import (
	"flag"
	"os"
	"time"

	"github.com/voicevote/voicevote/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-r", "-n", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST backend")
	fs.StringVar(&cfg.AIBaseURL, "e", cfg.AIBaseURL, "base URL of the enrichment service")
	fs.StringVar(&cfg.ChainRPCURL, "r", cfg.ChainRPCURL, "JSON-RPC endpoint of the attestation chain")
	fs.StringVar(&cfg.ContractAddress, "n", cfg.ContractAddress, "nullifier registry contract address")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite DSN of the local store")
	accountsCheckInterval := fs.Int("i", int(cfg.AccountsCheckInterval.Seconds()), "wallet accounts poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccountsCheckInterval = time.Duration(*accountsCheckInterval) * time.Second
}
