package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://api.example.org",
		"chain_id": 31337,
		"accounts_check_interval": "5s"
	}`), 0o600))

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://api.example.org", cfg.APIBaseURL)
	assert.Equal(t, int64(31337), cfg.ChainID)
	assert.Equal(t, 5*time.Second, cfg.AccountsCheckInterval)
	// untouched field keeps its default
	assert.Equal(t, "voicevote.db", cfg.DatabasePath)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd", "-c", "/nonexistent/config.json"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
