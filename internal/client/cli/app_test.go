package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevote/voicevote/internal/client/config"
	"github.com/voicevote/voicevote/internal/client/media"
	"github.com/voicevote/voicevote/internal/common"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	return c
}

func clearMediaEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"S3_BUCKET", "PINATA_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestNewApp_WiresServices(t *testing.T) {
	clearMediaEnv(t)
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer app.db.Close()

	assert.NotNil(t, app.session)
	assert.NotNil(t, app.api)
	assert.NotNil(t, app.chain)
	assert.NotNil(t, app.watcher)
}

func TestNewApp_RejectsBadContractAddress(t *testing.T) {
	clearMediaEnv(t)
	cfg := testConfig(t)
	cfg.ContractAddress = "not-an-address"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidAddress))
}

func TestNewMediaStore_S3FromEnv(t *testing.T) {
	clearMediaEnv(t)
	t.Setenv("S3_BUCKET", "voicevote-media")
	t.Setenv("S3_REGION", "us-east-1")
	t.Setenv("S3_ENDPOINT", "http://127.0.0.1:9000")
	t.Setenv("S3_PUBLIC_URL", "http://127.0.0.1:9000")

	store, err := newMediaStore(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &media.S3Store{}, store)
}

func TestNewMediaStore_PinataFromEnv(t *testing.T) {
	clearMediaEnv(t)
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_API_SECRET", "secret")

	store, err := newMediaStore(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &media.PinataStore{}, store)
}

func TestNewMediaStore_UnconfiguredRejectsUploads(t *testing.T) {
	clearMediaEnv(t)

	store, err := newMediaStore(context.Background())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "x.png", []byte("data"))
	require.ErrorIs(t, err, errNoMediaStore)
}
