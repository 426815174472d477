package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/voicevote/voicevote/internal/client/api"
	"github.com/voicevote/voicevote/internal/client/config"
	"github.com/voicevote/voicevote/internal/client/enrich"
	"github.com/voicevote/voicevote/internal/client/identity"
	"github.com/voicevote/voicevote/internal/client/media"
	"github.com/voicevote/voicevote/internal/client/register"
	"github.com/voicevote/voicevote/internal/client/session"
	"github.com/voicevote/voicevote/internal/client/storage"
	"github.com/voicevote/voicevote/internal/client/wallet"
	"github.com/voicevote/voicevote/internal/common"
)

// App wires the client services behind the REPL commands.
type App struct {
	config  *config.Config
	db      *sql.DB
	repo    storage.Repository
	session *session.Manager
	api     api.Client
	chain   register.Chain
	media   media.Store
	suggest suggester
	reader  *bufio.Reader

	// newProver builds a proved identity for the registration wizard.
	// Swappable in tests.
	newProver func(ctx context.Context, seed int64, document string) (identity.Provider, error)

	watcher *wallet.Watcher
}

// suggester is the slice of the enrichment client the post composer uses.
type suggester interface {
	Suggest(ctx context.Context, content string) (enrich.Suggestion, error)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if !wallet.IsValidAddress(c.ContractAddress) {
		return nil, fmt.Errorf("contract address %q: %w", c.ContractAddress, common.ErrInvalidAddress)
	}

	store, err := newMediaStore(ctx)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	repo := storage.NewSQLiteRepository(db)
	sess := session.NewManager(repo)

	apiClient := api.NewHTTPClient(c.APIBaseURL, sess, api.WithTimeout(c.RequestTimeout))

	rpc := wallet.NewRPCClient(c.ChainRPCURL, &http.Client{Timeout: c.RequestTimeout})
	provider := wallet.NewRPCProvider(rpc)
	registry := wallet.NewRegistry(provider, c.ContractAddress)

	chainParams := wallet.ZeroGMainnet
	chainParams.ChainID = fmt.Sprintf("0x%x", c.ChainID)
	chainParams.RPCURLs = []string{c.ChainRPCURL}
	connector := wallet.NewConnector(provider, chainParams, registry)

	app := &App{
		config:  c,
		db:      db,
		repo:    repo,
		session: sess,
		api:     apiClient,
		chain:   connector,
		media:   store,
		suggest: enrich.NewClient(c.AIBaseURL),
		reader:  bufio.NewReader(os.Stdin),
		newProver: func(ctx context.Context, seed int64, document string) (identity.Provider, error) {
			p := identity.NewDevProver(seed, document)
			if err := p.Prove(ctx); err != nil {
				return nil, err
			}
			return p, nil
		},
	}

	app.watcher = wallet.NewWatcher(provider, c.AccountsCheckInterval, func(accounts []string) {
		addr := ""
		if len(accounts) > 0 {
			addr = accounts[0]
		}
		if err := sess.SetWalletAddress(context.Background(), addr); err != nil {
			log.Printf("wallet watcher: %s", err.Error())
		}
	})

	return app, nil
}

// newMediaStore picks the upload backend from the environment: an
// S3-compatible bucket when S3_BUCKET is set, Pinata pinning when
// PINATA_API_KEY is set. Without credentials uploads are rejected with a
// clear error instead of a 401.
func newMediaStore(ctx context.Context) (media.Store, error) {
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		return media.NewS3Store(ctx, media.S3Config{
			Region:       os.Getenv("S3_REGION"),
			BaseEndpoint: os.Getenv("S3_ENDPOINT"),
			PublicURL:    os.Getenv("S3_PUBLIC_URL"),
			Bucket:       bucket,
			AccessKey:    os.Getenv("S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("S3_SECRET_KEY"),
		})
	}
	if key := os.Getenv("PINATA_API_KEY"); key != "" {
		gateway := os.Getenv("PINATA_GATEWAY_URL")
		if gateway == "" {
			gateway = "https://gateway.pinata.cloud"
		}
		return media.NewPinataStore(gateway, key, os.Getenv("PINATA_API_SECRET")), nil
	}
	return unconfiguredStore{}, nil
}

type unconfiguredStore struct{}

func (unconfiguredStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	return "", errNoMediaStore
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated(context.Background())
}

// StartWalletWatcher polls the RPC provider for account changes and keeps
// the cached wallet address current. Blocks until ctx is cancelled.
func (a *App) StartWalletWatcher(ctx context.Context) {
	a.watcher.Run(ctx)
}
