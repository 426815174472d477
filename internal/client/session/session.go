// Package session keeps client-side authentication and wallet state: the
// bearer token, the cached wallet address, and the nullifier seed. Everything
// is persisted through the local store so a restarted CLI resumes where the
// user left off.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voicevote/voicevote/internal/client/storage"
)

// DefaultNullifierSeed is used until the user picks their own seed.
const DefaultNullifierSeed = 1234

// Manager owns the persisted session state. Safe for concurrent use.
type Manager struct {
	repo storage.Repository
	mu   sync.Mutex

	// now is swappable in tests for expiry checks.
	now func() time.Time
}

func NewManager(repo storage.Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// Token returns the stored bearer token, or "" when logged out. A token whose
// exp claim has passed is dropped instead of being sent to the backend. The
// signature is not verified here; only the backend can do that.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := storage.GetString(ctx, m.repo, storage.KeyToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", nil
	}

	if m.expired(token) {
		if err := m.repo.Delete(ctx, storage.KeyToken); err != nil {
			return "", err
		}
		return "", nil
	}

	return token, nil
}

func (m *Manager) expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// not a JWT; let the backend judge it
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(m.now())
}

// SetToken stores the bearer token after a successful login.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return storage.SetString(ctx, m.repo, storage.KeyToken, token)
}

// Invalidate drops the token. Called on logout and when the backend answers
// 401.
func (m *Manager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Delete(ctx, storage.KeyToken)
}

// IsAuthenticated reports whether a usable token is present.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.Token(ctx)
	return err == nil && token != ""
}

// WalletAddress returns the cached wallet address, or "".
func (m *Manager) WalletAddress(ctx context.Context) (string, error) {
	return storage.GetString(ctx, m.repo, storage.KeyWalletAddress)
}

// SetWalletAddress caches the connected wallet address. An empty address
// clears the cache; the token is deliberately left alone, a disconnected
// wallet does not end the backend session.
func (m *Manager) SetWalletAddress(ctx context.Context, addr string) error {
	return storage.SetString(ctx, m.repo, storage.KeyWalletAddress, addr)
}

// Seed returns the persisted nullifier seed, initializing it to
// DefaultNullifierSeed on first use.
func (m *Manager) Seed(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := storage.GetString(ctx, m.repo, storage.KeySeed)
	if err != nil {
		return 0, err
	}
	if s == "" {
		if err := storage.SetString(ctx, m.repo, storage.KeySeed, strconv.FormatInt(DefaultNullifierSeed, 10)); err != nil {
			return 0, err
		}
		return DefaultNullifierSeed, nil
	}

	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return DefaultNullifierSeed, nil
	}
	return seed, nil
}

// SetSeed overrides the nullifier seed.
func (m *Manager) SetSeed(ctx context.Context, seed int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return storage.SetString(ctx, m.repo, storage.KeySeed, strconv.FormatInt(seed, 10))
}
