// Package storage persists small client-side state (session token, wallet
// cache, registration progress) in a local sqlite database.
package storage

import "context"

// Well-known keys in the metadata table.
const (
	KeyToken            = "session.token"
	KeyWalletAddress    = "wallet.address"
	KeySeed             = "identity.seed"
	KeyNullifier        = "register.nullifier"
	KeyNullifierChecked = "register.nullifier_checked"
	KeyTxHash           = "register.tx_hash"
	KeyRegionState      = "register.state"
)

// Repository is a key/value store for client metadata.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
