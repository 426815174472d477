package wallet

import (
	"context"
	"fmt"
	"strconv"
)

// Connector bundles account access, chain selection and the registry into the
// single "connect and attest" surface the registration flow needs.
type Connector struct {
	provider Provider
	chain    ChainParams
	registry *Registry
}

func NewConnector(provider Provider, chain ChainParams, registry *Registry) *Connector {
	return &Connector{provider: provider, chain: chain, registry: registry}
}

// Connect prompts for account access, moves the wallet onto the target chain,
// and returns the checksummed primary account. The wallet's reported chain id
// must match the target before any transaction is sent through it.
func (c *Connector) Connect(ctx context.Context) (string, error) {
	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		return "", err
	}

	if err := c.provider.EnsureChain(ctx, c.chain); err != nil {
		return "", err
	}

	want, err := strconv.ParseInt(c.chain.ChainID, 0, 64)
	if err != nil {
		return "", fmt.Errorf("bad chain id %q: %w", c.chain.ChainID, err)
	}
	got, err := c.provider.ChainID(ctx)
	if err != nil {
		return "", err
	}
	if got != want {
		return "", fmt.Errorf("wallet is on chain 0x%x, want %s", got, c.chain.ChainID)
	}

	return ChecksumAddress(accounts[0])
}

// StoreNullifier writes the nullifier to the registry from the given account.
func (c *Connector) StoreNullifier(ctx context.Context, from, nullifier string) (string, error) {
	return c.registry.StoreNullifier(ctx, from, nullifier)
}
