package wallet

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/voicevote/voicevote/internal/common"
)

// ChainParams describes a chain for wallet_addEthereumChain.
type ChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ZeroGMainnet is the chain the registry contract lives on.
var ZeroGMainnet = ChainParams{
	ChainID:   "0x4105",
	ChainName: "0G Mainnet",
	NativeCurrency: NativeCurrency{
		Name:     "0G",
		Symbol:   "0G",
		Decimals: 18,
	},
	RPCURLs:           []string{"https://evmrpc.0g.ai"},
	BlockExplorerURLs: []string{"https://explorer.0g.ai"},
}

// Provider exposes the wallet operations the client needs.
type Provider interface {
	// Accounts lists currently connected accounts without prompting.
	Accounts(ctx context.Context) ([]string, error)

	// RequestAccounts prompts the user to connect and returns the accounts.
	RequestAccounts(ctx context.Context) ([]string, error)

	// ChainID reports the chain the wallet is currently on.
	ChainID(ctx context.Context) (int64, error)

	// EnsureChain switches the wallet to params' chain, adding it first when
	// the wallet does not know it yet.
	EnsureChain(ctx context.Context, params ChainParams) error

	// SendTransaction submits a transaction and returns its hash.
	SendTransaction(ctx context.Context, tx Transaction) (string, error)

	// TransactionReceipt fetches the receipt, or nil while the transaction is
	// still pending.
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
}

// Transaction is the subset of eth_sendTransaction fields the client uses.
type Transaction struct {
	From string `json:"from"`
	To   string `json:"to"`
	Data string `json:"data"`
}

// Receipt is the subset of a transaction receipt the client inspects.
type Receipt struct {
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status"`
	BlockNumber     string `json:"blockNumber"`
}

// Confirmed reports whether the transaction executed successfully.
func (r *Receipt) Confirmed() bool {
	return r != nil && r.Status == "0x1"
}

// RPCProvider implements Provider over a JSON-RPC endpoint.
type RPCProvider struct {
	rpc *RPCClient
}

func NewRPCProvider(rpc *RPCClient) *RPCProvider {
	return &RPCProvider{rpc: rpc}
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.rpc.Call(ctx, "eth_accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.rpc.Call(ctx, "eth_requestAccounts", nil, &accounts); err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, common.ErrNoWallet
	}
	return accounts, nil
}

// ChainID returns the wallet's current chain id.
func (p *RPCProvider) ChainID(ctx context.Context) (int64, error) {
	var raw string
	if err := p.rpc.Call(ctx, "eth_chainId", nil, &raw); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed chain id %q: %w", raw, err)
	}
	return id, nil
}

func (p *RPCProvider) EnsureChain(ctx context.Context, params ChainParams) error {
	err := p.rpc.Call(ctx, "wallet_switchEthereumChain", []any{map[string]string{"chainId": params.ChainID}}, nil)
	if err == nil {
		return nil
	}
	if !IsChainNotAdded(err) {
		return err
	}

	if err := p.rpc.Call(ctx, "wallet_addEthereumChain", []any{params}, nil); err != nil {
		return fmt.Errorf("%w: %v", common.ErrChainNotAdded, err)
	}
	return p.rpc.Call(ctx, "wallet_switchEthereumChain", []any{map[string]string{"chainId": params.ChainID}}, nil)
}

func (p *RPCProvider) SendTransaction(ctx context.Context, tx Transaction) (string, error) {
	var hash string
	if err := p.rpc.Call(ctx, "eth_sendTransaction", []any{tx}, &hash); err != nil {
		return "", err
	}
	return hash, nil
}

func (p *RPCProvider) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	var receipt *Receipt
	if err := p.rpc.Call(ctx, "eth_getTransactionReceipt", []any{txHash}, &receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}
