package wallet

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/crypto/sha3"

	"github.com/voicevote/voicevote/internal/common"
)

// Registry is the on-chain nullifier registry contract.
type Registry struct {
	provider Provider
	address  string

	// receipt polling knobs, swappable in tests
	pollInterval time.Duration
	maxPolls     uint64
}

func NewRegistry(provider Provider, address string) *Registry {
	return &Registry{
		provider:     provider,
		address:      address,
		pollInterval: 2 * time.Second,
		maxPolls:     30,
	}
}

// StoreNullifier calls storeNullifier(nullifier) from the given account,
// waits for the transaction to be mined, and returns its hash. A mined but
// reverted transaction returns ErrTxNotConfirmed.
func (r *Registry) StoreNullifier(ctx context.Context, from, nullifier string) (string, error) {
	if from == "" {
		return "", common.ErrNoWallet
	}

	txHash, err := r.provider.SendTransaction(ctx, Transaction{
		From: from,
		To:   r.address,
		Data: encodeStoreNullifier(nullifier),
	})
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	if err := r.waitMined(ctx, txHash); err != nil {
		return "", err
	}
	return txHash, nil
}

func (r *Registry) waitMined(ctx context.Context, txHash string) error {
	backoff := retry.WithMaxRetries(r.maxPolls, retry.NewConstant(r.pollInterval))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		receipt, err := r.provider.TransactionReceipt(ctx, txHash)
		if err != nil {
			return retry.RetryableError(err)
		}
		if receipt == nil {
			return retry.RetryableError(fmt.Errorf("%w: %s still pending", common.ErrTxNotConfirmed, txHash))
		}
		if !receipt.Confirmed() {
			return fmt.Errorf("%w: %s reverted", common.ErrTxNotConfirmed, txHash)
		}
		return nil
	})
}

// encodeStoreNullifier ABI-encodes the storeNullifier(string) call.
func encodeStoreNullifier(nullifier string) string {
	selector := methodSelector("storeNullifier(string)")

	arg := []byte(nullifier)
	padded := len(arg)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}

	// selector, then offset of the dynamic string, its length, and the
	// right-padded bytes
	data := make([]byte, 0, 4+32+32+padded)
	data = append(data, selector...)
	data = append(data, leftPadUint(32)...)
	data = append(data, leftPadUint(len(arg))...)
	data = append(data, arg...)
	data = append(data, make([]byte, padded-len(arg))...)

	return "0x" + hex.EncodeToString(data)
}

func methodSelector(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return h.Sum(nil)[:4]
}

func leftPadUint(n int) []byte {
	out := make([]byte, 32)
	v := uint64(n)
	for i := 31; i >= 0 && v > 0; i-- {
		out[i] = byte(v & 0xff)
		v >>= 8
	}
	return out
}
