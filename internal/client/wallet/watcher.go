package wallet

import (
	"context"
	"time"
)

// Watcher polls the wallet for account changes and reports them to a
// callback: the browser's accountsChanged event, rebuilt on a ticker.
type Watcher struct {
	provider Provider
	interval time.Duration
	onChange func(accounts []string)

	last []string
}

func NewWatcher(provider Provider, interval time.Duration, onChange func(accounts []string)) *Watcher {
	return &Watcher{provider: provider, interval: interval, onChange: onChange}
}

// Run polls until ctx is cancelled. Poll errors are treated as "no accounts";
// a wallet that stops answering looks the same as one that disconnected.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pollCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			accounts, err := w.provider.Accounts(pollCtx)
			cancel()

			if err != nil {
				accounts = nil
			}
			if !equalAccounts(accounts, w.last) {
				w.last = accounts
				w.onChange(accounts)
			}

		case <-ctx.Done():
			return
		}
	}
}

func equalAccounts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
