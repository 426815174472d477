// Package identity abstracts the anonymous identity proof used for
// registration. A Provider produces a raw proof payload; the registration
// sequencer extracts the nullifier from it. The production provider is an
// external prover; DevProver derives a deterministic proof locally for
// development and tests.
package identity

import (
	"context"
	"encoding/json"
)

// Status describes where the proving flow stands.
type Status string

const (
	StatusLoggedOut Status = "logged-out"
	StatusLoading   Status = "loading"
	StatusLoggedIn  Status = "logged-in"
)

// Provider yields identity proofs. Implementations must be safe for use from
// a single goroutine at a time.
type Provider interface {
	// Status reports the current proving state.
	Status(ctx context.Context) (Status, error)

	// Proof returns the raw proof payload once Status is StatusLoggedIn.
	Proof(ctx context.Context) (json.RawMessage, error)
}
