package identity

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// DevProver is a local stand-in for the external prover. It derives a stable
// nullifier from the seed and the holder's document string, so the same
// inputs always register as the same person. Never use it against a
// production backend.
type DevProver struct {
	seed     int64
	document string

	proved bool
}

func NewDevProver(seed int64, document string) *DevProver {
	return &DevProver{seed: seed, document: document}
}

// Prove marks the identity as proven. The real prover does its zero-knowledge
// work here; the dev prover just flips state.
func (p *DevProver) Prove(ctx context.Context) error {
	if p.document == "" {
		return fmt.Errorf("document must not be empty")
	}
	p.proved = true
	return nil
}

func (p *DevProver) Status(ctx context.Context) (Status, error) {
	if !p.proved {
		return StatusLoggedOut, nil
	}
	return StatusLoggedIn, nil
}

// Proof returns a payload in the same shape the external prover emits, with
// the nullifier under [0].pcd -> proof.nullifier.
func (p *DevProver) Proof(ctx context.Context) (json.RawMessage, error) {
	if !p.proved {
		return nil, fmt.Errorf("identity not proven yet")
	}

	nullifier := p.deriveNullifier()

	pcd, err := json.Marshal(map[string]any{
		"proof": map[string]string{"nullifier": nullifier},
	})
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"0": map[string]string{"pcd": string(pcd)},
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *DevProver) deriveNullifier() string {
	hasher := blake3.New()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], uint64(p.seed))
	hasher.Write(seed[:])
	hasher.Write([]byte(p.document))
	return hex.EncodeToString(hasher.Sum(nil)[:16])
}
