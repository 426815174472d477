// Package register drives the three-step registration flow: prove an
// anonymous identity, attest its nullifier on chain, then create the backend
// account. The sequencer is an explicit state machine; steps cannot be
// skipped, a completed attestation cannot be repeated, and every guard is
// enforced here rather than in the UI.
package register

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/voicevote/voicevote/internal/client/api"
	"github.com/voicevote/voicevote/internal/client/identity"
	"github.com/voicevote/voicevote/internal/client/storage"
	"github.com/voicevote/voicevote/internal/common"
)

// Step is the sequencer's position in the flow.
type Step string

const (
	StepIdentity Step = "identity"
	StepChain    Step = "chain"
	StepProfile  Step = "profile"
	StepDone     Step = "done"
)

// Backend is the slice of the API client the sequencer uses.
type Backend interface {
	CheckNullifier(ctx context.Context, nullifier string) (api.NullifierCheck, error)
	RegisterUser(ctx context.Context, req api.RegisterRequest) error
}

// Chain connects a wallet and writes the attestation.
type Chain interface {
	Connect(ctx context.Context) (string, error)
	StoreNullifier(ctx context.Context, from, nullifier string) (string, error)
}

// Sequencer owns the registration state. Progress is persisted in the local
// store, so an interrupted registration resumes at the right step.
type Sequencer struct {
	backend  Backend
	identity identity.Provider
	chain    Chain
	repo     storage.Repository

	mu        sync.Mutex
	nullifier string
	verified  bool
	txHash    string
	wallet    string
	done      bool
}

func NewSequencer(backend Backend, prover identity.Provider, chain Chain, repo storage.Repository) *Sequencer {
	return &Sequencer{backend: backend, identity: prover, chain: chain, repo: repo}
}

// Load restores persisted progress from the local store.
func (s *Sequencer) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.nullifier, err = storage.GetString(ctx, s.repo, storage.KeyNullifier); err != nil {
		return err
	}
	checked, err := storage.GetString(ctx, s.repo, storage.KeyNullifierChecked)
	if err != nil {
		return err
	}
	s.verified, _ = strconv.ParseBool(checked)
	if s.txHash, err = storage.GetString(ctx, s.repo, storage.KeyTxHash); err != nil {
		return err
	}
	if s.wallet, err = storage.GetString(ctx, s.repo, storage.KeyWalletAddress); err != nil {
		return err
	}
	return nil
}

// Step reports the current position.
func (s *Sequencer) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.done:
		return StepDone
	case !s.verified:
		return StepIdentity
	case s.txHash == "":
		return StepChain
	default:
		return StepProfile
	}
}

// Nullifier returns the extracted nullifier, or "".
func (s *Sequencer) Nullifier() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nullifier
}

// TxHash returns the attestation transaction hash, or "".
func (s *Sequencer) TxHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txHash
}

// AcquireNullifier reads the identity proof and extracts the nullifier from
// it. The prover must have reached the logged-in state.
func (s *Sequencer) AcquireNullifier(ctx context.Context) error {
	status, err := s.identity.Status(ctx)
	if err != nil {
		return err
	}
	if status != identity.StatusLoggedIn {
		return fmt.Errorf("identity proof not ready (status %s)", status)
	}

	proof, err := s.identity.Proof(ctx)
	if err != nil {
		return err
	}

	nullifier, err := ExtractNullifier(proof)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nullifier = nullifier
	s.verified = false
	if err := storage.SetString(ctx, s.repo, storage.KeyNullifier, nullifier); err != nil {
		return err
	}
	return storage.SetString(ctx, s.repo, storage.KeyNullifierChecked, "")
}

// VerifyNullifier asks the backend whether the nullifier is usable. A
// positive verdict advances the flow to the chain step; a negative one is
// returned to the caller without erroring.
func (s *Sequencer) VerifyNullifier(ctx context.Context) (api.NullifierCheck, error) {
	s.mu.Lock()
	nullifier := s.nullifier
	s.mu.Unlock()

	if nullifier == "" {
		return api.NullifierCheck{}, common.ErrNullifierNotChecked
	}

	check, err := s.backend.CheckNullifier(ctx, nullifier)
	if err != nil {
		return api.NullifierCheck{}, err
	}

	if check.OK {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.verified = true
		if err := storage.SetString(ctx, s.repo, storage.KeyNullifierChecked, "true"); err != nil {
			return api.NullifierCheck{}, err
		}
	}
	return check, nil
}

// StoreOnChain connects the wallet if needed and writes the nullifier to the
// registry. Once a transaction hash is recorded the call refuses to run
// again; one identity gets one attestation.
func (s *Sequencer) StoreOnChain(ctx context.Context) (string, error) {
	s.mu.Lock()
	if !s.verified {
		s.mu.Unlock()
		return "", common.ErrNullifierNotChecked
	}
	if s.txHash != "" {
		hash := s.txHash
		s.mu.Unlock()
		return hash, fmt.Errorf("%w: %s", common.ErrAlreadyStored, hash)
	}
	nullifier := s.nullifier
	wallet := s.wallet
	s.mu.Unlock()

	if wallet == "" {
		addr, err := s.chain.Connect(ctx)
		if err != nil {
			return "", err
		}
		wallet = addr
		s.mu.Lock()
		s.wallet = addr
		if err := storage.SetString(ctx, s.repo, storage.KeyWalletAddress, addr); err != nil {
			s.mu.Unlock()
			return "", err
		}
		s.mu.Unlock()
	}

	txHash, err := s.chain.StoreNullifier(ctx, wallet, nullifier)
	if err != nil {
		// step stays retryable; identity state is untouched
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txHash = txHash
	if err := storage.SetString(ctx, s.repo, storage.KeyTxHash, txHash); err != nil {
		return "", err
	}
	return txHash, nil
}

// SubmitProfile finishes registration. All guards are checked locally first;
// a violation never reaches the network.
func (s *Sequencer) SubmitProfile(ctx context.Context, region, password string) error {
	s.mu.Lock()
	if !s.verified {
		s.mu.Unlock()
		return common.ErrNullifierNotChecked
	}
	if s.txHash == "" {
		s.mu.Unlock()
		return common.ErrNoChainRecord
	}
	if region == "" || password == "" {
		s.mu.Unlock()
		return common.ErrMissingFields
	}
	req := api.RegisterRequest{
		Nullifier:     s.nullifier,
		KYCHash:       s.txHash,
		WalletAddress: s.wallet,
		State:         region,
		Password:      password,
	}
	s.mu.Unlock()

	if err := s.backend.RegisterUser(ctx, req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	if err := storage.SetString(ctx, s.repo, storage.KeyRegionState, region); err != nil {
		return err
	}
	return nil
}

// Reset drops all derived registration state ("scan again"). The persisted
// nullifier seed survives, so a re-scan derives the same identity.
func (s *Sequencer) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.DeleteMany(ctx,
		storage.KeyNullifier,
		storage.KeyNullifierChecked,
		storage.KeyTxHash,
		storage.KeyRegionState,
	)
	if err != nil {
		return err
	}

	s.nullifier = ""
	s.verified = false
	s.txHash = ""
	s.done = false
	return nil
}
