package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/voicevote/voicevote/internal/client/register"
	"github.com/voicevote/voicevote/internal/common"
)

// Register runs the anonymous registration wizard. Progress is persisted
// locally, so a wizard interrupted after the on-chain attestation resumes
// directly at the profile step.
//
// The steps mirror the registration sequencer:
//
//  1. identity — derive a nullifier from an identity document and check it
//     against the backend,
//  2. chain    — connect a wallet and record the nullifier on chain,
//  3. profile  — choose a region and password and create the account.
func (a *App) Register(ctx context.Context) error {
	seq := register.NewSequencer(a.api, nil, a.chain, a.repo)
	if err := seq.Load(ctx); err != nil {
		return err
	}

	if seq.Step() == register.StepIdentity {
		next, err := a.registerIdentity(ctx)
		if err != nil {
			return err
		}
		if next.Step() == register.StepIdentity {
			// Verification did not pass, nothing further to do.
			return nil
		}
		seq = next
	} else {
		fmt.Println("Resuming registration at step:", seq.Step())
	}

	if seq.Step() == register.StepChain {
		txHash, err := seq.StoreOnChain(ctx)
		if err != nil && !errors.Is(err, common.ErrAlreadyStored) {
			log.Printf("On-chain attestation failed: %s", err.Error())
			fmt.Println("Run 'register' again to retry.")
			return err
		}
		fmt.Println("Nullifier recorded on chain:", txHash)
	}

	if seq.Step() == register.StepProfile {
		if err := a.registerProfile(ctx, seq); err != nil {
			return err
		}
	}

	if seq.Step() == register.StepDone {
		fmt.Println("Registration complete. Use 'login' to sign in.")
	}
	return nil
}

// registerIdentity acquires a nullifier from a fresh identity proof and
// verifies it is not already registered. A new sequencer is built around the
// proved identity because the document is only known at this point.
func (a *App) registerIdentity(ctx context.Context) (*register.Sequencer, error) {
	document, err := getSimpleText(a.reader, "Enter your identity document number", os.Stdout)
	if err != nil {
		return nil, err
	}

	seed, err := a.session.Seed(ctx)
	if err != nil {
		return nil, err
	}

	prover, err := a.newProver(ctx, seed, document)
	if err != nil {
		log.Printf("Identity proof failed: %s", err.Error())
		return nil, err
	}

	seq := register.NewSequencer(a.api, prover, a.chain, a.repo)
	if err := seq.Load(ctx); err != nil {
		return nil, err
	}

	if err := seq.AcquireNullifier(ctx); err != nil {
		log.Printf("error: %v", err)
		return nil, err
	}

	verdict, err := seq.VerifyNullifier(ctx)
	if err != nil {
		log.Printf("Verification failed: %s", err.Error())
		return nil, err
	}
	if !verdict.OK {
		fmt.Println("Identity rejected:", verdict.Message)
		return seq, nil
	}

	fmt.Println("Identity verified, nullifier:", seq.Nullifier())
	return seq, nil
}

func (a *App) registerProfile(ctx context.Context, seq *register.Sequencer) error {
	region, err := getSimpleText(a.reader, "Enter your state or region", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := seq.SubmitProfile(ctx, region, string(password)); err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}
	return nil
}
