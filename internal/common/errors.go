// Package common defines shared constants and sentinel errors used across
// VoiceVote components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Backend response mapping.
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("server unavailable")

	// Session lifecycle.
	ErrSessionExpired   = errors.New("session expired")
	ErrNotAuthenticated = errors.New("authentication required")

	// Registration sequencer.
	ErrUnknownProofShape   = errors.New("unrecognized proof payload shape")
	ErrNullifierNotChecked = errors.New("nullifier not verified")
	ErrAlreadyStored       = errors.New("nullifier already stored on chain")
	ErrNoChainRecord       = errors.New("no on-chain attestation recorded")
	ErrMissingFields       = errors.New("required fields missing")

	// Wallet provider.
	ErrNoWallet       = errors.New("no wallet connected")
	ErrChainNotAdded  = errors.New("chain not added to wallet")
	ErrTxNotConfirmed = errors.New("transaction not confirmed")
	ErrInvalidAddress = errors.New("invalid wallet address")

	// Media validation.
	ErrNotAnImage = errors.New("file is not an image")
	ErrFileTooBig = errors.New("file exceeds size limit")
	ErrNoMedia    = errors.New("no media selected")
)
