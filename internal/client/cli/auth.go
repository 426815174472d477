package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/voicevote/voicevote/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Login prompts for a username and password and authenticates against the
// backend. On success the session token is persisted, so subsequent runs
// stay logged in until the token expires.
//
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	if err := a.session.SetToken(ctx, token); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Logout drops the persisted session token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Invalidate(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
