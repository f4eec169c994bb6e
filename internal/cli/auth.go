package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates a new account.
// Registering does not log the user in; the password byte slice is wiped
// before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	summary, err := a.vault.Register(ctx, username, password)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Account created: %s. Type 'login' to start a session.", summary.Username))
	return nil
}

// Login prompts for credentials, starts a session, and unlocks the vault.
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	summary, err := a.vault.Login(ctx, username, password)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s.", summary.Username))
	return nil
}

// Logout ends the session and wipes the vault key.
func (a *App) Logout(ctx context.Context) error {
	if err := a.vault.Logout(ctx); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Logged out.")
	return nil
}
