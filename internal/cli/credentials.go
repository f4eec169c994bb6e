package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
)

// Save prompts for a site, username and password and stores the password
// encrypted. Saving the same site and username again replaces the secret.
func (a *App) Save(ctx context.Context) error {
	domain, err := getSimpleText(a.reader, "Enter site domain", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter site username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter site password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	info, err := a.vault.Credentials.Save(ctx, domain, username, password)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Saved credential for %s (%s).", info.Domain, info.Username))
	return nil
}

// Get prompts for a site and username and prints the decrypted password.
func (a *App) Get(ctx context.Context) error {
	domain, err := getSimpleText(a.reader, "Enter site domain", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter site username", os.Stdout)
	if err != nil {
		return err
	}

	plaintext, err := a.vault.Credentials.Get(ctx, domain, username)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Password:", string(plaintext))
	common.WipeByteArray(plaintext)
	return nil
}

// List prints metadata for the current user's stored credentials.
func (a *App) List(ctx context.Context) error {
	list, err := a.vault.Credentials.List(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No stored credentials.")
		return nil
	}
	for _, info := range list {
		printlnFn(fmt.Sprintf("%s  %s  %s", info.ID, info.Domain, info.Username))
	}
	return nil
}

// Delete prompts for a credential ID and removes the entry.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter credential id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.vault.Credentials.Delete(ctx, id); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Deleted.")
	return nil
}
