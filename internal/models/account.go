// Package models defines the persisted record types of the vault: accounts,
// encrypted credentials, history entries and the session snapshot. All types
// carry snake_case JSON tags matching the on-disk layout; []byte fields are
// stored base64-encoded by encoding/json.
package models

import "time"

// Account is a registered user record as persisted in users.json. The
// password itself is never stored: PasswordHash is the PBKDF2 verifier,
// and KeySalt feeds the vault key derivation on login. The two salts are
// independent so the stored hash reveals nothing about the key.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"password_hash"`
	Salt         []byte    `json:"salt"`
	KeySalt      []byte    `json:"key_salt"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

// AccountSummary is the listing view of an account, safe to show without
// exposing hash material.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Summary returns the listing view of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Username: a.Username}
}
