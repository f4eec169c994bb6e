// Package common defines shared sentinel errors and small helpers used
// across the Prism vault components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Account registry errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// Session gating errors. ErrKeyUnavailable means the identity is known
	// but the vault key was never derived in this process (restart restore);
	// the fix is to log in again.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrKeyUnavailable   = errors.New("vault key unavailable")

	// Entry-scoped errors. ErrDecryptionFailed means the ciphertext does not
	// open under the current session key: foreign or corrupted data rather
	// than a missing login.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrNotFound         = errors.New("not found")

	// Storage errors (unexpected write failures; read failures degrade to
	// empty documents instead).
	ErrStorageIO = errors.New("storage i/o error")
)
