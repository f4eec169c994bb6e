// Package session tracks who is logged in and holds the derived vault key.
//
// The key exists only in memory. Logging in derives it from the plaintext
// password at the single moment the plaintext is available; logging out wipes
// it. The persisted session snapshot carries identity only, so restoring
// after a restart lands in an intermediate state where the user is known but
// vault entries stay sealed until the password is entered again.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/cryptox"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

// SessionsFile is the document holding the persisted session snapshot.
const SessionsFile = "sessions.json"

// State describes the session lifecycle.
type State int

const (
	// StateLoggedOut means no user is active.
	StateLoggedOut State = iota
	// StateIdentityRestored means the user is known from a previous run but
	// the vault key has not been derived in this process.
	StateIdentityRestored
	// StateLoggedIn means the user is active and the vault key is in memory.
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateIdentityRestored:
		return "identity restored"
	case StateLoggedIn:
		return "logged in"
	default:
		return "logged out"
	}
}

// Authenticator is the slice of the account registry the session layer needs.
type Authenticator interface {
	Authenticate(ctx context.Context, username string, password []byte) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

// Manager defines session operations for the vault.
//
// Contract:
//   - Login: authenticate, derive the vault key, persist the snapshot.
//   - Logout: wipe the key and clear both memory and the snapshot.
//   - Restore: load the snapshot from a previous run; identity only.
//   - Current: the active user, if any.
//   - HasKey / Key: access to the derived key for vault operations.
//   - State: where the session is in its lifecycle.
type Manager interface {
	Login(ctx context.Context, username string, password []byte) (models.AccountSummary, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.AccountSummary, bool, error)
	Current() (models.AccountSummary, bool)
	HasKey() bool
	Key() ([]byte, error)
	State() State
}

// manager is the concrete Manager.
type manager struct {
	accounts Authenticator
	store    *store.Store
	logger   logging.Logger

	mu      sync.RWMutex
	current *models.AccountSummary
	key     []byte
}

// NewManager constructs a Manager bound to the given account registry and store.
func NewManager(accounts Authenticator, st *store.Store, logger logging.Logger) Manager {
	return &manager{accounts: accounts, store: st, logger: logger}
}

// Login authenticates username, derives the vault key from the plaintext
// password, and persists the session snapshot. A login over an existing
// session replaces it, wiping the previous key.
func (m *manager) Login(ctx context.Context, username string, password []byte) (models.AccountSummary, error) {
	account, err := m.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return models.AccountSummary{}, err
	}

	key := cryptox.DeriveVaultKey(password, account.KeySalt)

	record := models.SessionRecord{UserID: account.ID, Timestamp: time.Now().UTC()}
	if err := store.Write(ctx, m.store, SessionsFile, record); err != nil {
		common.WipeByteArray(key)
		return models.AccountSummary{}, err
	}

	summary := account.Summary()

	m.mu.Lock()
	common.WipeByteArray(m.key)
	m.current = &summary
	m.key = key
	m.mu.Unlock()

	m.logger.Info(ctx, "session started", "username", summary.Username)
	return summary, nil
}

// Logout wipes the vault key and the current user from memory, then clears
// the persisted snapshot. Memory is cleared even when the snapshot write
// fails: the returned error then means the identity pointer is stale on
// disk, never that the key survived. Logging out while logged out is a
// no-op.
func (m *manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	common.WipeByteArray(m.key)
	m.key = nil
	m.current = nil
	m.mu.Unlock()

	if err := store.Write(ctx, m.store, SessionsFile, models.SessionRecord{}); err != nil {
		return err
	}

	m.logger.Info(ctx, "session ended")
	return nil
}

// Restore loads the session snapshot left by a previous run. On success the
// session enters the identity-restored state: Current reports the user, but
// the key stays unavailable until Login runs again. A snapshot naming an
// unknown user is treated as stale and cleared.
func (m *manager) Restore(ctx context.Context) (models.AccountSummary, bool, error) {
	record, err := store.Read[models.SessionRecord](ctx, m.store, SessionsFile)
	if err != nil {
		return models.AccountSummary{}, false, err
	}
	if record.UserID == "" {
		return models.AccountSummary{}, false, nil
	}

	account, err := m.accounts.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			m.logger.Warn(ctx, "stale session snapshot, clearing", "user_id", record.UserID)
			return models.AccountSummary{}, false, store.Write(ctx, m.store, SessionsFile, models.SessionRecord{})
		}
		return models.AccountSummary{}, false, err
	}

	summary := account.Summary()

	m.mu.Lock()
	common.WipeByteArray(m.key)
	m.key = nil
	m.current = &summary
	m.mu.Unlock()

	m.logger.Info(ctx, "session restored", "username", summary.Username)
	return summary, true, nil
}

// Current returns the active user, if any.
func (m *manager) Current() (models.AccountSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return models.AccountSummary{}, false
	}
	return *m.current, true
}

// HasKey reports whether the vault key is available in this process.
func (m *manager) HasKey() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key != nil
}

// Key returns the derived vault key. It fails with ErrNotAuthenticated when
// nobody is logged in, and with ErrKeyUnavailable when the identity was
// restored from disk but the key was never derived in this process.
func (m *manager) Key() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, common.ErrNotAuthenticated
	}
	if m.key == nil {
		return nil, common.ErrKeyUnavailable
	}
	return m.key, nil
}

// State reports where the session is in its lifecycle.
func (m *manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.current == nil:
		return StateLoggedOut
	case m.key == nil:
		return StateIdentityRestored
	default:
		return StateLoggedIn
	}
}
