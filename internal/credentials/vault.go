// Package credentials implements the encrypted credential vault: saved site
// logins whose passwords are sealed under the session key. Domain and
// username stay readable so entries can be listed and matched; the secret
// itself never touches disk in plaintext.
package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/cryptox"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

// PasswordsFile is the document holding all credential entries.
const PasswordsFile = "passwords.json"

// Session is the slice of the session manager the vault needs: who is
// logged in, and the key their password derived.
type Session interface {
	Current() (models.AccountSummary, bool)
	Key() ([]byte, error)
}

// Vault defines credential operations.
//
// Contract:
//   - Save: encrypt and upsert a login for (domain, username).
//   - Get: decrypt the saved password and refresh its last-used time.
//   - List: metadata of the current user's entries, insertion order.
//   - Delete: remove an entry by ID; other users' entries stay invisible.
//   - Count: total entries across all users, for diagnostics.
//
// Save and Get need the vault key; List and Delete need only a current
// user, since metadata is not encrypted.
type Vault interface {
	Save(ctx context.Context, domain, username string, password []byte) (models.CredentialInfo, error)
	Get(ctx context.Context, domain, username string) ([]byte, error)
	List(ctx context.Context) ([]models.CredentialInfo, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// vault is the concrete Vault backed by a document store.
type vault struct {
	session Session
	store   *store.Store
	logger  logging.Logger
}

// NewVault constructs a Vault bound to the given session and store.
func NewVault(session Session, st *store.Store, logger logging.Logger) Vault {
	return &vault{session: session, store: st, logger: logger}
}

// Save encrypts password under the session key and upserts the entry for
// (current user, domain, username). Re-saving an existing pair replaces the
// sealed secret and keeps the entry's identity and creation time.
func (v *vault) Save(ctx context.Context, domain, username string, password []byte) (models.CredentialInfo, error) {
	key, err := v.session.Key()
	if err != nil {
		return models.CredentialInfo{}, err
	}
	user, _ := v.session.Current()

	ciphertext, iv, err := cryptox.Encrypt(password, key)
	if err != nil {
		return models.CredentialInfo{}, err
	}
	secret := models.EncryptedSecret{IV: iv, Ciphertext: ciphertext}

	var saved models.CredentialEntry

	err = store.Mutate(ctx, v.store, PasswordsFile, func(all []models.CredentialEntry) ([]models.CredentialEntry, error) {
		for i, e := range all {
			if e.UserID == user.ID && e.Domain == domain && e.Username == username {
				all[i].Password = secret
				saved = all[i]
				return all, nil
			}
		}
		saved = models.CredentialEntry{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Domain:    domain,
			Username:  username,
			Password:  secret,
			CreatedAt: time.Now().UTC(),
		}
		return append(all, saved), nil
	})
	if err != nil {
		return models.CredentialInfo{}, err
	}

	v.logger.Info(ctx, "credential saved", "domain", domain)
	return saved.Info(), nil
}

// Get decrypts the saved password for (current user, domain, username) and
// refreshes its last-used time. A secret sealed under a different account's
// key fails with ErrDecryptionFailed rather than yielding wrong bytes, which
// tells the caller the data is foreign or corrupted, not that a login is
// missing.
func (v *vault) Get(ctx context.Context, domain, username string) ([]byte, error) {
	key, err := v.session.Key()
	if err != nil {
		return nil, err
	}
	user, _ := v.session.Current()

	var plaintext []byte

	err = store.Mutate(ctx, v.store, PasswordsFile, func(all []models.CredentialEntry) ([]models.CredentialEntry, error) {
		for i, e := range all {
			if e.UserID != user.ID || e.Domain != domain || e.Username != username {
				continue
			}
			p, decErr := cryptox.Decrypt(e.Password.Ciphertext, e.Password.IV, key)
			if decErr != nil {
				return nil, errors.Join(common.ErrDecryptionFailed, decErr)
			}
			plaintext = p
			all[i].LastUsed = time.Now().UTC()
			return all, nil
		}
		return nil, common.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// List returns metadata for the current user's entries in insertion order.
// Neither plaintext nor ciphertext ever appears in the result.
func (v *vault) List(ctx context.Context) ([]models.CredentialInfo, error) {
	user, ok := v.session.Current()
	if !ok {
		return nil, common.ErrNotAuthenticated
	}

	var out []models.CredentialInfo

	err := store.View(ctx, v.store, PasswordsFile, func(all []models.CredentialEntry) error {
		out = make([]models.CredentialInfo, 0, len(all))
		for _, e := range all {
			if e.UserID == user.ID {
				out = append(out, e.Info())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes the entry with the given ID if it belongs to the current
// user. Entries of other users fail with ErrNotFound, indistinguishable
// from an ID that never existed.
func (v *vault) Delete(ctx context.Context, id string) error {
	user, ok := v.session.Current()
	if !ok {
		return common.ErrNotAuthenticated
	}

	err := store.Mutate(ctx, v.store, PasswordsFile, func(all []models.CredentialEntry) ([]models.CredentialEntry, error) {
		for i, e := range all {
			if e.ID == id && e.UserID == user.ID {
				return append(all[:i], all[i+1:]...), nil
			}
		}
		return nil, common.ErrNotFound
	})
	if err != nil {
		return err
	}

	v.logger.Info(ctx, "credential deleted", "id", id)
	return nil
}

// Count reports the total number of entries across all users.
func (v *vault) Count(ctx context.Context) (int, error) {
	var n int
	err := store.View(ctx, v.store, PasswordsFile, func(all []models.CredentialEntry) error {
		n = len(all)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
