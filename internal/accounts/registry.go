// Package accounts implements the local account registry: user records with
// salted slow-hashed password verifiers, authentication, and a per-username
// attempt throttle.
package accounts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/cryptox"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

// UsersFile is the document holding all account records.
const UsersFile = "users.json"

// Registry defines account operations for the vault.
//
// Contract:
//   - Create: register a new account; usernames are unique, matched
//     case-sensitively, and must be non-empty, as must the password. Only
//     the public view is returned.
//   - Authenticate: verify a password, refresh last-login, and return the
//     full record so the session layer can derive the vault key.
//   - FindByID: look up an account by ID.
//   - List: return public views of all accounts, oldest first.
//   - Count: report how many accounts exist.
//
// Hashes and salts never leave this package except through Authenticate,
// whose caller immediately derives the key and drops the record.
type Registry interface {
	Create(ctx context.Context, username string, password []byte) (models.AccountSummary, error)
	Authenticate(ctx context.Context, username string, password []byte) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]models.AccountSummary, error)
	Count(ctx context.Context) (int, error)
}

// Options tunes the per-username login throttle. A zero Rate or Burst
// disables throttling, which the tests rely on.
type Options struct {
	Rate  float64
	Burst int
}

// registry is the concrete Registry backed by a document store.
type registry struct {
	store  *store.Store
	logger logging.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRegistry constructs a Registry persisting to st.
func NewRegistry(st *store.Store, logger logging.Logger, opts Options) Registry {
	return &registry{
		store:    st,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(opts.Rate),
		burst:    opts.Burst,
	}
}

// limiter returns the attempt limiter for username, creating it on first use.
func (r *registry) limiter(username string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[username]
	if !ok {
		l = rate.NewLimiter(r.rate, r.burst)
		r.limiters[username] = l
	}
	return l
}

func (r *registry) Create(ctx context.Context, username string, password []byte) (models.AccountSummary, error) {
	if username == "" {
		return models.AccountSummary{}, errors.New("username must not be empty")
	}
	if len(password) == 0 {
		return models.AccountSummary{}, errors.New("password must not be empty")
	}

	salt := common.GenerateRandByteArray(cryptox.SaltLength)
	keySalt := common.GenerateRandByteArray(cryptox.SaltLength)

	account := models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: cryptox.HashPassword(password, salt),
		Salt:         salt,
		KeySalt:      keySalt,
		CreatedAt:    time.Now().UTC(),
	}

	err := store.Mutate(ctx, r.store, UsersFile, func(all []models.Account) ([]models.Account, error) {
		for _, a := range all {
			if a.Username == username {
				return nil, common.ErrDuplicateUsername
			}
		}
		return append(all, account), nil
	})
	if err != nil {
		return models.AccountSummary{}, err
	}

	r.logger.Info(ctx, "account created", "username", username)
	return account.Summary(), nil
}

func (r *registry) Authenticate(ctx context.Context, username string, password []byte) (*models.Account, error) {
	if r.burst > 0 && !r.limiter(username).Allow() {
		r.logger.Warn(ctx, "login throttled", "username", username)
		return nil, common.ErrTooManyAttempts
	}

	var account models.Account

	err := store.Mutate(ctx, r.store, UsersFile, func(all []models.Account) ([]models.Account, error) {
		for i, a := range all {
			if a.Username != username {
				continue
			}
			if !cryptox.VerifyPassword(password, a.Salt, a.PasswordHash) {
				return nil, common.ErrInvalidCredentials
			}
			all[i].LastLogin = time.Now().UTC()
			account = all[i]
			return all, nil
		}
		return nil, common.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(ctx, "login succeeded", "username", username)
	return &account, nil
}

func (r *registry) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account *models.Account

	err := store.View(ctx, r.store, UsersFile, func(all []models.Account) error {
		for _, a := range all {
			if a.ID == id {
				account = &a
				return nil
			}
		}
		return common.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *registry) List(ctx context.Context) ([]models.AccountSummary, error) {
	var out []models.AccountSummary

	err := store.View(ctx, r.store, UsersFile, func(all []models.Account) error {
		out = make([]models.AccountSummary, 0, len(all))
		for _, a := range all {
			out = append(out, a.Summary())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *registry) Count(ctx context.Context) (int, error) {
	var n int

	err := store.View(ctx, r.store, UsersFile, func(all []models.Account) error {
		n = len(all)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}
