// Package prism wires the vault together: one App owns the document store
// and the account, session, credential and history components, and exposes
// the operations the browser shell calls. Nothing here performs
// authorization beyond "must be the logged-in user"; rendering, networking
// and any HTTP surface live elsewhere.
package prism

import (
	"context"

	"github.com/Hamish-Leahy/Prism-sub005/internal/accounts"
	"github.com/Hamish-Leahy/Prism-sub005/internal/config"
	"github.com/Hamish-Leahy/Prism-sub005/internal/credentials"
	"github.com/Hamish-Leahy/Prism-sub005/internal/history"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/session"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

// App is the composition root of the vault.
type App struct {
	Accounts    accounts.Registry
	Sessions    session.Manager
	Credentials credentials.Vault
	History     history.Ledger

	store  *store.Store
	logger logging.Logger
}

// New builds the vault under cfg.DataDir.
func New(cfg *config.Config, logger logging.Logger) (*App, error) {
	st, err := store.New(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}

	registry := accounts.NewRegistry(st, logger, accounts.Options{
		Rate:  cfg.AuthRate,
		Burst: cfg.AuthBurst,
	})
	sessions := session.NewManager(registry, st, logger)

	return &App{
		Accounts:    registry,
		Sessions:    sessions,
		Credentials: credentials.NewVault(sessions, st, logger),
		History:     history.NewLedger(sessions, st, logger, history.Options{Limit: cfg.HistoryLimit}),
		store:       st,
		logger:      logger,
	}, nil
}

// Register creates a new account. The caller keeps the password; only the
// public view comes back.
func (a *App) Register(ctx context.Context, username string, password []byte) (models.AccountSummary, error) {
	return a.Accounts.Create(ctx, username, password)
}

// Login starts a session for username, deriving the vault key.
func (a *App) Login(ctx context.Context, username string, password []byte) (models.AccountSummary, error) {
	return a.Sessions.Login(ctx, username, password)
}

// Logout ends the session and wipes the vault key.
func (a *App) Logout(ctx context.Context) error {
	return a.Sessions.Logout(ctx)
}

// Restore picks up the identity left by a previous run, if any. Vault
// entries stay sealed until the next Login.
func (a *App) Restore(ctx context.Context) (models.AccountSummary, bool, error) {
	return a.Sessions.Restore(ctx)
}

// Stats is the diagnostics snapshot exposed to the shell.
type Stats struct {
	TotalUsers     int    `json:"total_users"`
	CurrentUser    string `json:"current_user,omitempty"`
	HistoryEntries int    `json:"history_entries"`
	SavedPasswords int    `json:"saved_passwords"`
}

// Stats reports vault-wide totals and the current user, if any.
func (a *App) Stats(ctx context.Context) (Stats, error) {
	users, err := a.Accounts.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	entries, err := a.History.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	secrets, err := a.Credentials.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{
		TotalUsers:     users,
		HistoryEntries: entries,
		SavedPasswords: secrets,
	}
	if user, ok := a.Sessions.Current(); ok {
		s.CurrentUser = user.Username
	}
	return s, nil
}
