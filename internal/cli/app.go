package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/Hamish-Leahy/Prism-sub005/internal/config"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/prism"
	"github.com/Hamish-Leahy/Prism-sub005/internal/session"
)

// App is the interactive shell over the vault.
type App struct {
	vault  *prism.App
	logger logging.Logger
	reader *bufio.Reader
}

// NewApp builds the vault from cfg and wraps it in a shell reading from stdin.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	vault, err := prism.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{vault: vault, logger: logger, reader: bufio.NewReader(os.Stdin)}, nil
}

// Run restores any previous session identity and enters the command loop.
// It returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	restored, ok, err := a.vault.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	} else if ok {
		printlnFn(fmt.Sprintf("Welcome back, %s. Type 'login' to unlock your vault.", restored.Username))
	}

	if stats, err := a.vault.Stats(ctx); err != nil {
		a.logger.Warn(ctx, "vault stats unavailable", "error", err)
	} else {
		a.logger.Info(ctx, "vault ready",
			"users", stats.TotalUsers,
			"history_entries", stats.HistoryEntries,
			"saved_passwords", stats.SavedPasswords)
	}

	printlnFn("Prism vault shell (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt suffix: nothing when logged out, the username
// when logged in, and a locked marker when only the identity was restored.
func (a *App) status() string {
	user, ok := a.vault.Sessions.Current()
	if !ok {
		return ""
	}
	if a.vault.Sessions.State() == session.StateIdentityRestored {
		return fmt.Sprintf("(%s, locked)", user.Username)
	}
	return fmt.Sprintf("(%s)", user.Username)
}

func (a *App) isLoggedIn() bool {
	return a.vault.Sessions.State() == session.StateLoggedIn
}
