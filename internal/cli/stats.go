package cli

import (
	"context"
	"fmt"
)

// Stats prints vault-wide totals and the current user.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.vault.Stats(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	current := stats.CurrentUser
	if current == "" {
		current = "-"
	}
	printlnFn(fmt.Sprintf("Users: %d  Current: %s  History entries: %d  Saved passwords: %d",
		stats.TotalUsers, current, stats.HistoryEntries, stats.SavedPasswords))
	return nil
}
