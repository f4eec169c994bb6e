package cli

import (
	"context"
	"fmt"
	"os"
)

// historyDisplayLimit bounds how many entries the history command prints.
const historyDisplayLimit = 20

// Visit prompts for a URL, title and rendering engine and records the visit.
func (a *App) Visit(ctx context.Context) error {
	url, err := getSimpleText(a.reader, "Enter URL", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Enter page title", os.Stdout)
	if err != nil {
		return err
	}
	engine, err := getSimpleText(a.reader, "Enter engine (gecko/blink/webkit)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.vault.History.Record(ctx, url, title, engine); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Visit recorded.")
	return nil
}

// History prints the most recent visits, newest first. A non-empty search
// keeps only entries whose title or URL contains it.
func (a *App) History(ctx context.Context, search string) error {
	entries, err := a.vault.History.Query(ctx, historyDisplayLimit, search)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(entries) == 0 {
		printlnFn("No history entries.")
		return nil
	}
	for _, e := range entries {
		printlnFn(fmt.Sprintf("%s  %s  %q  %d visit(s)",
			e.Timestamp.Format("2006-01-02 15:04"), e.URL, e.Title, e.VisitCount))
	}
	return nil
}

// ClearHistory drops all of the current user's history entries.
func (a *App) ClearHistory(ctx context.Context) error {
	if err := a.vault.History.Clear(ctx); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("History cleared.")
	return nil
}
