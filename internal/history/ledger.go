// Package history implements the browsing history ledger: per-user visit
// records with revisit counting, substring search, and a bounded retention
// window evicted oldest-first.
package history

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

// HistoryFile is the document holding all history entries, most recent
// insertions first.
const HistoryFile = "history.json"

// DefaultLimit is the per-user cap on retained entries.
const DefaultLimit = 10000

// Session reports the active user. History operations are identity-gated
// but not key-gated, since entries are not encrypted.
type Session interface {
	Current() (models.AccountSummary, bool)
}

// Ledger defines history operations.
//
// Contract:
//   - Record: log a visit; a revisit bumps the count instead of duplicating.
//     Without a login, or with an empty URL, this is a silent no-op, never
//     an error.
//   - Query: the current user's entries, newest first, optionally filtered.
//   - Clear: drop all of the current user's entries.
//   - Count: total retained entries across all users, for diagnostics.
type Ledger interface {
	Record(ctx context.Context, url, title, engine string) error
	Query(ctx context.Context, limit int, searchText string) ([]models.HistoryEntry, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Options tunes the ledger. A zero or negative Limit selects DefaultLimit.
type Options struct {
	Limit int
}

// ledger is the concrete Ledger backed by a document store.
type ledger struct {
	session Session
	store   *store.Store
	logger  logging.Logger
	limit   int
}

// NewLedger constructs a Ledger bound to the given session and store.
func NewLedger(session Session, st *store.Store, logger logging.Logger, opts Options) Ledger {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &ledger{session: session, store: st, logger: logger, limit: limit}
}

// Record logs a visit to url for the current user. A URL already in the
// user's history gets its visit count bumped and its title, engine and
// timestamp refreshed in place; a new URL is inserted at the front. When an
// insert pushes the user past the retention limit, their oldest entries are
// evicted until exactly the limit remains. Other users' entries are never
// touched. Without a login, or with an empty url, the call is a no-op.
func (l *ledger) Record(ctx context.Context, url, title, engine string) error {
	user, ok := l.session.Current()
	if !ok || url == "" {
		return nil
	}

	return store.Mutate(ctx, l.store, HistoryFile, func(all []models.HistoryEntry) ([]models.HistoryEntry, error) {
		now := time.Now().UTC()

		for i, e := range all {
			if e.UserID == user.ID && e.URL == url {
				all[i].VisitCount++
				all[i].Title = title
				all[i].Engine = engine
				all[i].Timestamp = now
				return all, nil
			}
		}

		entry := models.HistoryEntry{
			ID:         uuid.NewString(),
			UserID:     user.ID,
			URL:        url,
			Title:      title,
			Engine:     engine,
			Timestamp:  now,
			VisitCount: 1,
		}
		all = append([]models.HistoryEntry{entry}, all...)
		return l.evictOldest(ctx, all, user.ID), nil
	})
}

// evictOldest drops the oldest surplus entries of userID so that at most
// l.limit remain, preserving the order of everything kept. Age is decided
// by timestamp, with document order breaking ties.
func (l *ledger) evictOldest(ctx context.Context, all []models.HistoryEntry, userID string) []models.HistoryEntry {
	count := 0
	for _, e := range all {
		if e.UserID == userID {
			count++
		}
	}
	if count <= l.limit {
		return all
	}

	own := make([]int, 0, count)
	for i, e := range all {
		if e.UserID == userID {
			own = append(own, i)
		}
	}
	// The document is most-recent-first, so on equal timestamps the higher
	// index is the older visit.
	sort.SliceStable(own, func(i, j int) bool {
		ti, tj := all[own[i]].Timestamp, all[own[j]].Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return own[i] > own[j]
	})

	surplus := count - l.limit
	drop := make(map[string]struct{}, surplus)
	for _, idx := range own[:surplus] {
		drop[all[idx].ID] = struct{}{}
	}

	kept := make([]models.HistoryEntry, 0, len(all)-surplus)
	for _, e := range all {
		if _, gone := drop[e.ID]; gone {
			continue
		}
		kept = append(kept, e)
	}

	l.logger.Info(ctx, "history evicted", "user_id", userID, "evicted", surplus)
	return kept
}

// Query returns the current user's entries sorted by timestamp descending.
// A non-empty searchText keeps only entries whose title or URL contains it,
// case-insensitively. A positive limit truncates the result. Without a login
// the result is empty, not an error.
func (l *ledger) Query(ctx context.Context, limit int, searchText string) ([]models.HistoryEntry, error) {
	user, ok := l.session.Current()
	if !ok {
		return nil, nil
	}

	needle := strings.ToLower(searchText)

	var out []models.HistoryEntry
	err := store.View(ctx, l.store, HistoryFile, func(all []models.HistoryEntry) error {
		for _, e := range all {
			if e.UserID != user.ID {
				continue
			}
			if needle != "" &&
				!strings.Contains(strings.ToLower(e.Title), needle) &&
				!strings.Contains(strings.ToLower(e.URL), needle) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear removes all of the current user's entries, leaving everyone else's
// history intact.
func (l *ledger) Clear(ctx context.Context) error {
	user, ok := l.session.Current()
	if !ok {
		return common.ErrNotAuthenticated
	}

	err := store.Mutate(ctx, l.store, HistoryFile, func(all []models.HistoryEntry) ([]models.HistoryEntry, error) {
		kept := make([]models.HistoryEntry, 0, len(all))
		for _, e := range all {
			if e.UserID != user.ID {
				kept = append(kept, e)
			}
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info(ctx, "history cleared", "user_id", user.ID)
	return nil
}

// Count reports the total number of retained entries across all users.
func (l *ledger) Count(ctx context.Context) (int, error) {
	var n int
	err := store.View(ctx, l.store, HistoryFile, func(all []models.HistoryEntry) error {
		n = len(all)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
