package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamish-Leahy/Prism-sub005/internal/accounts"
	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/history"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
	"github.com/Hamish-Leahy/Prism-sub005/internal/models"
	"github.com/Hamish-Leahy/Prism-sub005/internal/session"
	"github.com/Hamish-Leahy/Prism-sub005/internal/store"
)

type ledgerFixture struct {
	ledger   history.Ledger
	sessions session.Manager
	registry accounts.Registry
	store    *store.Store
}

func newTestLedger(t *testing.T, opts history.Options) *ledgerFixture {
	t.Helper()
	st, err := store.New(t.TempDir(), logging.NewNopLogger())
	require.NoError(t, err)
	registry := accounts.NewRegistry(st, logging.NewNopLogger(), accounts.Options{})
	sessions := session.NewManager(registry, st, logging.NewNopLogger())
	return &ledgerFixture{
		ledger:   history.NewLedger(sessions, st, logging.NewNopLogger(), opts),
		sessions: sessions,
		registry: registry,
		store:    st,
	}
}

func (f *ledgerFixture) createAndLogin(t *testing.T, username, password string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.registry.Create(ctx, username, []byte(password))
	require.NoError(t, err)
	_, err = f.sessions.Login(ctx, username, []byte(password))
	require.NoError(t, err)
}

func TestDefaultLimit(t *testing.T) {
	assert.Equal(t, 10000, history.DefaultLimit)
}

func TestRecord_UnauthenticatedIsNoOp(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()

	require.NoError(t, f.ledger.Record(ctx, "https://example.com", "Example", "gecko"))

	n, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecord_EmptyURLIsNoOp(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	require.NoError(t, f.ledger.Record(ctx, "", "Untitled", "gecko"))

	n, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecord_InsertAndQueryNewestFirst(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	urls := []string{"https://a.com", "https://b.com", "https://c.com"}
	for _, u := range urls {
		require.NoError(t, f.ledger.Record(ctx, u, "title", "gecko"))
	}

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://c.com", got[0].URL)
	assert.Equal(t, "https://b.com", got[1].URL)
	assert.Equal(t, "https://a.com", got[2].URL)

	for _, e := range got {
		assert.Equal(t, 1, e.VisitCount)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestRecord_RevisitBumpsCountInPlace(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	require.NoError(t, f.ledger.Record(ctx, "https://a.com", "Old title", "gecko"))
	require.NoError(t, f.ledger.Record(ctx, "https://b.com", "Other", "gecko"))
	require.NoError(t, f.ledger.Record(ctx, "https://a.com", "New title", "blink"))

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 2, "revisit must not duplicate the entry")

	assert.Equal(t, "https://a.com", got[0].URL, "revisited entry must surface first")
	assert.Equal(t, 2, got[0].VisitCount)
	assert.Equal(t, "New title", got[0].Title)
	assert.Equal(t, "blink", got[0].Engine)
	assert.Equal(t, 1, got[1].VisitCount)
}

func TestRecord_EvictsOldestBeyondLimit(t *testing.T) {
	f := newTestLedger(t, history.Options{Limit: 5})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	for i := 0; i < 7; i++ {
		url := fmt.Sprintf("https://site-%d.com", i)
		require.NoError(t, f.ledger.Record(ctx, url, "title", "gecko"))
	}

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 5, "retention must leave exactly the limit")

	assert.Equal(t, "https://site-6.com", got[0].URL)
	assert.Equal(t, "https://site-2.com", got[4].URL)
	for _, e := range got {
		assert.NotEqual(t, "https://site-0.com", e.URL, "oldest entry must be evicted")
		assert.NotEqual(t, "https://site-1.com", e.URL, "second-oldest entry must be evicted")
	}
}

func TestRecord_EvictionTieFallsToInsertionOrder(t *testing.T) {
	f := newTestLedger(t, history.Options{Limit: 2})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	user, ok := f.sessions.Current()
	require.True(t, ok)

	// Two entries sharing one timestamp, most recent insertion first:
	// b.com was visited after a.com within the same clock tick.
	ts := time.Now().UTC().Add(-time.Hour)
	seeded := []models.HistoryEntry{
		{ID: uuid.NewString(), UserID: user.ID, URL: "https://b.com", Title: "t", Engine: "gecko", Timestamp: ts, VisitCount: 1},
		{ID: uuid.NewString(), UserID: user.ID, URL: "https://a.com", Title: "t", Engine: "gecko", Timestamp: ts, VisitCount: 1},
	}
	require.NoError(t, store.Write(ctx, f.store, history.HistoryFile, seeded))

	require.NoError(t, f.ledger.Record(ctx, "https://c.com", "t", "gecko"))

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	urls := []string{got[0].URL, got[1].URL}
	assert.Contains(t, urls, "https://c.com")
	assert.Contains(t, urls, "https://b.com", "the later visit must survive a timestamp tie")
	assert.NotContains(t, urls, "https://a.com", "the earlier visit must be the one evicted")
}

func TestRecord_RevisitProtectsFromEviction(t *testing.T) {
	f := newTestLedger(t, history.Options{Limit: 3})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	for _, u := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		require.NoError(t, f.ledger.Record(ctx, u, "title", "gecko"))
	}

	// Revisiting the oldest entry refreshes its timestamp, so the next
	// insert evicts b, not a.
	require.NoError(t, f.ledger.Record(ctx, "https://a.com", "title", "gecko"))
	require.NoError(t, f.ledger.Record(ctx, "https://d.com", "title", "gecko"))

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	urls := []string{got[0].URL, got[1].URL, got[2].URL}
	assert.Contains(t, urls, "https://a.com")
	assert.Contains(t, urls, "https://d.com")
	assert.NotContains(t, urls, "https://b.com")
}

func TestRecord_EvictionIsUserScoped(t *testing.T) {
	f := newTestLedger(t, history.Options{Limit: 3})
	ctx := context.Background()

	f.createAndLogin(t, "alice", "pw1")
	for i := 0; i < 3; i++ {
		require.NoError(t, f.ledger.Record(ctx, fmt.Sprintf("https://alice-%d.com", i), "t", "gecko"))
	}

	f.createAndLogin(t, "bob", "pw2")
	for i := 0; i < 4; i++ {
		require.NoError(t, f.ledger.Record(ctx, fmt.Sprintf("https://bob-%d.com", i), "t", "gecko"))
	}

	bobs, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, bobs, 3, "bob's surplus must be evicted")

	_, err = f.sessions.Login(ctx, "alice", []byte("pw1"))
	require.NoError(t, err)
	alices, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, alices, 3, "alice's entries must survive bob's eviction")
}

func TestQuery_SearchText(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	require.NoError(t, f.ledger.Record(ctx, "https://go.dev", "The Go Programming Language", "gecko"))
	require.NoError(t, f.ledger.Record(ctx, "https://example.com/golang-tips", "Untitled", "gecko"))
	require.NoError(t, f.ledger.Record(ctx, "https://news.site", "Morning news", "gecko"))

	got, err := f.ledger.Query(ctx, 0, "GO")
	require.NoError(t, err)
	require.Len(t, got, 2, "search must match title and URL case-insensitively")

	got, err = f.ledger.Query(ctx, 0, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_Limit(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()
	f.createAndLogin(t, "alice", "pw1")

	for i := 0; i < 5; i++ {
		require.NoError(t, f.ledger.Record(ctx, fmt.Sprintf("https://site-%d.com", i), "t", "gecko"))
	}

	got, err := f.ledger.Query(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://site-4.com", got[0].URL)
	assert.Equal(t, "https://site-3.com", got[1].URL)
}

func TestQuery_UnauthenticatedIsEmpty(t *testing.T) {
	f := newTestLedger(t, history.Options{})

	got, err := f.ledger.Query(context.Background(), 0, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_ScopedToCurrentUser(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()

	f.createAndLogin(t, "alice", "pw1")
	require.NoError(t, f.ledger.Record(ctx, "https://alice.com", "t", "gecko"))

	f.createAndLogin(t, "bob", "pw2")
	require.NoError(t, f.ledger.Record(ctx, "https://bob.com", "t", "gecko"))

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://bob.com", got[0].URL)
}

func TestClear_CurrentUserOnly(t *testing.T) {
	f := newTestLedger(t, history.Options{})
	ctx := context.Background()

	f.createAndLogin(t, "alice", "pw1")
	require.NoError(t, f.ledger.Record(ctx, "https://alice.com", "t", "gecko"))

	f.createAndLogin(t, "bob", "pw2")
	require.NoError(t, f.ledger.Record(ctx, "https://bob.com", "t", "gecko"))
	require.NoError(t, f.ledger.Clear(ctx))

	got, err := f.ledger.Query(ctx, 0, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "other users' history must survive a clear")
}

func TestClear_Unauthenticated(t *testing.T) {
	f := newTestLedger(t, history.Options{})

	err := f.ledger.Clear(context.Background())
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}
