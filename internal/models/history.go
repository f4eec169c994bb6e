package models

import "time"

// HistoryEntry is one visited URL as persisted in history.json. Revisiting
// a URL refreshes Timestamp, Title and VisitCount on the existing entry
// instead of appending a new one.
type HistoryEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Engine     string    `json:"engine"`
	Timestamp  time.Time `json:"timestamp"`
	VisitCount int       `json:"visit_count"`
}
