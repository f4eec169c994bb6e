package models

import "time"

// SessionRecord is the single persisted session snapshot (sessions.json).
// It names who was logged in and when. Key material never appears here;
// after a restart the record restores identity only. The zero record
// marshals as an empty object, which is the logged-out state on disk.
type SessionRecord struct {
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
