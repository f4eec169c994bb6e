package models

import "time"

// EncryptedSecret is an AES-GCM sealed value together with the IV used to
// seal it. Every write generates a fresh IV, so the same secret saved twice
// produces different bytes on disk.
type EncryptedSecret struct {
	IV         []byte `json:"iv"`
	Ciphertext []byte `json:"ciphertext"`
}

// CredentialEntry is a saved login for a site as persisted in
// passwords.json. Only the password is encrypted; domain and username stay
// readable so entries can be listed without the vault key.
type CredentialEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Domain    string          `json:"domain"`
	Username  string          `json:"username"`
	Password  EncryptedSecret `json:"password"`
	CreatedAt time.Time       `json:"created_at"`
	LastUsed  time.Time       `json:"last_used,omitzero"`
}

// CredentialInfo is the listing view of a credential: everything except the
// secret itself.
type CredentialInfo struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used,omitzero"`
}

// Info returns the listing view of the entry.
func (e CredentialEntry) Info() CredentialInfo {
	return CredentialInfo{
		ID:        e.ID,
		Domain:    e.Domain,
		Username:  e.Username,
		CreatedAt: e.CreatedAt,
		LastUsed:  e.LastUsed,
	}
}
