// Package cli provides the interactive Prism vault command-line shell.
//
// The shell is a small read-eval-print loop over the vault: account and
// session commands are always available, credential and history commands
// unlock after login. Secrets are read without terminal echo and wiped
// after use.
//
// Commands
//
//	Logged out:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate and unlock the vault
//	  - stats          — vault totals
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - save           — encrypt and store a site password
//	  - get            — decrypt a stored site password
//	  - list           — list stored credentials (metadata only)
//	  - delete         — delete a credential by ID
//	  - visit          — record a page visit
//	  - history [text] — show recent history, optionally filtered
//	  - clearhistory   — drop the current user's history
//	  - logout         — lock the vault
package cli
