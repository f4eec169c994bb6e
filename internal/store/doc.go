// Package store provides the file-backed persistence layer of the vault.
//
// Every collection lives in its own JSON document under a single data
// directory. Reads of a missing or unparseable document yield an empty
// value instead of an error, so a first run and a damaged file both start
// clean. Writes always replace the whole document atomically via a temp
// file and rename, and a per-document lock serialises read-modify-write
// sequences, so concurrent callers never lose updates.
package store
