// Package cryptox implements the cryptographic primitives behind the vault:
// PBKDF2-SHA256 password hashing for account verification, Argon2id key
// derivation for the encryption key, and AES-256-GCM for credential secrets.
//
// The password hash and the vault key are derived from the same password but
// use independent salts, so the stored hash reveals nothing about the key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
)

const (
	// SaltLength is the size in bytes of the random salts generated for
	// both password hashing and key derivation.
	SaltLength = 16

	// KeyLength is the size in bytes of derived keys and password hashes.
	// 32 bytes selects AES-256 for the cipher.
	KeyLength = 32

	// HashIterations is the PBKDF2 work factor for account password hashes.
	HashIterations = 100_000
)

// HashPassword derives the stored verifier for an account password using
// PBKDF2-SHA256. The result is safe to persist; the password itself never is.
func HashPassword(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, HashIterations, KeyLength, sha256.New)
}

// VerifyPassword reports whether password matches the stored hash.
// The comparison runs in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// DeriveVaultKey derives the AES-256 vault key from the account password
// using Argon2id. The key lives only in memory for the lifetime of a login
// session and is never persisted.
func DeriveVaultKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeyLength)
}

// Encrypt seals plaintext with AES-256-GCM under the given key.
//
// A fresh random IV is generated on every call, so encrypting the same
// plaintext twice yields different ciphertexts. The ciphertext and IV are
// returned separately and both are needed to decrypt later.
//
// Parameters:
//   - plaintext: the raw secret bytes.
//   - key: the AES key (32 bytes as produced by DeriveVaultKey).
//
// Returns:
//   - ciphertext: the sealed data, including the GCM authentication tag.
//   - iv: the randomly generated 12-byte nonce.
//   - err: non-nil if the key is not a valid AES key size.
func Encrypt(plaintext, key []byte) (ciphertext, iv []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	iv = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, iv, plaintext, nil)

	return ciphertext, iv, nil
}

// Decrypt opens ciphertext produced by Encrypt.
//
// The key and IV must be the ones used during encryption. GCM authenticates
// the ciphertext, so tampered data or a key derived from a different
// password fails with an error instead of returning garbage.
func Decrypt(ciphertext, iv, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, iv, ciphertext, nil)
}
