// Package service provides the cryptographic primitives of the secure transmission
// protocol: an SM2 public-key cipher, an SM4 block cipher, SM3/SHA-256 digests and
// the key codecs that move SM2 keys between their textual forms.
//
// Every primitive is a pure function over strings and bytes. No key material or
// intermediate state is retained between calls.
package service

import (
	cryptoDomain "github.com/allisson/secure-transmission/internal/crypto/domain"
)

// AsymmetricCipher encrypts short payloads (typically a symmetric session key) to an
// SM2 public key.
type AsymmetricCipher interface {
	// Encrypt encrypts plaintext to publicKey and returns lowercase hex ciphertext.
	Encrypt(plaintext []byte, publicKey string) (string, error)

	// Decrypt decrypts hex ciphertext with privateKey.
	Decrypt(ciphertext, privateKey string) ([]byte, error)
}

// SymmetricCipher encrypts payloads with a 128-bit SM4 key.
//
// Keys are accepted as 32 hexadecimal characters or 16 raw characters.
type SymmetricCipher interface {
	// Encrypt encrypts plaintext with the protocol defaults (ECB, PKCS5, hex).
	Encrypt(plaintext []byte, key string) (string, error)

	// EncryptWithOptions encrypts plaintext with explicit parameters.
	EncryptWithOptions(plaintext []byte, key string, opts cryptoDomain.SymmetricOptions) (string, error)

	// Decrypt decrypts hex or base64 ciphertext with the protocol defaults.
	Decrypt(ciphertext, key string) ([]byte, error)

	// DecryptWithOptions decrypts hex or base64 ciphertext with explicit parameters.
	DecryptWithOptions(ciphertext, key string, opts cryptoDomain.SymmetricOptions) ([]byte, error)
}

// Hasher computes a deterministic, fixed-length hex digest.
type Hasher interface {
	// Hash returns the hex digest of text.
	Hash(text string) string

	// HashWithSalt returns the hex digest of salt followed by text.
	HashWithSalt(text, salt string) string
}
