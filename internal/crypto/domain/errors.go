package domain

import (
	"github.com/allisson/secure-transmission/internal/errors"
)

// ErrCrypto is the root of every primitives-layer failure. All of them are caller
// errors: malformed ciphertext, malformed key material or unsupported parameters.
var ErrCrypto = errors.Wrap(errors.ErrInvalidInput, "crypto error")

// Primitives-layer errors.
var (
	// ErrInvalidKeySize indicates a symmetric key that is neither 16 raw bytes nor
	// 32 hex characters.
	ErrInvalidKeySize = errors.Wrap(ErrCrypto, "invalid key size")

	// ErrInvalidIV indicates a CBC initialization vector that is not 16 bytes.
	ErrInvalidIV = errors.Wrap(ErrCrypto, "invalid initialization vector")

	// ErrUnsupportedMode indicates a block cipher mode other than ECB or CBC.
	ErrUnsupportedMode = errors.Wrap(ErrCrypto, "unsupported cipher mode")

	// ErrUnsupportedPadding indicates an unknown padding scheme.
	ErrUnsupportedPadding = errors.Wrap(ErrCrypto, "unsupported padding")

	// ErrUnsupportedEncoding indicates an unknown ciphertext encoding.
	ErrUnsupportedEncoding = errors.Wrap(ErrCrypto, "unsupported encoding")

	// ErrInvalidCiphertext indicates ciphertext that cannot be decoded or has an
	// impossible length.
	ErrInvalidCiphertext = errors.Wrap(ErrCrypto, "invalid ciphertext")

	// ErrInvalidPadding indicates padding bytes that do not verify after decryption,
	// which almost always means the wrong key was used.
	ErrInvalidPadding = errors.Wrap(ErrCrypto, "invalid padding")

	// ErrDecryptionFailed indicates an SM2 ciphertext whose digest does not verify.
	ErrDecryptionFailed = errors.Wrap(ErrCrypto, "decryption failed")

	// ErrEmptyPlaintext indicates an attempt to SM2-encrypt zero bytes.
	ErrEmptyPlaintext = errors.Wrap(ErrCrypto, "empty plaintext")

	// ErrInvalidPublicKey indicates public key material that cannot be parsed.
	ErrInvalidPublicKey = errors.Wrap(ErrCrypto, "invalid public key")

	// ErrInvalidPrivateKey indicates private key material that cannot be parsed.
	ErrInvalidPrivateKey = errors.Wrap(ErrCrypto, "invalid private key")
)
