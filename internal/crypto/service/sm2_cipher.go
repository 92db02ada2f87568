package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/tjfoc/gmsm/sm2"

	cryptoDomain "github.com/allisson/secure-transmission/internal/crypto/domain"
)

// SM2Cipher implements AsymmetricCipher using SM2 public-key encryption (GM/T 0003).
//
// Ciphertext layout is 0x04 || C1 || C3 || C2 by default, where C1 is the ephemeral
// curve point (64 bytes), C3 the SM3 digest (32 bytes) and C2 the masked body. The
// whole value travels as lowercase hex. Decrypt also accepts ciphertext with the
// leading 04 marker stripped, which is what some browser libraries emit.
//
// Thread safety:
//
//	The cipher holds no mutable state and is safe for concurrent use.
type SM2Cipher struct {
	order  cryptoDomain.CipherOrder
	random io.Reader
}

// SM2Option configures an SM2Cipher.
type SM2Option func(*SM2Cipher)

// WithCipherOrder selects the ciphertext component order.
func WithCipherOrder(order cryptoDomain.CipherOrder) SM2Option {
	return func(c *SM2Cipher) {
		c.order = order
	}
}

// WithRandom replaces the entropy source used for ephemeral keys.
func WithRandom(random io.Reader) SM2Option {
	return func(c *SM2Cipher) {
		c.random = random
	}
}

// NewSM2Cipher creates an SM2 cipher using C1C3C2 ordering and crypto/rand.
func NewSM2Cipher(opts ...SM2Option) *SM2Cipher {
	c := &SM2Cipher{
		order:  cryptoDomain.C1C3C2,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encrypt encrypts plaintext to publicKey.
//
// publicKey may be any form accepted by ParsePublicKey. Empty plaintext is rejected
// because SM2 cannot mask a zero-length body.
func (c *SM2Cipher) Encrypt(plaintext []byte, publicKey string) (string, error) {
	if len(plaintext) == 0 {
		return "", cryptoDomain.ErrEmptyPlaintext
	}

	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return "", err
	}

	ciphertext, err := sm2.Encrypt(pub, plaintext, c.random, c.mode())
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrCrypto, err)
	}

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt decrypts hex ciphertext with privateKey.
//
// Returns ErrInvalidCiphertext when the input is not hex or cannot hold a valid
// point, digest and body, and ErrDecryptionFailed when the digest does not verify
// (wrong key or tampered ciphertext).
func (c *SM2Cipher) Decrypt(ciphertext, privateKey string) ([]byte, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("%w: not hex encoded", cryptoDomain.ErrInvalidCiphertext)
	}

	candidates := sm2Candidates(raw)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: malformed sm2 ciphertext", cryptoDomain.ErrInvalidCiphertext)
	}

	for _, candidate := range candidates {
		plaintext, err := sm2.Decrypt(priv, candidate, c.mode())
		if err == nil {
			return plaintext, nil
		}
	}

	return nil, cryptoDomain.ErrDecryptionFailed
}

func (c *SM2Cipher) mode() int {
	if c.order == cryptoDomain.C1C2C3 {
		return sm2.C1C2C3
	}
	return sm2.C1C3C2
}

// sm2Candidates returns the readings of raw that carry a well-formed C1 point, as
// marker-prefixed ciphertext. A ciphertext whose marker was stripped is ambiguous
// when its first coordinate byte happens to be 0x04, so both readings are tried.
func sm2Candidates(raw []byte) [][]byte {
	var candidates [][]byte

	if len(raw) > 0 && raw[0] == cryptoDomain.UncompressedPointMarker && validSM2Ciphertext(raw) {
		candidates = append(candidates, raw)
	}

	prefixed := make([]byte, 0, len(raw)+1)
	prefixed = append(prefixed, cryptoDomain.UncompressedPointMarker)
	prefixed = append(prefixed, raw...)
	if validSM2Ciphertext(prefixed) {
		candidates = append(candidates, prefixed)
	}

	return candidates
}

// validSM2Ciphertext checks the length and that C1 lies on the curve. The underlying
// library indexes into the buffer without bounds checks, so this must pass first.
func validSM2Ciphertext(data []byte) bool {
	if len(data) < cryptoDomain.MinAsymmetricCiphertextSize {
		return false
	}
	x := new(big.Int).SetBytes(data[1:33])
	y := new(big.Int).SetBytes(data[33:65])
	return sm2.P256Sm2().IsOnCurve(x, y)
}
