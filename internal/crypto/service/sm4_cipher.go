package service

import (
	"bytes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tjfoc/gmsm/sm4"

	cryptoDomain "github.com/allisson/secure-transmission/internal/crypto/domain"
)

// SM4Cipher implements SymmetricCipher using the SM4 block cipher (GB/T 32907).
//
// Supported parameters:
//   - Modes: ECB (default) and CBC with a 16-byte raw IV
//   - Padding: PKCS5 (default), zero padding and no padding
//   - Output encoding: hex (default) or base64
//
// Decryption detects whether its input is hex or base64, so a value produced with
// either encoding can be fed back without knowing how it was made.
//
// Thread safety:
//
//	A fresh block cipher is created for every call, so a single SM4Cipher may be
//	shared across goroutines.
type SM4Cipher struct{}

// NewSM4Cipher creates a new SM4 cipher.
func NewSM4Cipher() *SM4Cipher {
	return &SM4Cipher{}
}

// Encrypt encrypts plaintext using ECB, PKCS5 padding and hex output.
func (c *SM4Cipher) Encrypt(plaintext []byte, key string) (string, error) {
	return c.EncryptWithOptions(plaintext, key, cryptoDomain.DefaultSymmetricOptions())
}

// EncryptWithOptions encrypts plaintext with the given parameters.
func (c *SM4Cipher) EncryptWithOptions(
	plaintext []byte,
	key string,
	opts cryptoDomain.SymmetricOptions,
) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	block, err := newSM4Block(key)
	if err != nil {
		return "", err
	}

	padded, err := pad(plaintext, opts.Padding)
	if err != nil {
		return "", err
	}

	out := make([]byte, len(padded))
	switch opts.Mode {
	case cryptoDomain.CBC:
		cipher.NewCBCEncrypter(block, []byte(opts.IV)).CryptBlocks(out, padded)
	default:
		ecbEncrypt(block, out, padded)
	}

	return encodeBytes(out, opts.Encoding)
}

// Decrypt decrypts hex or base64 ciphertext using ECB and PKCS5 padding.
func (c *SM4Cipher) Decrypt(ciphertext, key string) ([]byte, error) {
	return c.DecryptWithOptions(ciphertext, key, cryptoDomain.DefaultSymmetricOptions())
}

// DecryptWithOptions decrypts hex or base64 ciphertext with the given parameters.
// opts.Encoding is ignored.
func (c *SM4Cipher) DecryptWithOptions(
	ciphertext, key string,
	opts cryptoDomain.SymmetricOptions,
) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	block, err := newSM4Block(key)
	if err != nil {
		return nil, err
	}

	raw, err := decodeCiphertext(ciphertext)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || len(raw)%cryptoDomain.BlockSize != 0 {
		return nil, fmt.Errorf(
			"%w: length %d is not a positive multiple of %d",
			cryptoDomain.ErrInvalidCiphertext,
			len(raw),
			cryptoDomain.BlockSize,
		)
	}

	out := make([]byte, len(raw))
	switch opts.Mode {
	case cryptoDomain.CBC:
		cipher.NewCBCDecrypter(block, []byte(opts.IV)).CryptBlocks(out, raw)
	default:
		ecbDecrypt(block, out, raw)
	}

	return unpad(out, opts.Padding)
}

// DecodeSymmetricKey turns a textual SM4 key into its 16 raw bytes. A 32-character
// key must be hex; a 16-character key is used as is.
func DecodeSymmetricKey(key string) ([]byte, error) {
	switch len(key) {
	case cryptoDomain.HexSymmetricKeyLength:
		k, err := hex.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("%w: 32 character key is not hex", cryptoDomain.ErrInvalidKeySize)
		}
		return k, nil
	case cryptoDomain.SymmetricKeySize:
		return []byte(key), nil
	default:
		return nil, fmt.Errorf(
			"%w: expected %d raw or %d hex characters, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.SymmetricKeySize,
			cryptoDomain.HexSymmetricKeyLength,
			len(key),
		)
	}
}

func newSM4Block(key string) (cipher.Block, error) {
	k, err := DecodeSymmetricKey(key)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(k)

	block, err := sm4.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeySize, err)
	}
	return block, nil
}

func decodeCiphertext(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if isHex(s) && len(s)%2 == 0 {
		if raw, err := hex.DecodeString(s); err == nil {
			return raw, nil
		}
	}
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: neither hex nor base64", cryptoDomain.ErrInvalidCiphertext)
}

func ecbEncrypt(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
}

func ecbDecrypt(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
}

func pad(data []byte, padding cryptoDomain.Padding) ([]byte, error) {
	bs := cryptoDomain.BlockSize
	switch padding {
	case cryptoDomain.PKCS5Padding:
		n := bs - len(data)%bs
		return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...), nil
	case cryptoDomain.ZeroPadding:
		n := bs - len(data)%bs
		if n == bs && len(data) > 0 {
			n = 0
		}
		return append(bytes.Clone(data), make([]byte, n)...), nil
	case cryptoDomain.NoPadding:
		if len(data) == 0 || len(data)%bs != 0 {
			return nil, fmt.Errorf(
				"%w: plaintext length %d is not a positive multiple of %d",
				cryptoDomain.ErrInvalidPadding,
				len(data),
				bs,
			)
		}
		return bytes.Clone(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedPadding, padding)
	}
}

func unpad(data []byte, padding cryptoDomain.Padding) ([]byte, error) {
	switch padding {
	case cryptoDomain.PKCS5Padding:
		n := int(data[len(data)-1])
		if n == 0 || n > cryptoDomain.BlockSize || n > len(data) {
			return nil, cryptoDomain.ErrInvalidPadding
		}
		for _, b := range data[len(data)-n:] {
			if int(b) != n {
				return nil, cryptoDomain.ErrInvalidPadding
			}
		}
		return data[:len(data)-n], nil
	case cryptoDomain.ZeroPadding:
		return bytes.TrimRight(data, "\x00"), nil
	case cryptoDomain.NoPadding:
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedPadding, padding)
	}
}
