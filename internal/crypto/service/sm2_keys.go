package service

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/tjfoc/gmsm/sm2"
	"github.com/tjfoc/gmsm/x509"

	cryptoDomain "github.com/allisson/secure-transmission/internal/crypto/domain"
)

const (
	scalarSize = 32
	pointSize  = 64
)

// KeyPair is an SM2 key pair in textual form.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// GenerateKeyPair creates a new SM2 key pair encoded with enc. The private key is the
// 32-byte scalar D and the public key the uncompressed point 04||X||Y, which is what
// browser clients expect.
func GenerateKeyPair(random io.Reader, enc cryptoDomain.Encoding) (*KeyPair, error) {
	priv, err := sm2.GenerateKey(random)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sm2 key: %w", err)
	}

	privateKey, err := EncodePrivateKey(priv, enc)
	if err != nil {
		return nil, err
	}
	publicKey, err := EncodePublicKey(&priv.PublicKey, enc)
	if err != nil {
		return nil, err
	}

	return &KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
}

// EncodePrivateKey encodes the scalar D of key as fixed-width hex or base64.
func EncodePrivateKey(key *sm2.PrivateKey, enc cryptoDomain.Encoding) (string, error) {
	d := key.D.FillBytes(make([]byte, scalarSize))
	defer cryptoDomain.Zero(d)
	return encodeBytes(d, enc)
}

// EncodePublicKey encodes key as the uncompressed point 04||X||Y in hex or base64.
func EncodePublicKey(key *sm2.PublicKey, enc cryptoDomain.Encoding) (string, error) {
	return encodeBytes(marshalPoint(key), enc)
}

// DerivePublicKey returns the public key of privateKey encoded with enc.
func DerivePublicKey(privateKey string, enc cryptoDomain.Encoding) (string, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return EncodePublicKey(&priv.PublicKey, enc)
}

// ParsePrivateKey parses an SM2 private key from any of the supported textual forms:
//
//   - hex scalar D, with or without a leading 00 byte
//   - base64 scalar D, with or without a leading 0x00 byte
//   - base64 PKCS#8 or SEC1 DER
//   - unencrypted PEM
func ParsePrivateKey(s string) (*sm2.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", cryptoDomain.ErrInvalidPrivateKey)
	}

	if strings.HasPrefix(s, "-----BEGIN") {
		priv, err := x509.ReadPrivateKeyFromPem([]byte(s), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidPrivateKey, err)
		}
		return priv, nil
	}

	if isHex(s) && len(s) <= 2*(scalarSize+1) {
		d, err := hex.DecodeString(s)
		if err == nil {
			defer cryptoDomain.Zero(d)
			return privateKeyFromScalar(d)
		}
	}

	der, err := decodeBase64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: neither hex nor base64", cryptoDomain.ErrInvalidPrivateKey)
	}
	defer cryptoDomain.Zero(der)

	if len(der) <= scalarSize+1 {
		return privateKeyFromScalar(der)
	}
	if priv, err := x509.ParsePKCS8UnecryptedPrivateKey(der); err == nil {
		return priv, nil
	}
	if priv, err := x509.ParseSm2PrivateKey(der); err == nil {
		return priv, nil
	}

	return nil, fmt.Errorf("%w: unrecognized key encoding", cryptoDomain.ErrInvalidPrivateKey)
}

// ParsePublicKey parses an SM2 public key from any of the supported textual forms:
//
//   - hex point, 04||X||Y or X||Y
//   - base64 point, with or without the 0x04 marker
//   - base64 PKIX DER
//   - PEM
//
// The point must lie on the SM2 curve.
func ParsePublicKey(s string) (*sm2.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", cryptoDomain.ErrInvalidPublicKey)
	}

	var (
		pub *sm2.PublicKey
		err error
	)

	switch {
	case strings.HasPrefix(s, "-----BEGIN"):
		pub, err = x509.ReadPublicKeyFromPem([]byte(s))
	case isHex(s) && (len(s) == 2*pointSize || len(s) == 2*(pointSize+1)):
		pub, err = x509.ReadPublicKeyFromHex(s)
	default:
		var raw []byte
		raw, err = decodeBase64(s)
		if err != nil {
			return nil, fmt.Errorf("%w: neither hex nor base64", cryptoDomain.ErrInvalidPublicKey)
		}
		if len(raw) == pointSize || (len(raw) == pointSize+1 && raw[0] == cryptoDomain.UncompressedPointMarker) {
			pub, err = x509.ReadPublicKeyFromHex(hex.EncodeToString(raw))
		} else {
			pub, err = x509.ParseSm2PublicKey(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidPublicKey, err)
	}

	if pub.X == nil || pub.Y == nil || !sm2.P256Sm2().IsOnCurve(pub.X, pub.Y) {
		return nil, fmt.Errorf("%w: point is not on the sm2 curve", cryptoDomain.ErrInvalidPublicKey)
	}

	return pub, nil
}

func privateKeyFromScalar(d []byte) (*sm2.PrivateKey, error) {
	if len(d) == scalarSize+1 {
		if d[0] != 0 {
			return nil, fmt.Errorf("%w: scalar too long", cryptoDomain.ErrInvalidPrivateKey)
		}
		d = d[1:]
	}

	curve := sm2.P256Sm2()
	k := new(big.Int).SetBytes(d)
	limit := new(big.Int).Sub(curve.Params().N, big.NewInt(1))
	if k.Sign() <= 0 || k.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", cryptoDomain.ErrInvalidPrivateKey)
	}

	priv := new(sm2.PrivateKey)
	priv.Curve = curve
	priv.D = k
	priv.X, priv.Y = curve.ScalarBaseMult(k.Bytes())
	return priv, nil
}

func marshalPoint(key *sm2.PublicKey) []byte {
	out := make([]byte, 1+pointSize)
	out[0] = cryptoDomain.UncompressedPointMarker
	key.X.FillBytes(out[1 : 1+pointSize/2])
	key.Y.FillBytes(out[1+pointSize/2:])
	return out
}

func encodeBytes(b []byte, enc cryptoDomain.Encoding) (string, error) {
	switch enc {
	case cryptoDomain.Hex:
		return hex.EncodeToString(b), nil
	case cryptoDomain.Base64:
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedEncoding, enc)
	}
}

// decodeBase64 accepts standard and URL alphabets, padded or not.
func decodeBase64(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, cryptoDomain.ErrUnsupportedEncoding
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
