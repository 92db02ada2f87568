// Package domain defines the cryptographic vocabulary shared by the primitives layer:
// block cipher modes, padding schemes, ciphertext encodings and the sentinel errors
// raised on malformed input.
package domain

// Mode is a block cipher mode of operation.
type Mode string

const (
	// ECB encrypts every block independently. It is the protocol default because the
	// browser client speaks ECB out of the box.
	ECB Mode = "ECB"

	// CBC chains blocks with a 16-byte initialization vector.
	CBC Mode = "CBC"
)

// Padding is a block padding scheme.
type Padding string

const (
	// PKCS5Padding pads with N bytes of value N. For a 16-byte block cipher it is
	// identical to PKCS#7.
	PKCS5Padding Padding = "PKCS5Padding"

	// ZeroPadding pads with zero bytes; trailing zeros are stripped on decrypt.
	ZeroPadding Padding = "ZeroPadding"

	// NoPadding requires the plaintext to be a multiple of the block size.
	NoPadding Padding = "NoPadding"
)

// Encoding is the textual form of a symmetric ciphertext.
type Encoding string

const (
	// Hex is lowercase hexadecimal. Used on the wire for every protocol field.
	Hex Encoding = "hex"

	// Base64 is standard base64 with padding.
	Base64 Encoding = "base64"
)

// CipherOrder is the component order of an SM2 ciphertext.
type CipherOrder int

const (
	// C1C3C2 orders the ciphertext as point, digest, body (GM/T 0003-2012).
	C1C3C2 CipherOrder = iota

	// C1C2C3 is the legacy order: point, body, digest.
	C1C2C3
)

// String returns the conventional name of the order.
func (o CipherOrder) String() string {
	switch o {
	case C1C3C2:
		return "C1C3C2"
	case C1C2C3:
		return "C1C2C3"
	default:
		return "unknown"
	}
}

const (
	// BlockSize is the SM4 block size in bytes.
	BlockSize = 16

	// SymmetricKeySize is the raw SM4 key size in bytes.
	SymmetricKeySize = 16

	// HexSymmetricKeyLength is the length of a hex encoded SM4 key.
	HexSymmetricKeyLength = 32

	// pointSize is the size of an uncompressed SM2 point without the 0x04 marker.
	pointSize = 64

	// digestSize is the size of the SM3 digest (C3).
	digestSize = 32

	// MinAsymmetricCiphertextSize is the smallest possible SM2 ciphertext carrying at
	// least one byte of body, including the 0x04 marker.
	MinAsymmetricCiphertextSize = 1 + pointSize + digestSize + 1

	// UncompressedPointMarker prefixes an uncompressed elliptic curve point.
	UncompressedPointMarker byte = 0x04
)
