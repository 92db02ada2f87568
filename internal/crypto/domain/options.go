package domain

import "fmt"

// SymmetricOptions selects the block cipher parameters for one SM4 call.
//
// The zero value is not valid; start from DefaultSymmetricOptions.
type SymmetricOptions struct {
	// IV is the raw initialization vector. Ignored in ECB mode.
	IV string
	// Mode is the block cipher mode.
	Mode Mode
	// Padding is the block padding scheme.
	Padding Padding
	// Encoding is the textual form of the produced ciphertext. Decryption detects
	// the encoding of its input and ignores this field.
	Encoding Encoding
}

// DefaultSymmetricOptions returns the protocol defaults: ECB, PKCS5 padding, hex output.
func DefaultSymmetricOptions() SymmetricOptions {
	return SymmetricOptions{
		Mode:     ECB,
		Padding:  PKCS5Padding,
		Encoding: Hex,
	}
}

// Validate checks that every option names a supported parameter.
func (o SymmetricOptions) Validate() error {
	switch o.Mode {
	case ECB:
	case CBC:
		if len(o.IV) != BlockSize {
			return fmt.Errorf("%w: CBC requires %d bytes, got %d", ErrInvalidIV, BlockSize, len(o.IV))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMode, o.Mode)
	}

	switch o.Padding {
	case PKCS5Padding, ZeroPadding, NoPadding:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedPadding, o.Padding)
	}

	switch o.Encoding {
	case Hex, Base64:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, o.Encoding)
	}

	return nil
}
