package validation

import (
	validation "github.com/jellydator/validation"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
)

// SymmetricKey validates an SM4 key: 16 raw characters or 32 hex characters.
var SymmetricKey = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := cryptoService.DecodeSymmetricKey(s)
		return err == nil
	},
	validation.NewError("validation_symmetric_key", "must be 16 characters or 32 hex characters"),
)

// PrivateKey validates an SM2 private key in any supported encoding.
var PrivateKey = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := cryptoService.ParsePrivateKey(s)
		return err == nil
	},
	validation.NewError("validation_private_key", "must be a valid SM2 private key"),
)

// PublicKey validates an SM2 public key in any supported encoding.
var PublicKey = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := cryptoService.ParsePublicKey(s)
		return err == nil
	},
	validation.NewError("validation_public_key", "must be a valid SM2 public key"),
)
