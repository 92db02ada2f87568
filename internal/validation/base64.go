package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// Base64 validates padded standard base64, the form KMS-sealed secrets are stored in.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be standard base64"),
)
