package domain

import (
	"fmt"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/secure-transmission/internal/validation"
)

// SecureConfigInput carries the raw settings a SecureConfig is built from.
type SecureConfigInput struct {
	Enabled            bool
	HeaderKeyName      string
	HeaderFallbackKey  string
	PrivateKey         string
	SignTimeoutSeconds int64
	SignPrefix         string
}

// Validate checks the settings. Field rules only apply when the pipeline is enabled;
// a disabled pipeline never reads them.
func (i *SecureConfigInput) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.HeaderKeyName,
			validation.When(i.Enabled,
				validation.Required,
				customValidation.NotBlank,
				customValidation.HeaderName,
			),
		),
		validation.Field(&i.HeaderFallbackKey,
			validation.When(i.Enabled,
				validation.Required,
				customValidation.SymmetricKey,
			),
		),
		validation.Field(&i.PrivateKey,
			validation.When(i.Enabled, customValidation.PrivateKey),
		),
		validation.Field(&i.SignTimeoutSeconds,
			validation.Min(int64(0)),
		),
	)
}

// SecureConfig holds the validated, read-only protocol settings. It is built once at
// startup and shared by every request without synchronization.
type SecureConfig struct {
	enabled            bool
	headerKeyName      string
	headerFallbackKey  string
	privateKey         string
	signTimeoutSeconds int64
	signPrefix         string
}

// NewSecureConfig validates input and returns an immutable SecureConfig.
//
// Returns ErrConfiguration when the pipeline is enabled and the header name or the
// fallback key is missing, when the fallback key is not a valid SM4 key, when a
// private key is set but cannot be parsed, or when the timeout is negative.
func NewSecureConfig(input SecureConfigInput) (*SecureConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &SecureConfig{
		enabled:            input.Enabled,
		headerKeyName:      input.HeaderKeyName,
		headerFallbackKey:  input.HeaderFallbackKey,
		privateKey:         input.PrivateKey,
		signTimeoutSeconds: input.SignTimeoutSeconds,
		signPrefix:         input.SignPrefix,
	}, nil
}

// Enabled reports whether the pipeline runs at all.
func (c *SecureConfig) Enabled() bool { return c.enabled }

// HeaderKeyName is the header carrying the wrapped session key.
func (c *SecureConfig) HeaderKeyName() string { return c.headerKeyName }

// HeaderFallbackKey is the SM4 key used when no session key was negotiated.
func (c *SecureConfig) HeaderFallbackKey() string { return c.headerFallbackKey }

// PrivateKey is the server SM2 private key.
func (c *SecureConfig) PrivateKey() string { return c.privateKey }

// SignTimeoutSeconds is the replay window.
func (c *SecureConfig) SignTimeoutSeconds() int64 { return c.signTimeoutSeconds }

// SignPrefix is mixed into every signature input.
func (c *SecureConfig) SignPrefix() string { return c.signPrefix }
