package usecase

import (
	"fmt"
	"strings"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

type keyResolver struct {
	config     *secureDomain.SecureConfig
	asymmetric cryptoService.AsymmetricCipher
}

// NewKeyResolver creates a KeyResolver backed by the configured private and fallback keys.
func NewKeyResolver(
	config *secureDomain.SecureConfig,
	asymmetric cryptoService.AsymmetricCipher,
) KeyResolver {
	return &keyResolver{
		config:     config,
		asymmetric: asymmetric,
	}
}

func (r *keyResolver) Resolve(wrappedKey string) (string, error) {
	if strings.TrimSpace(wrappedKey) == "" {
		return r.config.HeaderFallbackKey(), nil
	}
	return r.Unwrap(wrappedKey)
}

func (r *keyResolver) Unwrap(wrappedKey string) (string, error) {
	wrappedKey = strings.TrimSpace(wrappedKey)
	if wrappedKey == "" {
		return "", fmt.Errorf("%w: wrapped key is empty", secureDomain.ErrKeyResolution)
	}
	if r.config.PrivateKey() == "" {
		return "", fmt.Errorf("%w: no private key configured", secureDomain.ErrKeyResolution)
	}

	key, err := r.asymmetric.Decrypt(wrappedKey, r.config.PrivateKey())
	if err != nil {
		return "", fmt.Errorf("%w: %w", secureDomain.ErrKeyResolution, err)
	}
	return string(key), nil
}
