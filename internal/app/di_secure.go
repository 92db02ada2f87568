package app

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/jellydator/validation"

	echoHTTP "github.com/allisson/secure-transmission/internal/echo/http"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
	secureHTTP "github.com/allisson/secure-transmission/internal/secure/http"
	secureUseCase "github.com/allisson/secure-transmission/internal/secure/usecase"
	customValidation "github.com/allisson/secure-transmission/internal/validation"
)

// SecureConfig returns the validated, immutable secure transmission configuration.
func (c *Container) SecureConfig() (*secureDomain.SecureConfig, error) {
	var err error
	c.secureConfigInit.Do(func() {
		c.secureConfig, err = c.initSecureConfig()
		if err != nil {
			c.initErrors["secureConfig"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureConfig"]; exists {
		return nil, storedErr
	}
	return c.secureConfig, nil
}

// KeyResolver returns the session key resolver.
func (c *Container) KeyResolver() (secureUseCase.KeyResolver, error) {
	var err error
	c.keyResolverInit.Do(func() {
		c.keyResolver, err = c.initKeyResolver()
		if err != nil {
			c.initErrors["keyResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyResolver"]; exists {
		return nil, storedErr
	}
	return c.keyResolver, nil
}

// RequestDecoder returns the inbound pipeline, instrumented when metrics are enabled.
func (c *Container) RequestDecoder() (secureUseCase.RequestDecoder, error) {
	var err error
	c.requestDecoderInit.Do(func() {
		c.requestDecoder, err = c.initRequestDecoder()
		if err != nil {
			c.initErrors["requestDecoder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["requestDecoder"]; exists {
		return nil, storedErr
	}
	return c.requestDecoder, nil
}

// ResponseEncoder returns the outbound pipeline, instrumented when metrics are enabled.
func (c *Container) ResponseEncoder() (secureUseCase.ResponseEncoder, error) {
	var err error
	c.responseEncoderInit.Do(func() {
		c.responseEncoder, err = c.initResponseEncoder()
		if err != nil {
			c.initErrors["responseEncoder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["responseEncoder"]; exists {
		return nil, storedErr
	}
	return c.responseEncoder, nil
}

// SecureMiddleware returns the Gin secure transmission middleware.
func (c *Container) SecureMiddleware() (*secureHTTP.Middleware, error) {
	var err error
	c.secureMiddlewareInit.Do(func() {
		c.secureMiddleware, err = c.initSecureMiddleware()
		if err != nil {
			c.initErrors["secureMiddleware"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureMiddleware"]; exists {
		return nil, storedErr
	}
	return c.secureMiddleware, nil
}

// PublicKeyHandler returns the handler publishing the server public key.
func (c *Container) PublicKeyHandler() (*secureHTTP.PublicKeyHandler, error) {
	var err error
	c.publicKeyHandlerInit.Do(func() {
		c.publicKeyHandler, err = c.initPublicKeyHandler()
		if err != nil {
			c.initErrors["publicKeyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publicKeyHandler"]; exists {
		return nil, storedErr
	}
	return c.publicKeyHandler, nil
}

// EchoHandler returns the echo demo handler.
func (c *Container) EchoHandler() *echoHTTP.EchoHandler {
	c.echoHandlerInit.Do(func() {
		c.echoHandler = echoHTTP.NewEchoHandler(c.Logger())
	})
	return c.echoHandler
}

// initSecureConfig builds the secure configuration. When KMS_KEY_URI is set the
// configured secret key is the KMS-sealed private key and is opened first.
func (c *Container) initSecureConfig() (*secureDomain.SecureConfig, error) {
	privateKey := c.config.SecureSecretKey

	if c.config.KMSKeyURI != "" && privateKey != "" {
		if err := validation.Validate(privateKey, customValidation.Base64); err != nil {
			return nil, fmt.Errorf(
				"%w: SECURE_SECRET_KEY must hold the KMS ciphertext when KMS_KEY_URI is set: %v",
				secureDomain.ErrConfiguration,
				err,
			)
		}

		opened, err := c.KMSService().OpenSecret(context.Background(), c.config.KMSKeyURI, privateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to open secure secret key with KMS: %w", err)
		}
		privateKey = string(opened)
		c.Logger().Info("secure secret key opened with KMS")
	}

	secureConfig, err := secureDomain.NewSecureConfig(secureDomain.SecureConfigInput{
		Enabled:            c.config.SecureEnabled,
		HeaderKeyName:      c.config.SecureHeaderKeyName,
		HeaderFallbackKey:  c.config.SecureHeaderKeyValue,
		PrivateKey:         privateKey,
		SignTimeoutSeconds: c.config.SecureSignTimeoutSeconds,
		SignPrefix:         c.config.SecureSignPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load secure transmission config: %w", err)
	}

	c.Logger().Info("secure transmission configured",
		slog.Bool("enabled", secureConfig.Enabled()),
		slog.String("header_key_name", secureConfig.HeaderKeyName()),
		slog.Int64("sign_timeout_seconds", secureConfig.SignTimeoutSeconds()),
		slog.Bool("private_key_configured", secureConfig.PrivateKey() != ""),
	)

	return secureConfig, nil
}

func (c *Container) initKeyResolver() (secureUseCase.KeyResolver, error) {
	secureConfig, err := c.SecureConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure config for key resolver: %w", err)
	}
	return secureUseCase.NewKeyResolver(secureConfig, c.AsymmetricCipher()), nil
}

func (c *Container) initRequestDecoder() (secureUseCase.RequestDecoder, error) {
	secureConfig, err := c.SecureConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure config for request decoder: %w", err)
	}

	keyResolver, err := c.KeyResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key resolver for request decoder: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for request decoder: %w", err)
	}

	decoder := secureUseCase.NewRequestDecoder(
		secureConfig,
		keyResolver,
		c.AsymmetricCipher(),
		c.SymmetricCipher(),
		c.Hasher(),
		c.Logger(),
	)

	if !c.config.MetricsEnabled {
		return decoder, nil
	}
	return secureUseCase.NewRequestDecoderWithMetrics(decoder, businessMetrics), nil
}

func (c *Container) initResponseEncoder() (secureUseCase.ResponseEncoder, error) {
	keyResolver, err := c.KeyResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key resolver for response encoder: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for response encoder: %w", err)
	}

	encoder := secureUseCase.NewResponseEncoder(keyResolver, c.SymmetricCipher(), c.Logger())

	if !c.config.MetricsEnabled {
		return encoder, nil
	}
	return secureUseCase.NewResponseEncoderWithMetrics(encoder, businessMetrics), nil
}

func (c *Container) initSecureMiddleware() (*secureHTTP.Middleware, error) {
	secureConfig, err := c.SecureConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure config for secure middleware: %w", err)
	}

	decoder, err := c.RequestDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to get request decoder for secure middleware: %w", err)
	}

	encoder, err := c.ResponseEncoder()
	if err != nil {
		return nil, fmt.Errorf("failed to get response encoder for secure middleware: %w", err)
	}

	return secureHTTP.NewMiddleware(secureConfig, decoder, encoder, c.Logger()), nil
}

func (c *Container) initPublicKeyHandler() (*secureHTTP.PublicKeyHandler, error) {
	secureConfig, err := c.SecureConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure config for public key handler: %w", err)
	}

	handler, err := secureHTTP.NewPublicKeyHandler(secureConfig, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create public key handler: %w", err)
	}
	return handler, nil
}
