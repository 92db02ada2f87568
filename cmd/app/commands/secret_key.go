package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
)

// RunEncryptSecretKey seals an SM2 private key with a KMS key. The server opens it at
// startup when KMS_KEY_URI is set, so the clear private key never sits in the
// environment.
//
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
func RunEncryptSecretKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	secretKey string,
	format string,
) error {
	if kmsKeyURI == "" {
		return fmt.Errorf("--kms-key-uri is required")
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	if _, err := cryptoService.ParsePrivateKey(secretKey); err != nil {
		return fmt.Errorf("invalid secret key: %w", err)
	}

	sealed, err := kmsService.SealSecret(ctx, kmsKeyURI, []byte(secretKey))
	if err != nil {
		return err
	}

	logger.Info("secret key sealed with KMS")

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"kms_key_uri":       kmsKeyURI,
			"secure_secret_key": sealed,
		})
	}

	_, _ = fmt.Fprintln(writer, "# Secure transmission private key (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "SECURE_SECRET_KEY=\"%s\"\n", sealed)
	return nil
}
