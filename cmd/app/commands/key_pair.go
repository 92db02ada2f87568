package commands

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
)

// RunCreateKeyPair generates an SM2 key pair. The private key goes into
// SECURE_SECRET_KEY (optionally sealed with encrypt-secret-key); the public key is
// handed to clients.
func RunCreateKeyPair(writer io.Writer, encodingStr, format string) error {
	encoding, err := parseEncoding(encodingStr)
	if err != nil {
		return err
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	pair, err := cryptoService.GenerateKeyPair(rand.Reader, encoding)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"private_key": pair.PrivateKey,
			"public_key":  pair.PublicKey,
			"encoding":    string(encoding),
		})
	}

	_, _ = fmt.Fprintf(writer, "# SM2 key pair (%s)\n", encoding)
	_, _ = fmt.Fprintln(writer, "# Keep the private key secret. Publish the public key to clients.")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "SECURE_SECRET_KEY=\"%s\"\n", pair.PrivateKey)
	_, _ = fmt.Fprintf(writer, "# Public key: %s\n", pair.PublicKey)
	return nil
}
