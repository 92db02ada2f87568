package commands

import (
	"fmt"
	"io"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	"github.com/allisson/secure-transmission/internal/secure/client"
)

// RunOpenResponse decrypts the data field of an encrypted response body with key and
// prints the plaintext.
func RunOpenResponse(writer io.Writer, body, key string) error {
	plaintext, err := client.OpenResponse(cryptoService.NewSM4Cipher(), []byte(body), key)
	if err != nil {
		return fmt.Errorf("failed to open response: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(plaintext))
	return err
}
