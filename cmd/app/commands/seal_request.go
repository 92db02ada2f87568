package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/allisson/secure-transmission/internal/secure/client"
)

// Request shapes accepted by RunSealRequest.
const (
	sealModeBody        = "body"
	sealModeQuery       = "query"
	sealModeQueryDirect = "query-direct"
)

type sealedOutput struct {
	SessionKey string            `json:"session_key"`
	Headers    map[string]string `json:"headers"`
	Query      string            `json:"query"`
	Body       string            `json:"body"`
}

// RunSealRequest encrypts data for the server identified by publicKey and prints the
// headers, query string and body to send. The session key is printed too so the
// response can be opened with open-response.
func RunSealRequest(
	writer io.Writer,
	publicKey string,
	headerKeyName string,
	signPrefix string,
	mode string,
	data string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if headerKeyName == "" {
		return fmt.Errorf("header key name is required")
	}

	sealer := client.NewSealer(publicKey, headerKeyName, signPrefix)

	var (
		sealed *client.SealedRequest
		err    error
	)
	switch mode {
	case sealModeBody:
		sealed, err = sealer.SealBody([]byte(data))
	case sealModeQuery:
		sealed, err = sealer.SealQuery([]byte(data), true)
	case sealModeQueryDirect:
		sealed, err = sealer.SealQuery([]byte(data), false)
	default:
		return fmt.Errorf("invalid mode: %s (valid options: body, query, query-direct)", mode)
	}
	if err != nil {
		return fmt.Errorf("failed to seal request: %w", err)
	}

	output := sealedOutput{
		SessionKey: sealed.SessionKey,
		Headers:    make(map[string]string, len(sealed.Header)),
		Query:      sealed.Query.Encode(),
		Body:       string(sealed.Body),
	}
	for name := range sealed.Header {
		output.Headers[name] = sealed.Header.Get(name)
	}

	if format == "json" {
		return writeJSON(writer, output)
	}

	names := make([]string, 0, len(output.Headers))
	for name := range output.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	if output.SessionKey != "" {
		_, _ = fmt.Fprintf(writer, "# Session key: %s\n", output.SessionKey)
	} else {
		_, _ = fmt.Fprintln(writer, "# No session key: the response is encrypted with the server fallback key")
	}
	for _, name := range names {
		_, _ = fmt.Fprintf(writer, "%s: %s\n", name, output.Headers[name])
	}
	if output.Query != "" {
		_, _ = fmt.Fprintf(writer, "\n?%s\n", output.Query)
	}
	if output.Body != "" {
		_, _ = fmt.Fprintf(writer, "\n%s\n", output.Body)
	}
	return nil
}
