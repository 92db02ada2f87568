package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secure-transmission/cmd/app/commands"
	"github.com/allisson/secure-transmission/internal/config"
)

func getTransmissionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal-request",
			Usage: "Encrypt and sign a payload the way a browser client does",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "public-key",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Server SM2 public key (hex or base64)",
				},
				&cli.StringFlag{
					Name:     "data",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Plaintext payload, usually JSON",
				},
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Value:   "body",
					Usage:   "Request shape: 'body', 'query' or 'query-direct'",
				},
				&cli.StringFlag{
					Name:  "header-key-name",
					Usage: "Header carrying the wrapped session key (defaults to SECURE_HEADER_ENCRYPT_KEY_NAME)",
				},
				&cli.StringFlag{
					Name:  "sign-prefix",
					Usage: "Signature prefix (defaults to SECURE_SIGN_PREFIX)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()

				headerKeyName := cmd.String("header-key-name")
				if headerKeyName == "" {
					headerKeyName = cfg.SecureHeaderKeyName
				}
				signPrefix := cmd.String("sign-prefix")
				if !cmd.IsSet("sign-prefix") {
					signPrefix = cfg.SecureSignPrefix
				}

				return commands.RunSealRequest(
					commands.DefaultIO().Writer,
					cmd.String("public-key"),
					headerKeyName,
					signPrefix,
					cmd.String("mode"),
					cmd.String("data"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "open-response",
			Usage: "Decrypt the data field of an encrypted response body",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "body",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Response body as returned by the server",
				},
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "SM4 session key used for the request (or the fallback key)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunOpenResponse(
					commands.DefaultIO().Writer,
					cmd.String("body"),
					cmd.String("key"),
				)
			},
		},
	}
}
