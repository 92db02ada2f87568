package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secure-transmission/cmd/app/commands"
	"github.com/allisson/secure-transmission/internal/app"
	"github.com/allisson/secure-transmission/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key-pair",
			Usage: "Generate a new SM2 key pair for secure transmission",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "encoding",
					Aliases: []string{"e"},
					Value:   "hex",
					Usage:   "Key encoding: 'hex' or 'base64'",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateKeyPair(
					commands.DefaultIO().Writer,
					cmd.String("encoding"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "encrypt-secret-key",
			Usage: "Seal an SM2 private key with a KMS key for SECURE_SECRET_KEY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "secret-key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "SM2 private key (hex, base64, DER or PEM)",
				},
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Value:    "",
					Required: true,
					Usage:    "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
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
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptSecretKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
					cmd.String("secret-key"),
					cmd.String("format"),
				)
			},
		},
	}
}
