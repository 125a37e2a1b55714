// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/cloudflare/cfssl/helpers"
	"github.com/spf13/cobra"

	"github.com/bere23/dgc-lib/src/certutils"
	"github.com/bere23/dgc-lib/src/logger"
	"github.com/bere23/dgc-lib/src/signing"
)

// newSignCmd builds the "sign" subcommand. It wraps one payload certificate in
// a signed CMS message using the given signing certificate and private key.
func newSignCmd(log logger.Logger) *cobra.Command {
	var (
		signingCertFile string
		keyFile         string
		detached        bool
		rawOutput       bool
		outputFile      string
	)

	cmd := &cobra.Command{
		Use:   "sign [PAYLOAD_CERT_FILE]",
		Short: "Build a signed certificate message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloadData, err := readFile(args[0])
			if err != nil {
				return err
			}
			signingCertData, err := readFile(signingCertFile)
			if err != nil {
				return err
			}
			keyData, err := readFile(keyFile)
			if err != nil {
				return err
			}

			decoder := certutils.New()

			payloadCert, err := decoder.Decode(payloadData)
			if err != nil {
				return fmt.Errorf("error decoding payload certificate: %w", err)
			}
			signingCert, err := decoder.Decode(signingCertData)
			if err != nil {
				return fmt.Errorf("error decoding signing certificate: %w", err)
			}

			key, err := helpers.ParsePrivateKeyPEM(keyData)
			if err != nil {
				return fmt.Errorf("error parsing private key: %w", err)
			}

			builder := signing.NewBuilder().
				WithPayloadCertificate(payloadCert).
				WithSigningCertificate(signingCert, key)

			if rawOutput {
				message, err := builder.Build(detached)
				if err != nil {
					return fmt.Errorf("error building message: %w", err)
				}
				return writeOutput(log, outputFile, message)
			}

			message, err := builder.BuildBase64(detached)
			if err != nil {
				return fmt.Errorf("error building message: %w", err)
			}
			return writeOutput(log, outputFile, []byte(message))
		},
	}

	cmd.Flags().StringVarP(&signingCertFile, "signing-cert", "c", "", "signing certificate file (PEM or DER)")
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "signing private key file (PEM)")
	cmd.Flags().BoolVarP(&detached, "detached", "d", false, "omit the payload from the message (detached signature)")
	cmd.Flags().BoolVarP(&rawOutput, "raw", "r", false, "output raw CMS bytes instead of base64")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")

	cmd.MarkFlagRequired("signing-cert")
	cmd.MarkFlagRequired("key")

	return cmd
}
