// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bere23/dgc-lib/src/certutils"
	"github.com/bere23/dgc-lib/src/logger"
	"github.com/bere23/dgc-lib/src/signing"
)

// newVerifyCmd builds the "verify" subcommand. It unpacks a signed certificate
// message, reports the parse outcome and signature validity, optionally dumps
// the recovered certificates to a file, and fails with ErrVerificationFailed
// unless both parse and verification succeed.
func newVerifyCmd(log logger.Logger) *cobra.Command {
	var (
		payloadFile string
		rawInput    bool
		dumpFile    string
		derFormat   bool
	)

	cmd := &cobra.Command{
		Use:   "verify [MESSAGE_FILE]",
		Short: "Verify a signed certificate message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageData, err := readFile(args[0])
			if err != nil {
				return err
			}

			var result *signing.Result
			switch {
			case payloadFile != "":
				payloadData, err := readFile(payloadFile)
				if err != nil {
					return err
				}
				if rawInput {
					result = signing.ParseDetachedMessage(messageData, payloadData)
				} else {
					result = signing.ParseDetachedMessageBase64(
						strings.TrimSpace(string(messageData)),
						strings.TrimSpace(string(payloadData)),
					)
				}
			case rawInput:
				result = signing.ParseMessage(messageData)
			default:
				result = signing.ParseMessageBase64(strings.TrimSpace(string(messageData)))
			}

			log.Printf("State: %s", result.State)
			log.Printf("Signature verified: %t", result.SignatureVerified)

			if result.State == signing.StateSuccess {
				decoder := certutils.New()

				if kid, err := decoder.KeyID(result.SigningCertificate); err == nil {
					log.Printf("Signing certificate KID: %s", kid)
				}
				if kid, err := decoder.KeyID(result.PayloadCertificate); err == nil {
					log.Printf("Payload certificate KID: %s", kid)
				}
				if thumbprint, err := decoder.Thumbprint(result.PayloadCertificate); err == nil {
					log.Printf("Payload certificate thumbprint: %s", thumbprint)
				}
				log.Printf("Payload certificate subject: %s", result.PayloadCertificate.Subject)

				if dumpFile != "" {
					recovered := []*x509.Certificate{result.PayloadCertificate, result.SigningCertificate}

					var dumpData []byte
					if derFormat {
						dumpData = decoder.EncodeMultipleDER(recovered)
					} else {
						dumpData = decoder.EncodeMultiplePEM(recovered)
					}

					if err := writeOutput(log, dumpFile, dumpData); err != nil {
						return err
					}
				}
			}

			if result.State != signing.StateSuccess || !result.SignatureVerified {
				return ErrVerificationFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&payloadFile, "payload", "p", "", "detached payload file for messages signed without content")
	cmd.Flags().BoolVarP(&rawInput, "raw", "r", false, "treat inputs as raw CMS bytes instead of base64")
	cmd.Flags().StringVarP(&dumpFile, "dump", "o", "", "write the recovered certificates to DUMP_FILE")
	cmd.Flags().BoolVarP(&derFormat, "der", "d", false, "dump certificates in DER format instead of PEM")

	return cmd
}
