// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/bere23/dgc-lib/src/certutils"
	"github.com/bere23/dgc-lib/src/logger"
)

// newFingerprintCmd builds the "fingerprint" subcommand. It computes the key
// identifier and SHA-256 thumbprint for every certificate in the input file.
func newFingerprintCmd(log logger.Logger) *cobra.Command {
	var tableFormat bool

	cmd := &cobra.Command{
		Use:   "fingerprint [CERT_FILE]",
		Short: "Compute certificate key identifiers and thumbprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			certData, err := readFile(args[0])
			if err != nil {
				return err
			}

			decoder := certutils.New()
			certs, err := decoder.DecodeMultiple(certData)
			if err != nil {
				return fmt.Errorf("error decoding certificates: %w", err)
			}
			if len(certs) == 0 {
				return fmt.Errorf("no certificates found in %s", args[0])
			}

			if tableFormat {
				log.Println(renderFingerprintTable(decoder, certs))
				return nil
			}

			for _, cert := range certs {
				kid, err := decoder.KeyID(cert)
				if err != nil {
					return fmt.Errorf("error computing key identifier: %w", err)
				}
				thumbprint, err := decoder.Thumbprint(cert)
				if err != nil {
					return fmt.Errorf("error computing thumbprint: %w", err)
				}

				log.Printf("Subject:    %s", cert.Subject)
				log.Printf("KID:        %s", kid)
				log.Printf("Thumbprint: %s", thumbprint)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&tableFormat, "table", "t", false, "render fingerprints as a markdown table")

	return cmd
}

// renderFingerprintTable renders certificate fingerprints as a markdown table.
func renderFingerprintTable(decoder *certutils.Certificate, certs []*x509.Certificate) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Subject", "KID", "SHA-256 Thumbprint"})

	var rows [][]string
	for i, cert := range certs {
		kid, err := decoder.KeyID(cert)
		if err != nil {
			kid = "unknown"
		}
		thumbprint, err := decoder.Thumbprint(cert)
		if err != nil {
			thumbprint = "unknown"
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cert.Subject.CommonName,
			kid,
			thumbprint,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
