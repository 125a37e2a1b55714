// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/cfssl/helpers"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/bere23/dgc-lib/src/certutils"
	"github.com/bere23/dgc-lib/src/internal/helper/gc"
	"github.com/bere23/dgc-lib/src/signing"
)

// readInput resolves a tool argument that may be either a file path or
// base64-encoded data into raw bytes.
func readInput(input string) ([]byte, error) {
	// Try to read as file first
	if fileData, err := os.ReadFile(input); err == nil {
		return fileData, nil
	}

	// Try to decode as base64
	if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input)); err == nil {
		return decoded, nil
	}

	return nil, fmt.Errorf("not a valid file path or base64 data")
}

// handleSignCertificateMessage builds a signed CMS message from the payload
// certificate given in the request, using the signing certificate and key from
// the request or falling back to the server configuration.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing certificate inputs
//   - config: Server configuration providing signing material defaults
//
// Returns:
//   - The tool execution result containing the base64-encoded signed message
//   - An error if argument extraction fails (tool-level failures are reported
//     as error results, not Go errors)
func handleSignCertificateMessage(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	payloadInput, err := request.RequireString("payload_certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("payload_certificate parameter required: %v", err)), nil
	}

	signingCertInput := request.GetString("signing_certificate", config.Defaults.SigningCertFile)
	signingKeyInput := request.GetString("signing_key", config.Defaults.SigningKeyFile)
	detached := request.GetBool("detached", config.Defaults.Detached)

	if signingCertInput == "" || signingKeyInput == "" {
		return mcp.NewToolResultError("no signing certificate or key: provide signing_certificate and signing_key or configure server defaults"), nil
	}

	payloadData, err := readInput(payloadInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read payload certificate: %v", err)), nil
	}
	signingCertData, err := readInput(signingCertInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read signing certificate: %v", err)), nil
	}
	keyData, err := os.ReadFile(signingKeyInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read signing key: %v", err)), nil
	}

	decoder := certutils.New()

	payloadCert, err := decoder.Decode(payloadData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode payload certificate: %v", err)), nil
	}
	signingCert, err := decoder.Decode(signingCertData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode signing certificate: %v", err)), nil
	}

	key, err := helpers.ParsePrivateKeyPEM(keyData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse signing key: %v", err)), nil
	}

	message, err := signing.NewBuilder().
		WithPayloadCertificate(payloadCert).
		WithSigningCertificate(signingCert, key).
		BuildBase64(detached)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build message: %v", err)), nil
	}

	return mcp.NewToolResultText(message), nil
}

// handleVerifyCertificateMessage unpacks a signed certificate message and
// reports the parse state, signature validity, and recovered certificate
// fingerprints.
//
// Raw CMS input is detected by its DER SEQUENCE prefix; anything else is
// treated as base64 text.
func handleVerifyCertificateMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messageInput, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("message parameter required: %v", err)), nil
	}

	messageData := []byte(messageInput)
	if fileData, err := os.ReadFile(messageInput); err == nil {
		messageData = fileData
	}

	var payloadDER []byte
	if payloadInput := request.GetString("payload", ""); payloadInput != "" {
		payloadData, err := readInput(payloadInput)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read detached payload: %v", err)), nil
		}
		payloadCert, err := certutils.New().Decode(payloadData)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode detached payload: %v", err)), nil
		}
		payloadDER = payloadCert.Raw
	}

	var result *signing.Result
	rawCMS := len(messageData) > 0 && messageData[0] == 0x30
	switch {
	case payloadDER != nil && rawCMS:
		result = signing.ParseDetachedMessage(messageData, payloadDER)
	case payloadDER != nil:
		result = signing.ParseDetachedMessageBase64(
			strings.TrimSpace(string(messageData)),
			base64.StdEncoding.EncodeToString(payloadDER),
		)
	case rawCMS:
		result = signing.ParseMessage(messageData)
	default:
		result = signing.ParseMessageBase64(strings.TrimSpace(string(messageData)))
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.WriteString(fmt.Sprintf("State: %s\n", result.State))
	buf.WriteString(fmt.Sprintf("Signature verified: %t\n", result.SignatureVerified))

	if result.State == signing.StateSuccess {
		decoder := certutils.New()

		if kid, err := decoder.KeyID(result.SigningCertificate); err == nil {
			buf.WriteString(fmt.Sprintf("Signing certificate KID: %s\n", kid))
		}
		if kid, err := decoder.KeyID(result.PayloadCertificate); err == nil {
			buf.WriteString(fmt.Sprintf("Payload certificate KID: %s\n", kid))
		}
		if thumbprint, err := decoder.Thumbprint(result.PayloadCertificate); err == nil {
			buf.WriteString(fmt.Sprintf("Payload certificate thumbprint: %s\n", thumbprint))
		}
		buf.WriteString(fmt.Sprintf("Payload certificate subject: %s\n", result.PayloadCertificate.Subject))
	}

	return mcp.NewToolResultText(string(buf.Bytes())), nil
}

// handleCertificateFingerprint computes key identifiers and SHA-256
// thumbprints for every certificate in the input, as plain text or a
// markdown table.
func handleCertificateFingerprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	format := request.GetString("format", "plain")

	certData, err := readInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
	}

	decoder := certutils.New()
	certs, err := decoder.DecodeMultiple(certData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificates: %v", err)), nil
	}
	if len(certs) == 0 {
		return mcp.NewToolResultError("no certificates found in input"), nil
	}

	if format == "table" {
		return mcp.NewToolResultText(formatFingerprintTable(decoder, certs)), nil
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for i, cert := range certs {
		kid, err := decoder.KeyID(cert)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to compute key identifier: %v", err)), nil
		}
		thumbprint, err := decoder.Thumbprint(cert)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to compute thumbprint: %v", err)), nil
		}

		buf.WriteString(fmt.Sprintf("%d: %s\n", i+1, cert.Subject))
		buf.WriteString(fmt.Sprintf("   KID: %s\n", kid))
		buf.WriteString(fmt.Sprintf("   Thumbprint: %s\n", thumbprint))
	}

	return mcp.NewToolResultText(string(buf.Bytes())), nil
}

// formatFingerprintTable creates a markdown table using the tablewriter library.
func formatFingerprintTable(decoder *certutils.Certificate, certs []*x509.Certificate) string {
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
