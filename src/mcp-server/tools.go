// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates and returns all MCP tool definitions for the signing server.
//
// The function defines the following tools:
//   - sign_certificate_message: Wraps a payload certificate in a signed CMS message
//   - verify_certificate_message: Unpacks and verifies a signed certificate message
//   - certificate_fingerprint: Computes key identifiers and SHA-256 thumbprints
//
// Each tool includes parameter definitions, descriptions, and default values
// as required by the MCP specification. Defaults for the signing tool come
// from the server configuration.
func createTools(config *Config) (sign, verify, fingerprint mcp.Tool) {
	sign = mcp.NewTool("sign_certificate_message",
		mcp.WithDescription("Build a signed CMS message carrying one payload certificate"),
		mcp.WithString("payload_certificate",
			mcp.Required(),
			mcp.Description("Payload certificate file path or base64-encoded certificate data"),
		),
		mcp.WithString("signing_certificate",
			mcp.Description("Signing certificate file path or base64-encoded certificate data (default: from server config)"),
		),
		mcp.WithString("signing_key",
			mcp.Description("Signing private key file path (PEM) (default: from server config)"),
		),
		mcp.WithBoolean("detached",
			mcp.Description("Omit the payload from the message (default: "+fmt.Sprintf("%v", config.Defaults.Detached)+")"),
			mcp.DefaultBool(config.Defaults.Detached),
		),
	)

	verify = mcp.NewTool("verify_certificate_message",
		mcp.WithDescription("Unpack and verify a signed CMS certificate message"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message file path or base64-encoded message data"),
		),
		mcp.WithString("payload",
			mcp.Description("Detached payload file path or base64-encoded data, for messages signed without content"),
		),
	)

	fingerprint = mcp.NewTool("certificate_fingerprint",
		mcp.WithDescription("Compute the key identifier (KID) and SHA-256 thumbprint of certificates"),
		mcp.WithString("certificate",
			mcp.Required(),
			mcp.Description("Certificate file path or base64-encoded certificate data"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'plain' or 'table' (default: plain)"),
			mcp.DefaultString("plain"),
		),
	)

	return sign, verify, fingerprint
}
