// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides an MCP server exposing certificate signing,
// verification, and fingerprint tools over stdio. It wraps the signing and
// certutils packages so MCP clients can build signed certificate messages,
// unpack and verify received messages, and compute certificate key
// identifiers and thumbprints without shelling out to the CLI.
package mcpserver
