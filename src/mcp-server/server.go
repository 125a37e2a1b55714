// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bere23/dgc-lib/src/version"
)

var serverName = "Certificate Signing Toolkit" // MCP server name
var appVersion = version.Version               // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with certificate signing tools.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.1.0")
//
// Returns:
//   - error: Server startup or runtime error, or graceful shutdown signal
//
// Configuration:
//   - Loads config from DGC_SIGNER_CONFIG_FILE environment variable
//   - Falls back to default config if environment variable not set
//
// Graceful Shutdown:
//   - Responds to SIGINT (Ctrl+C) and SIGTERM signals
//   - Cancels the server context and waits for the stdio server to stop
//   - Returns a wrapped context.Canceled error on signal-based shutdown
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	// Load configuration
	config, err := loadConfig(os.Getenv("DGC_SIGNER_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create MCP server
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)

	signTool, verifyTool, fingerprintTool := createTools(config)

	s.AddTool(signTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSignCertificateMessage(ctx, request, config)
	})
	s.AddTool(verifyTool, handleVerifyCertificateMessage)
	s.AddTool(fingerprintTool, handleCertificateFingerprint)

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
