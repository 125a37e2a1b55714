// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the DGC signing tools.
// It supports both human-readable CLI output and structured JSON logging for
// the MCP server mode, where stdout is reserved for the stdio protocol.
package logger
