// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the certificate signing toolkit.
// It implements a Cobra-based CLI with subcommands for building signed certificate
// messages, verifying and unpacking received messages, and computing certificate
// fingerprints in plain or table output formats. The package handles file I/O,
// context cancellation, and integrates with the logger package for output and
// error reporting.
package cli
