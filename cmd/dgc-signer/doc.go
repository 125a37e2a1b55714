// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// dgc-signer is a command-line tool for building, verifying, and inspecting
// signed certificate messages.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/bere23/dgc-lib/cmd/dgc-signer@latest
//
// # Usage
//
//	dgc-signer COMMAND [FLAGS]
//
// # Commands
//
//	sign        Build a signed certificate message from a payload certificate
//	verify      Unpack and verify a signed certificate message
//	fingerprint Compute certificate key identifiers and thumbprints
//
// # Examples
//
// Sign a certificate and write the base64 message to a file:
//
//	dgc-signer sign payload.pem -c signing.pem -k signing.key -o message.b64
//
// Build a detached message with raw CMS output:
//
//	dgc-signer sign payload.pem -c signing.pem -k signing.key -d -r -o message.cms
//
// Verify a received message:
//
//	dgc-signer verify message.b64
//
// Verify and dump the recovered certificates as PEM:
//
//	dgc-signer verify message.b64 -o recovered.pem
//
// Compute fingerprints as a markdown table:
//
//	dgc-signer fingerprint certs.pem --table
package main
