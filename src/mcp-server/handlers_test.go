// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// writeTestCertAndKey generates a self-signed certificate and writes the
// certificate and key as PEM files, returning their paths.
func writeTestCertAndKey(t *testing.T, dir, name string) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		t.Fatal(err)
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{Country: []string{"DE"}, CommonName: name},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}

	certFile = filepath.Join(dir, name+".pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(certFile, certPEM, 0644); err != nil {
		t.Fatal(err)
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}

	keyFile = filepath.Join(dir, name+".key")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := os.WriteFile(keyFile, keyPEM, 0600); err != nil {
		t.Fatal(err)
	}

	return certFile, keyFile
}

func callToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil {
		t.Fatal("expected result but got nil")
	}

	content := ""
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			content += tc.Text
		}
	}
	return content
}

func TestHandleSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	payloadCert, _ := writeTestCertAndKey(t, dir, "payload")
	signingCert, signingKey := writeTestCertAndKey(t, dir, "signing")

	config := &Config{}

	req := callToolRequest("sign_certificate_message", map[string]interface{}{
		"payload_certificate": payloadCert,
		"signing_certificate": signingCert,
		"signing_key":         signingKey,
	})

	result, err := handleSignCertificateMessage(context.Background(), req, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("sign tool returned error result: %s", resultText(t, result))
	}

	message := strings.TrimSpace(resultText(t, result))
	if message == "" {
		t.Fatal("expected base64 message in result")
	}

	verifyReq := callToolRequest("verify_certificate_message", map[string]interface{}{
		"message": message,
	})

	verifyResult, err := handleVerifyCertificateMessage(context.Background(), verifyReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := resultText(t, verifyResult)
	if !strings.Contains(content, "State: success") {
		t.Errorf("expected successful parse state, got: %s", content)
	}
	if !strings.Contains(content, "Signature verified: true") {
		t.Errorf("expected verified signature, got: %s", content)
	}
	if !strings.Contains(content, "Payload certificate KID:") {
		t.Errorf("expected payload KID in output, got: %s", content)
	}
}

func TestHandleSignWithConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	payloadCert, _ := writeTestCertAndKey(t, dir, "payload")
	signingCert, signingKey := writeTestCertAndKey(t, dir, "signing")

	config := &Config{}
	config.Defaults.SigningCertFile = signingCert
	config.Defaults.SigningKeyFile = signingKey
	config.Defaults.Detached = true

	req := callToolRequest("sign_certificate_message", map[string]interface{}{
		"payload_certificate": payloadCert,
	})

	result, err := handleSignCertificateMessage(context.Background(), req, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("sign tool returned error result: %s", resultText(t, result))
	}

	// The message is detached, so verification needs the payload back.
	verifyReq := callToolRequest("verify_certificate_message", map[string]interface{}{
		"message": strings.TrimSpace(resultText(t, result)),
		"payload": payloadCert,
	})

	verifyResult, err := handleVerifyCertificateMessage(context.Background(), verifyReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := resultText(t, verifyResult)
	if !strings.Contains(content, "State: success") {
		t.Errorf("expected successful parse state, got: %s", content)
	}
	if !strings.Contains(content, "Signature verified: true") {
		t.Errorf("expected verified signature, got: %s", content)
	}
}

func TestHandleSignMissingSigningMaterial(t *testing.T) {
	dir := t.TempDir()
	payloadCert, _ := writeTestCertAndKey(t, dir, "payload")

	req := callToolRequest("sign_certificate_message", map[string]interface{}{
		"payload_certificate": payloadCert,
	})

	result, err := handleSignCertificateMessage(context.Background(), req, &Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result without signing material")
	}
}

func TestHandleVerifyBrokenMessage(t *testing.T) {
	req := callToolRequest("verify_certificate_message", map[string]interface{}{
		"message": "not!!valid!!base64",
	})

	result, err := handleVerifyCertificateMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := resultText(t, result)
	if !strings.Contains(content, "State: invalid base64 encoding") {
		t.Errorf("expected invalid base64 state, got: %s", content)
	}
	if !strings.Contains(content, "Signature verified: false") {
		t.Errorf("expected unverified signature, got: %s", content)
	}
}

func TestHandleCertificateFingerprint(t *testing.T) {
	dir := t.TempDir()
	certFile, _ := writeTestCertAndKey(t, dir, "payload")

	tests := []struct {
		name           string
		format         string
		expectContains string
	}{
		{name: "Plain Format", format: "plain", expectContains: "KID:"},
		{name: "Table Format", format: "table", expectContains: "SHA-256 Thumbprint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := callToolRequest("certificate_fingerprint", map[string]interface{}{
				"certificate": certFile,
				"format":      tt.format,
			})

			result, err := handleCertificateFingerprint(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError {
				t.Fatalf("fingerprint tool returned error result: %s", resultText(t, result))
			}

			content := resultText(t, result)
			if !strings.Contains(content, tt.expectContains) {
				t.Errorf("expected result to contain %q, got: %s", tt.expectContains, content)
			}
		})
	}
}

func TestHandleCertificateFingerprint_InvalidInput(t *testing.T) {
	req := callToolRequest("certificate_fingerprint", map[string]interface{}{
		"certificate": "definitely not a certificate or a file",
	})

	result, err := handleCertificateFingerprint(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for invalid input")
	}
}
