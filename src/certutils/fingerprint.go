// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certutils

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
)

// kidByteCount is the number of leading SHA-256 digest bytes that form the
// key identifier. The 8-byte truncation makes the KID a lookup hint, not a
// uniqueness guarantee.
const kidByteCount = 8

// KeyID computes the key identifier (KID) of a certificate: the first 8 bytes
// of the SHA-256 digest of its DER encoding, base64-encoded.
//
// Returns:
//   - string: Base64-encoded 8-byte key identifier
//   - error: ErrCertificateEncoding if the certificate carries no DER encoding
func (c *Certificate) KeyID(cert *x509.Certificate) (string, error) {
	der, err := encodedDER(cert)
	if err != nil {
		return "", err
	}
	return keyIDFromDER(der), nil
}

// KeyIDFromHolder computes the key identifier (KID) from the structural
// certificate representation. The result is identical to KeyID for the same
// underlying DER bytes.
func (c *Certificate) KeyIDFromHolder(h *Holder) (string, error) {
	if h == nil || len(h.raw) == 0 {
		return "", ErrCertificateEncoding
	}
	return keyIDFromDER(h.raw), nil
}

// Thumbprint computes the SHA-256 thumbprint of a certificate: the full
// 32-byte digest of its DER encoding, rendered as lowercase hexadecimal.
//
// Returns:
//   - string: Lowercase hex SHA-256 digest (64 characters)
//   - error: ErrCertificateEncoding if the certificate carries no DER encoding
func (c *Certificate) Thumbprint(cert *x509.Certificate) (string, error) {
	der, err := encodedDER(cert)
	if err != nil {
		return "", err
	}
	return thumbprintFromDER(der), nil
}

// ThumbprintFromHolder computes the SHA-256 thumbprint from the structural
// certificate representation. The result is identical to Thumbprint for the
// same underlying DER bytes.
func (c *Certificate) ThumbprintFromHolder(h *Holder) (string, error) {
	if h == nil || len(h.raw) == 0 {
		return "", ErrCertificateEncoding
	}
	return thumbprintFromDER(h.raw), nil
}

// ToHolder converts a platform certificate into its structural representation
// by round-tripping through the DER encoding. The conversion is lossless:
// the Holder's Encoded output byte-equals the certificate's DER encoding.
func (c *Certificate) ToHolder(cert *x509.Certificate) (*Holder, error) {
	der, err := encodedDER(cert)
	if err != nil {
		return nil, err
	}
	return NewHolder(der)
}

// FromHolder converts a structural certificate representation back into the
// platform certificate type. Together with ToHolder this forms a DER
// round-trip: converting back and forth yields byte-identical encodings.
func (c *Certificate) FromHolder(h *Holder) (*x509.Certificate, error) {
	if h == nil || len(h.raw) == 0 {
		return nil, ErrCertificateEncoding
	}

	cert, err := x509.ParseCertificate(h.raw)
	if err != nil {
		return nil, ErrParseCertificate
	}
	return cert, nil
}

// encodedDER extracts the DER encoding from a platform certificate.
func encodedDER(cert *x509.Certificate) ([]byte, error) {
	if cert == nil || len(cert.Raw) == 0 {
		return nil, ErrCertificateEncoding
	}
	return cert.Raw, nil
}

func keyIDFromDER(der []byte) string {
	sum := sha256.Sum256(der)
	return base64.StdEncoding.EncodeToString(sum[:kidByteCount])
}

func thumbprintFromDER(der []byte) string {
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}
