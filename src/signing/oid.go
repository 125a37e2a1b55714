// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signing

import (
	"crypto"
	"crypto/x509"
	"encoding/asn1"
)

// Content type and attribute OIDs from RFC 5652.
var (
	oidData       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}
	oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}

	oidAttributeContentType   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 3}
	oidAttributeMessageDigest = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 4}
)

// Digest algorithm OIDs.
var (
	oidDigestSHA256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
	oidDigestSHA384 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}
	oidDigestSHA512 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}
)

// Signature algorithm OIDs.
var (
	oidSignatureECDSASHA256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}
	oidSignatureECDSASHA384 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}
	oidSignatureECDSASHA512 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}

	oidSignatureRSASHA256 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}
	oidSignatureRSASHA384 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}
	oidSignatureRSASHA512 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}
)

// signatureScheme binds a platform signature algorithm to the digest and
// signature OIDs written into signer info records.
type signatureScheme struct {
	x509Algorithm x509.SignatureAlgorithm
	hash          crypto.Hash
	digestOID     asn1.ObjectIdentifier
	signatureOID  asn1.ObjectIdentifier
}

// signatureSchemes lists the signing algorithms this message format supports.
// The scheme is selected from the signing certificate's own signature
// algorithm, so a certificate signed with an unlisted algorithm cannot sign
// messages.
var signatureSchemes = []signatureScheme{
	{x509.ECDSAWithSHA256, crypto.SHA256, oidDigestSHA256, oidSignatureECDSASHA256},
	{x509.ECDSAWithSHA384, crypto.SHA384, oidDigestSHA384, oidSignatureECDSASHA384},
	{x509.ECDSAWithSHA512, crypto.SHA512, oidDigestSHA512, oidSignatureECDSASHA512},
	{x509.SHA256WithRSA, crypto.SHA256, oidDigestSHA256, oidSignatureRSASHA256},
	{x509.SHA384WithRSA, crypto.SHA384, oidDigestSHA384, oidSignatureRSASHA384},
	{x509.SHA512WithRSA, crypto.SHA512, oidDigestSHA512, oidSignatureRSASHA512},
}

// isRSA reports whether the scheme signs with an RSA key. RSA algorithm
// identifiers carry an explicit NULL parameter on the wire.
func (s signatureScheme) isRSA() bool {
	switch s.x509Algorithm {
	case x509.SHA256WithRSA, x509.SHA384WithRSA, x509.SHA512WithRSA:
		return true
	}
	return false
}

// schemeForCertificate selects the signature scheme matching the signing
// certificate's signature algorithm.
func schemeForCertificate(alg x509.SignatureAlgorithm) (signatureScheme, bool) {
	for _, s := range signatureSchemes {
		if s.x509Algorithm == alg {
			return s, true
		}
	}
	return signatureScheme{}, false
}

// schemeForSignatureOID selects the signature scheme matching a signer info's
// signature algorithm identifier.
func schemeForSignatureOID(oid asn1.ObjectIdentifier) (signatureScheme, bool) {
	for _, s := range signatureSchemes {
		if s.signatureOID.Equal(oid) {
			return s, true
		}
	}
	return signatureScheme{}, false
}

// hashForDigestOID maps a digest algorithm identifier to a platform hash.
func hashForDigestOID(oid asn1.ObjectIdentifier) (crypto.Hash, bool) {
	switch {
	case oid.Equal(oidDigestSHA256):
		return crypto.SHA256, true
	case oid.Equal(oidDigestSHA384):
		return crypto.SHA384, true
	case oid.Equal(oidDigestSHA512):
		return crypto.SHA512, true
	}
	return 0, false
}
