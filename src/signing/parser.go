// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signing

import (
	"bytes"
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
)

// ParserState is the terminal classification of one parse attempt. Exactly
// one state is reached per message; each failure state names a distinct fault
// domain so callers can tell a transport-encoding problem from a malformed
// container or a container of the wrong shape.
type ParserState int

const (
	// StateSuccess indicates every structural check passed and both
	// certificates were recovered. Signature verification is reported
	// separately via Result.SignatureVerified.
	StateSuccess ParserState = iota

	// StateInvalidBase64 indicates the text input is not valid base64.
	StateInvalidBase64

	// StateInvalidCMS indicates the message bytes do not parse as a CMS
	// SignedData envelope at all.
	StateInvalidCMS

	// StateInvalidCMSBody indicates the envelope parsed but its signed
	// content is not tagged with the expected data content type.
	StateInvalidCMSBody

	// StateNoPayloadCertificate indicates the envelope carries no signed
	// content, no detached payload was supplied, or the payload bytes are
	// not a certificate, so no payload certificate can be recovered.
	StateNoPayloadCertificate

	// StateInvalidSigningCertificate indicates the envelope does not name
	// exactly one signer certificate. Zero or multiple certificates leave
	// the signature's authenticator ambiguous and are rejected outright.
	StateInvalidSigningCertificate

	// StateInvalidSignerInfo indicates the envelope does not carry exactly
	// one signer information record.
	StateInvalidSignerInfo
)

// String returns a short diagnostic name for the parser state.
func (s ParserState) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateInvalidBase64:
		return "invalid base64 encoding"
	case StateInvalidCMS:
		return "invalid CMS message"
	case StateInvalidCMSBody:
		return "invalid CMS message body"
	case StateNoPayloadCertificate:
		return "no payload certificate"
	case StateInvalidSigningCertificate:
		return "invalid signing certificate amount"
	case StateInvalidSignerInfo:
		return "invalid signer info amount"
	}
	return "unknown parser state"
}

// Result is the terminal output of one parse attempt. A Result is immutable;
// PayloadCertificate and SigningCertificate are non-nil only when State is
// StateSuccess.
//
// Structural success and cryptographic verification are independent facts: a
// well-formed envelope whose signature does not check out still reports
// StateSuccess with SignatureVerified false, so callers can log or quarantine
// a malformed-but-present signature instead of merely rejecting it.
type Result struct {
	State              ParserState
	SignatureVerified  bool
	PayloadCertificate *x509.Certificate
	SigningCertificate *x509.Certificate
}

// ParseMessage parses a signed certificate message from its raw DER bytes.
func ParseMessage(message []byte) *Result {
	return parse(message, nil)
}

// ParseMessageBase64 parses a signed certificate message from base64 text.
func ParseMessageBase64(message string) *Result {
	decoded, err := base64.StdEncoding.DecodeString(message)
	if err != nil {
		return &Result{State: StateInvalidBase64}
	}
	return parse(decoded, nil)
}

// ParseDetachedMessage parses a signed certificate message whose payload was
// detached at build time. The payload bytes the signature covers must be
// supplied separately.
func ParseDetachedMessage(message, payload []byte) *Result {
	return parse(message, payload)
}

// ParseDetachedMessageBase64 parses a detached signed certificate message
// from base64 text, with the detached payload supplied as base64 text as
// well.
func ParseDetachedMessageBase64(message, payload string) *Result {
	decodedMessage, err := base64.StdEncoding.DecodeString(message)
	if err != nil {
		return &Result{State: StateInvalidBase64}
	}
	decodedPayload, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return &Result{State: StateInvalidBase64}
	}
	return parse(decodedMessage, decodedPayload)
}

// parse runs the fixed check sequence over the decoded message bytes. The
// first failing check wins, so the failure classification is deterministic
// for inputs that are wrong on more than one axis.
func parse(message, detachedPayload []byte) *Result {
	// Envelope structure
	var ci contentInfo
	rest, err := asn1.Unmarshal(message, &ci)
	if err != nil || len(rest) > 0 {
		return &Result{State: StateInvalidCMS}
	}
	if !ci.ContentType.Equal(oidSignedData) || len(ci.Content.Bytes) == 0 {
		return &Result{State: StateInvalidCMS}
	}

	var sd signedData
	rest, err = asn1.Unmarshal(ci.Content.Bytes, &sd)
	if err != nil || len(rest) > 0 {
		return &Result{State: StateInvalidCMS}
	}

	// Signed content must be tagged as plain data
	if !sd.EncapContentInfo.ContentType.Equal(oidData) {
		return &Result{State: StateInvalidCMSBody}
	}

	// Exactly one signer certificate
	certCount, err := countElements(sd.Certificates.Bytes)
	if err != nil || certCount != 1 {
		return &Result{State: StateInvalidSigningCertificate}
	}

	// Exactly one signer info
	if len(sd.SignerInfos) != 1 {
		return &Result{State: StateInvalidSignerInfo}
	}

	// Embedded content wins; otherwise fall back to the detached payload
	content := sd.EncapContentInfo.Content
	if len(content) == 0 {
		content = detachedPayload
	}
	if len(content) == 0 {
		return &Result{State: StateNoPayloadCertificate}
	}

	// Recover both certificates
	signerDER, err := firstElement(sd.Certificates.Bytes)
	if err != nil {
		return &Result{State: StateInvalidSigningCertificate}
	}
	signingCertificate, err := x509.ParseCertificate(signerDER)
	if err != nil {
		return &Result{State: StateInvalidSigningCertificate}
	}

	payloadCertificate, err := x509.ParseCertificate(content)
	if err != nil {
		return &Result{State: StateNoPayloadCertificate}
	}

	return &Result{
		State:              StateSuccess,
		SignatureVerified:  verifySignature(signingCertificate, sd.SignerInfos[0], content),
		PayloadCertificate: payloadCertificate,
		SigningCertificate: signingCertificate,
	}
}

// verifySignature checks the signer info's signature over the message content
// using the signing certificate's public key. The result is a boolean fact,
// never an error: a fully-formed envelope with a bad signature is still a
// fully-formed envelope.
func verifySignature(cert *x509.Certificate, si signerInfo, content []byte) bool {
	scheme, ok := schemeForSignatureOID(si.SignatureAlgorithm.Algorithm)
	if !ok {
		return false
	}
	if !signerMatchesCertificate(si.SID, cert) {
		return false
	}

	signed := content

	// When signed attributes are present the signature covers their DER SET
	// encoding instead, and the message-digest attribute must match the
	// content digest (RFC 5652 section 5.4).
	if len(si.SignedAttrs.Bytes) > 0 {
		expected, ok := messageDigestAttribute(si.SignedAttrs)
		if !ok {
			return false
		}
		hash, ok := hashForDigestOID(si.DigestAlgorithm.Algorithm)
		if !ok {
			return false
		}
		h := hash.New()
		h.Write(content)
		if !bytes.Equal(expected, h.Sum(nil)) {
			return false
		}

		digestInput, err := signedAttributesDigestInput(si.SignedAttrs)
		if err != nil {
			return false
		}
		signed = digestInput
	}

	return cert.CheckSignature(scheme.x509Algorithm, signed, si.Signature) == nil
}

// signerMatchesCertificate reports whether the signer identifier names the
// given certificate. Identifiers in the issuer-and-serial form are matched
// exactly; other identifier forms are left to the signature check itself.
func signerMatchesCertificate(sid asn1.RawValue, cert *x509.Certificate) bool {
	var ias issuerAndSerialNumber
	if _, err := asn1.Unmarshal(sid.FullBytes, &ias); err != nil {
		return true
	}
	if ias.SerialNumber == nil || cert.SerialNumber == nil {
		return false
	}
	return bytes.Equal(ias.Issuer.FullBytes, cert.RawIssuer) && ias.SerialNumber.Cmp(cert.SerialNumber) == 0
}
