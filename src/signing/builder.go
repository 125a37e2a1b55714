// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrMissingPayloadCertificate indicates that Build was invoked without a payload certificate.
	ErrMissingPayloadCertificate = errors.New("signing: missing payload certificate")

	// ErrMissingSigningCertificate indicates that Build was invoked without a signing certificate.
	ErrMissingSigningCertificate = errors.New("signing: missing signing certificate")

	// ErrMissingSigningKey indicates that Build was invoked without the signer's private key.
	ErrMissingSigningKey = errors.New("signing: missing signing key")

	// ErrUnsupportedAlgorithm indicates that the signing certificate's signature
	// algorithm has no supported signing scheme.
	ErrUnsupportedAlgorithm = errors.New("signing: unsupported signing certificate algorithm")
)

// Builder accumulates the inputs of a signed certificate message and produces
// the CMS envelope. All fields are required before Build is invoked; missing
// fields fail at build time, not at configuration time.
//
// A Builder is a short-lived, single-goroutine object. Building twice (for
// example once detached, once embedded) is legal and yields envelopes over
// the same inputs.
type Builder struct {
	payload *x509.Certificate
	signer  *x509.Certificate
	key     crypto.Signer
}

// NewBuilder creates an empty message builder.
func NewBuilder() *Builder { return &Builder{} }

// WithPayloadCertificate sets the certificate to be distributed as the signed
// payload of the message.
func (b *Builder) WithPayloadCertificate(cert *x509.Certificate) *Builder {
	b.payload = cert
	return b
}

// WithSigningCertificate sets the certificate whose private key signs the
// message, together with that key. The key must match the certificate's
// public key; a mismatch surfaces as a signing failure or an unverifiable
// message.
func (b *Builder) WithSigningCertificate(cert *x509.Certificate, key crypto.Signer) *Builder {
	b.signer = cert
	b.key = key
	return b
}

// Build produces the DER-encoded signed certificate message.
//
// When detached is false the payload certificate's DER bytes travel inside
// the envelope as the signed content. When detached is true the envelope
// carries no content; the signature still covers the payload bytes, which
// the receiving side must supply separately to the parser.
//
// Returns:
//   - []byte: DER-encoded CMS SignedData envelope
//   - error: A missing-field sentinel, ErrUnsupportedAlgorithm, or a wrapped
//     signing/encoding failure
func (b *Builder) Build(detached bool) ([]byte, error) {
	if err := b.checkFields(); err != nil {
		return nil, err
	}

	scheme, ok := schemeForCertificate(b.signer.SignatureAlgorithm)
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}

	content := b.payload.Raw

	h := scheme.hash.New()
	h.Write(content)
	signature, err := b.key.Sign(rand.Reader, h.Sum(nil), scheme.hash)
	if err != nil {
		return nil, fmt.Errorf("signing: signature computation failed: %w", err)
	}

	sid, err := asn1.Marshal(issuerAndSerialNumber{
		Issuer:       asn1.RawValue{FullBytes: b.signer.RawIssuer},
		SerialNumber: b.signer.SerialNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("signing: failed to encode signer identifier: %w", err)
	}

	digestAlgorithm := pkix.AlgorithmIdentifier{
		Algorithm:  scheme.digestOID,
		Parameters: asn1.NullRawValue,
	}

	signatureAlgorithm := pkix.AlgorithmIdentifier{Algorithm: scheme.signatureOID}
	if scheme.isRSA() {
		signatureAlgorithm.Parameters = asn1.NullRawValue
	}

	encap := encapsulatedContentInfo{ContentType: oidData}
	if !detached {
		encap.Content = content
	}

	sd := signedData{
		Version:          1,
		DigestAlgorithms: []pkix.AlgorithmIdentifier{digestAlgorithm},
		EncapContentInfo: encap,
		Certificates:     certificateSet(b.signer.Raw),
		SignerInfos: []signerInfo{{
			Version:            1,
			SID:                asn1.RawValue{FullBytes: sid},
			DigestAlgorithm:    digestAlgorithm,
			SignatureAlgorithm: signatureAlgorithm,
			Signature:          signature,
		}},
	}

	sdDER, err := asn1.Marshal(sd)
	if err != nil {
		return nil, fmt.Errorf("signing: failed to encode signed data: %w", err)
	}

	message, err := marshalContentInfo(sdDER)
	if err != nil {
		return nil, fmt.Errorf("signing: failed to encode message: %w", err)
	}

	return message, nil
}

// BuildBase64 produces the signed certificate message base64-encoded for
// text-safe transport.
func (b *Builder) BuildBase64(detached bool) (string, error) {
	message, err := b.Build(detached)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(message), nil
}

// checkFields reports the first missing required field.
func (b *Builder) checkFields() error {
	switch {
	case b.payload == nil || len(b.payload.Raw) == 0:
		return ErrMissingPayloadCertificate
	case b.signer == nil || len(b.signer.Raw) == 0:
		return ErrMissingSigningCertificate
	case b.key == nil:
		return ErrMissingSigningKey
	}
	return nil
}
