// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certutils

import (
	"crypto/x509/pkix"
	"encoding/asn1"
)

// certificateStructure mirrors the outer ASN.1 layout of an [X.509] certificate:
//
//	Certificate ::= SEQUENCE {
//		tbsCertificate      TBSCertificate,
//		signatureAlgorithm  AlgorithmIdentifier,
//		signatureValue      BIT STRING
//	}
//
// [X.509]: https://grokipedia.com/page/X.509
type certificateStructure struct {
	Raw                asn1.RawContent
	TBSCertificate     asn1.RawValue
	SignatureAlgorithm pkix.AlgorithmIdentifier
	SignatureValue     asn1.BitString
}

// Holder is the structural, low-level representation of an [X.509] certificate.
// It keeps the canonical DER encoding alongside the outer ASN.1 fields and is
// used by the signed-message codec where the fully parsed platform type is not
// required. A Holder is immutable after construction.
//
// [X.509]: https://grokipedia.com/page/X.509
type Holder struct {
	raw                []byte
	signatureAlgorithm pkix.AlgorithmIdentifier
}

// NewHolder parses the DER encoding of a certificate into a Holder.
//
// The input must contain exactly one certificate structure; trailing data is
// rejected. The DER bytes are copied, so the caller may reuse the input slice.
func NewHolder(der []byte) (*Holder, error) {
	var cs certificateStructure
	rest, err := asn1.Unmarshal(der, &cs)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(rest) > 0 {
		return nil, ErrParseCertificate
	}

	return &Holder{
		raw:                append([]byte(nil), cs.Raw...),
		signatureAlgorithm: cs.SignatureAlgorithm,
	}, nil
}

// Encoded returns the canonical DER encoding of the certificate.
func (h *Holder) Encoded() []byte { return h.raw }

// SignatureAlgorithm returns the algorithm identifier the issuer used to sign
// this certificate.
func (h *Holder) SignatureAlgorithm() pkix.AlgorithmIdentifier {
	return h.signatureAlgorithm
}
