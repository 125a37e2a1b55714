// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signing

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
)

// ASN.1 structures for the subset of CMS SignedData (RFC 5652) this message
// format uses. The outer layout is:
//
//	ContentInfo ::= SEQUENCE {
//		contentType ContentType,
//		content [0] EXPLICIT ANY DEFINED BY contentType
//	}
//
//	SignedData ::= SEQUENCE {
//		version CMSVersion,
//		digestAlgorithms DigestAlgorithmIdentifiers,
//		encapContentInfo EncapsulatedContentInfo,
//		certificates [0] IMPLICIT CertificateSet OPTIONAL,
//		crls [1] IMPLICIT RevocationInfoChoices OPTIONAL,
//		signerInfos SignerInfos
//	}
type contentInfo struct {
	ContentType asn1.ObjectIdentifier
	Content     asn1.RawValue `asn1:"explicit,optional,tag:0"`
}

type signedData struct {
	Version          int
	DigestAlgorithms []pkix.AlgorithmIdentifier `asn1:"set"`
	EncapContentInfo encapsulatedContentInfo
	Certificates     asn1.RawValue `asn1:"optional,tag:0"`
	CRLs             asn1.RawValue `asn1:"optional,tag:1"`
	SignerInfos      []signerInfo  `asn1:"set"`
}

// encapsulatedContentInfo carries the signed content. In detached mode the
// content is omitted entirely; the signature still covers the out-of-band
// payload bytes.
type encapsulatedContentInfo struct {
	ContentType asn1.ObjectIdentifier
	Content     []byte `asn1:"explicit,optional,omitempty,tag:0"`
}

// signerInfo binds one signature value to a signer certificate and the
// algorithms used to produce it. SID is kept raw because it is a CHOICE
// between IssuerAndSerialNumber and a subject key identifier.
type signerInfo struct {
	Version            int
	SID                asn1.RawValue
	DigestAlgorithm    pkix.AlgorithmIdentifier
	SignedAttrs        asn1.RawValue `asn1:"optional,tag:0"`
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Signature          []byte
	UnsignedAttrs      asn1.RawValue `asn1:"optional,tag:1"`
}

type issuerAndSerialNumber struct {
	Issuer       asn1.RawValue
	SerialNumber *big.Int
}

// attribute is one entry of the SignedAttributes SET.
type attribute struct {
	Type   asn1.ObjectIdentifier
	Values asn1.RawValue `asn1:"set"`
}

// marshalContentInfo wraps the DER encoding of a SignedData structure in the
// outer ContentInfo envelope.
func marshalContentInfo(signedDataDER []byte) ([]byte, error) {
	return asn1.Marshal(contentInfo{
		ContentType: oidSignedData,
		Content: asn1.RawValue{
			Class:      asn1.ClassContextSpecific,
			Tag:        0,
			IsCompound: true,
			Bytes:      signedDataDER,
		},
	})
}

// certificateSet wraps one certificate's DER bytes as the implicit [0]
// CertificateSet of a SignedData structure.
func certificateSet(certDER []byte) asn1.RawValue {
	return asn1.RawValue{
		Class:      asn1.ClassContextSpecific,
		Tag:        0,
		IsCompound: true,
		Bytes:      certDER,
	}
}

// countElements counts the top-level ASN.1 elements in a concatenated
// encoding, such as the contents of a CertificateSet.
func countElements(data []byte) (int, error) {
	count := 0
	for len(data) > 0 {
		var v asn1.RawValue
		rest, err := asn1.Unmarshal(data, &v)
		if err != nil {
			return 0, err
		}
		count++
		data = rest
	}
	return count, nil
}

// firstElement returns the full encoding of the first top-level ASN.1 element
// in a concatenated encoding.
func firstElement(data []byte) ([]byte, error) {
	var v asn1.RawValue
	if _, err := asn1.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v.FullBytes, nil
}

// signedAttributesDigestInput re-encodes the raw [0] IMPLICIT signed
// attributes as the EXPLICIT SET OF encoding the signature was computed over
// (RFC 5652 section 5.4).
func signedAttributesDigestInput(signedAttrs asn1.RawValue) ([]byte, error) {
	return asn1.Marshal(asn1.RawValue{
		Class:      asn1.ClassUniversal,
		Tag:        asn1.TagSet,
		IsCompound: true,
		Bytes:      signedAttrs.Bytes,
	})
}

// messageDigestAttribute extracts the message-digest attribute value from raw
// signed attributes. It returns false when the attribute is absent or
// malformed.
func messageDigestAttribute(signedAttrs asn1.RawValue) ([]byte, bool) {
	data := signedAttrs.Bytes
	for len(data) > 0 {
		var attr attribute
		rest, err := asn1.Unmarshal(data, &attr)
		if err != nil {
			return nil, false
		}
		data = rest

		if !attr.Type.Equal(oidAttributeMessageDigest) {
			continue
		}

		var digest []byte
		if _, err := asn1.Unmarshal(attr.Values.Bytes, &digest); err != nil {
			return nil, false
		}
		return digest, true
	}
	return nil, false
}
