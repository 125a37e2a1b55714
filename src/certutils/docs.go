// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certutils provides encoding, decoding, and fingerprinting operations
// for [X.509] certificates. It supports multiple input formats including [PEM],
// DER, and [PKCS7], computes the compact key identifier (KID) and SHA-256
// thumbprint used to index certificates, and converts between the platform
// certificate type and the low-level [Holder] representation used by the
// signed-message codec.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package certutils
