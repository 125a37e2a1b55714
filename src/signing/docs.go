// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package signing implements the signed certificate message format used to
// distribute [X.509] certificates between participants of the DGC trust
// network. A message is a [CMS] SignedData envelope carrying one payload
// certificate, signed with the private key of a second, trusted signing
// certificate that travels inside the envelope.
//
// The Builder produces envelopes (embedded or detached payload, raw DER or
// base64 text); the parse functions classify incoming envelopes into exactly
// one terminal state and, on success, expose the two recovered certificates
// together with an independent signature-verification flag.
//
// [X.509]: https://grokipedia.com/page/X.509
// [CMS]: https://datatracker.ietf.org/doc/html/rfc5652
package signing
