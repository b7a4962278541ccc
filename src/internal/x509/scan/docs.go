// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509scan locates the fields of a DER encoded [X.509] certificate
// needed for signature verification without building a parse tree.
//
// Each lookup is a targeted walk over tag and length headers starting at a
// known position: the certificate signature, the signed TBSCertificate
// span, the issuer and subject names, the validity dates and the subject
// public key. Name, validity and key lookups take the TBSCertificate bytes
// produced by [Scanner.ExtractTBSCertificate].
//
// Lookups never panic on malformed input. Every length is checked against
// the remaining buffer and a failed lookup returns its sentinel: offset 0,
// a zero [Attribute], or a [Descriptor] whose Algorithm is [AlgorithmNone].
// Callers must check the sentinel before using the result.
//
// [X.509]: https://www.rfc-editor.org/rfc/rfc5280#section-4.1
package x509scan
