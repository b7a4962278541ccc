// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs unwraps the transport encodings certificates arrive in.
// It supports [PEM], bare base64, DER and [PKCS7] bundles, and hands raw DER
// bytes to the scanner. This package is used by the CLI to read inputs and
// by the verifier's tests to load fixtures.
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
