// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509verify checks certificate signatures one (signer key, signed
// certificate) pair at a time.
//
// It ties together the DER scanner, the SHA-256 engine, the PKCS#1 v1.5
// verifier and an elliptic curve collaborator:
//
//  1. the signature and the signed TBSCertificate are extracted from the
//     certificate;
//  2. the signer key comes from the same certificate when it is self-signed
//     or from a separately supplied CA certificate;
//  3. the TBSCertificate is hashed with the algorithm named by the signature;
//  4. the digest is checked with RSA or handed to the ECC collaborator.
//
// Multi-level chains are not walked automatically. A [Verifier] owns its
// hash state and arithmetic scratch space and must not be shared between
// goroutines; [Verifier.VerifyBatch] gives every worker its own.
//
// Results are collected in a [Report], which can be rendered as text, as a
// markdown table or as JSON.
package x509verify
