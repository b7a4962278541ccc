// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 trust verifier.
// It implements a Cobra-based CLI with three commands:
//
//   - verify: checks certificate signatures against a CA certificate or, without
//     one, against each certificate's own key
//   - inspect: prints what the DER scanner finds without verifying anything
//   - boot: checks a detached RSA signature over an image file against a raw modulus
//
// Results are written as text, a markdown table or JSON. The package handles
// file I/O, configuration loading and context cancellation, and reports warnings
// and per-certificate failures through the logger package.
package cli
