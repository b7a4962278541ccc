// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for the command-line front end.
//
// Key functions:
//   - GetExecutableName: the name the binary was invoked as, for cobra usage strings
//   - ExecutableName: the same, computed from an explicit argument vector
//
// Both accept Windows paths on any host and drop a trailing ".exe":
//
//   - Linux/macOS: "/usr/bin/x509-trust-verifier" → "x509-trust-verifier"
//   - Windows: "C:\bin\x509-trust-verifier.exe" → "x509-trust-verifier"
//   - Fallback: Empty args → "x509-trust-verifier"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
