// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads verifier settings from JSON, YAML or TOML files.
//
// Defaults are applied first, then the file named by the caller or by the
// X509_TRUST_CONFIG_FILE environment variable, then environment overrides.
// Out of range values are reset to their defaults rather than rejected, with
// the exception of names (strategy, curves, output format) that cannot be
// interpreted at all.
//
// Example configuration (YAML):
//
//	engine:
//	  modulusBits: [2048, 3072, 4096]
//	  strategy: divide
//	  exponent: 65537
//	ecc:
//	  curves: [P-256, P-384, P-521]
//	output:
//	  format: table
//	  dateLayout: "2006-01-02 15:04:05"
//	limits:
//	  maxCertBytes: 16384
//	  maxKeyBytes: 1056
package config
