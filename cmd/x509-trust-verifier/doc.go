// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-trust-verifier is a command-line tool that checks X.509 certificate
// signatures and boot image signatures with its own DER scanner, SHA-256
// engine and fixed-width RSA arithmetic.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-trust-verifier/cmd/x509-trust-verifier@latest
//
// # Usage
//
//	x509-trust-verifier verify [--ca CA_FILE] CERT_FILE...
//	x509-trust-verifier inspect CERT_FILE...
//	x509-trust-verifier boot --modulus FILE --signature FILE --image FILE [--exponent 3|65537]
//
// # Global Flags
//
//	-c, --config     Configuration file (.json, .yaml, .yml, .toml)
//	-F, --format     Output format: text, table or json
//	    --log-json   Emit log messages as JSON lines
//
// # Exit Codes
//
//	0    every signature verified
//	1    usage, input or configuration error
//	2    at least one signature did not verify
//	130  interrupted
//
// # Examples
//
// Verify a certificate against the CA that issued it:
//
//	x509-trust-verifier verify --ca ca.pem cert.pem
//
// Verify self-signed roots and print a markdown table:
//
//	x509-trust-verifier verify --format table roots/*.pem
//
// Check a boot image signed with exponent 3:
//
//	x509-trust-verifier boot -m modulus.hex -s image.sig -i image.bin -e 3
package main
