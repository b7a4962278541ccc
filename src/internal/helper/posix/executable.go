// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultName is returned when the invocation name is unavailable.
const DefaultName = "x509-trust-verifier"

// GetExecutableName returns the name of the running binary without
// directory or ".exe" suffix.
func GetExecutableName() string { return ExecutableName(os.Args) }

// ExecutableName returns the base name of args[0] without ".exe".
//
// Both slash and backslash separate path components, so a Windows path
// seen on a Unix host still yields the bare name.
//
// Parameters:
//   - args: argument vector as in os.Args
//
// Returns:
//   - string: clean executable name, or [DefaultName] when args[0] is empty
func ExecutableName(args []string) string {
	if len(args) == 0 {
		return DefaultName
	}
	name := args[0]
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." {
		return DefaultName
	}
	return name
}
