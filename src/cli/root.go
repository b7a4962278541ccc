// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/config"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/logger"
)

var (
	// ErrInputFileRequired indicates that a command was run without its input files.
	ErrInputFileRequired = errors.New("input file is required")

	// ErrVerificationFailed indicates that at least one signature did not verify.
	ErrVerificationFailed = errors.New("verification failed")
)

var (
	// OperationPerformed is set once a command starts processing input.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set when every check passed.
	OperationPerformedSuccessfully bool
)

// options holds the global flags shared by every command.
type options struct {
	configFile string
	format     string
	logJSON    bool

	cfg *config.Config
	log logger.Logger
}

// NewRootCommand builds the command tree. Output goes to the command's
// configured writers; log receives warnings and progress.
func NewRootCommand(ctx context.Context, version string, log logger.Logger) *cobra.Command {
	opts := &options{log: log}
	exe := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exe,
		Short: "X.509 certificate and boot image signature verifier",
		Long: `Verifies RSA (PKCS#1 v1.5) and ECDSA signatures on X.509 certificates and
RSA signatures on raw boot images, using a DER scanner, a SHA-256 engine and
fixed-width modular arithmetic of its own.`,
		Example: fmt.Sprintf(`  %[1]s verify --ca ca.pem cert.pem
  %[1]s verify ca.pem
  %[1]s inspect --format table *.pem
  %[1]s boot --modulus key.bin --signature image.sig --image image.bin`, exe),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}
	rootCmd.SetContext(ctx)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "configuration file (.json, .yaml, .yml, .toml)")
	flags.StringVarP(&opts.format, "format", "F", "", "output format: text, table or json (default from config)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit log messages as JSON lines")

	rootCmd.AddCommand(
		newVerifyCommand(opts),
		newInspectCommand(opts),
		newBootCommand(opts),
	)
	return rootCmd
}

// setup loads the configuration and prepares the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.format != "" {
		cfg.Output.Format = o.format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg

	switch {
	case o.logJSON:
		o.log = logger.NewJSONLogger(cmd.ErrOrStderr(), false)
	case o.log == nil:
		o.log = logger.NewCLILogger()
		o.log.SetOutput(cmd.ErrOrStderr())
	}
	return nil
}

// Execute runs the root command with os.Args.
//
// Parameters:
//   - ctx: cancels batch verification when done
//   - version: reported by --version
//   - log: receives warnings and progress messages
//
// Returns:
//   - error: ErrInputFileRequired, ErrVerificationFailed, or any I/O,
//     configuration or decoding error
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	rootCmd := NewRootCommand(ctx, version, log)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		if log != nil && !errors.Is(err, ErrVerificationFailed) {
			log.Printf("Error: %v", err)
		}
		return err
	}
	return nil
}

// readFile reads a whole file through the pooled buffer.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	defer f.Close()

	data, err := gc.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}
