// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/ecc"
	x509certs "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/certs"
	x509verify "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/verify"
)

// requireInput rejects commands run without positional input files.
func requireInput(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrInputFileRequired
	}
	return nil
}

// input is one decoded certificate and where it came from.
type input struct {
	source string
	der    []byte
}

// loadInputs decodes every certificate in files. Files holding several
// certificates are labelled "file#n".
func (o *options) loadInputs(files []string) ([]input, error) {
	decoder := x509certs.New().WithMaxBytes(o.cfg.Limits.MaxCertBytes)

	var inputs []input
	for _, path := range files {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		certs, err := decoder.DecodeMultiple(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		for i, der := range certs {
			source := path
			if len(certs) > 1 {
				source = fmt.Sprintf("%s#%d", path, i+1)
			}
			inputs = append(inputs, input{source: source, der: der})
		}
	}
	return inputs, nil
}

func (o *options) newVerifier() (*x509verify.Verifier, error) {
	opts, err := o.cfg.Options()
	if err != nil {
		return nil, err
	}
	return x509verify.New(opts, ecc.New(), o.log), nil
}

func newVerifyCommand(o *options) *cobra.Command {
	var caFile string

	cmd := &cobra.Command{
		Use:   "verify [--ca CA_FILE] CERT_FILE...",
		Short: "Verify certificate signatures",
		Long: `Verifies the signature of every certificate in CERT_FILE... with the public
key of the certificate in CA_FILE. Without --ca each certificate is checked
against its own key, which is how self-signed roots are verified.

Inputs may be PEM, DER, bare base64 or PKCS#7 bundles.`,
		Args: requireInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runVerify(cmd, caFile, args)
		},
	}
	cmd.Flags().StringVarP(&caFile, "ca", "a", "", "certificate whose public key signed the inputs")
	return cmd
}

func (o *options) runVerify(cmd *cobra.Command, caFile string, files []string) error {
	v, err := o.newVerifier()
	if err != nil {
		return err
	}

	var signer *x509verify.Signer
	if caFile != "" {
		data, err := readFile(caFile)
		if err != nil {
			return err
		}
		der, err := x509certs.New().WithMaxBytes(o.cfg.Limits.MaxCertBytes).Decode(data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", caFile, err)
		}
		s, err := v.ExtractSigner(der)
		if err != nil {
			return fmt.Errorf("error reading signer key from %s: %w", caFile, err)
		}
		signer = &s
	}

	inputs, err := o.loadInputs(files)
	if err != nil {
		return err
	}
	OperationPerformed = true

	certs := make([][]byte, len(inputs))
	for i, in := range inputs {
		certs[i] = in.der
	}

	failed := false
	reports := make([]*x509verify.Report, 0, len(inputs))
	for _, res := range v.VerifyBatch(cmd.Context(), certs, signer) {
		source := inputs[res.Index].source
		if res.Err != nil {
			o.log.Printf("%s: %v", source, res.Err)
			failed = true
			continue
		}
		res.Report.Source = source
		if !res.Report.Verified {
			failed = true
		}
		reports = append(reports, res.Report)
	}

	if err := o.writeReports(cmd.OutOrStdout(), reports); err != nil {
		return err
	}
	if failed {
		return ErrVerificationFailed
	}
	OperationPerformedSuccessfully = true
	return nil
}

func newInspectCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CERT_FILE...",
		Short: "Show what the scanner finds in certificates",
		Long: `Prints the issuer, subject, validity dates, public key and signature
algorithm of every certificate without verifying any signature.`,
		Args: requireInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runInspect(cmd, args)
		},
	}
}

func (o *options) runInspect(cmd *cobra.Command, files []string) error {
	v, err := o.newVerifier()
	if err != nil {
		return err
	}
	inputs, err := o.loadInputs(files)
	if err != nil {
		return err
	}
	OperationPerformed = true

	var errs []error
	reports := make([]*x509verify.Report, 0, len(inputs))
	for _, in := range inputs {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		report, err := v.Inspect(in.der)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", in.source, err))
			continue
		}
		report.Source = in.source
		reports = append(reports, report)
	}

	if err := o.writeReports(cmd.OutOrStdout(), reports); err != nil {
		return err
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	OperationPerformedSuccessfully = true
	return nil
}

func newBootCommand(o *options) *cobra.Command {
	var (
		modulusFile   string
		signatureFile string
		imageFile     string
		exponent      uint32
	)

	cmd := &cobra.Command{
		Use:   "boot --modulus FILE --signature FILE --image FILE",
		Short: "Verify a boot image signature",
		Long: `Hashes the image with SHA-256 and checks a detached PKCS#1 v1.5 signature
against a bare RSA modulus. The modulus and signature files may hold raw
big-endian bytes or hex text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if modulusFile == "" || signatureFile == "" || imageFile == "" {
				return ErrInputFileRequired
			}
			exp := o.cfg.Exponent()
			if exponent != 0 {
				exp = bignum.Exponent(exponent)
			}
			return o.runBoot(cmd, modulusFile, signatureFile, imageFile, exp)
		},
	}
	cmd.Flags().StringVarP(&modulusFile, "modulus", "m", "", "RSA modulus file")
	cmd.Flags().StringVarP(&signatureFile, "signature", "s", "", "detached signature file")
	cmd.Flags().StringVarP(&imageFile, "image", "i", "", "image file")
	cmd.Flags().Uint32VarP(&exponent, "exponent", "e", 0, "public exponent, 3 or 65537 (default from config)")
	return cmd
}

func (o *options) runBoot(cmd *cobra.Command, modulusFile, signatureFile, imageFile string, exp bignum.Exponent) error {
	modulus, err := readKeyMaterial(modulusFile)
	if err != nil {
		return err
	}
	sig, err := readKeyMaterial(signatureFile)
	if err != nil {
		return err
	}
	image, err := readFile(imageFile)
	if err != nil {
		return err
	}
	strategy, err := bignum.ParseStrategy(o.cfg.Engine.Strategy)
	if err != nil {
		return err
	}
	OperationPerformed = true

	ok, err := x509verify.VerifyBootImage(image, modulus, sig, exp, strategy)
	if err != nil {
		return err
	}

	report := newBootReport(imageFile, image, modulus, exp, ok)
	if err := o.writeBootReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if !ok {
		return ErrVerificationFailed
	}
	OperationPerformedSuccessfully = true
	return nil
}
