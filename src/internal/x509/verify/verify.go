// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify

import (
	"errors"
	"fmt"
	"slices"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/octet"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/pkcs1"
	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/logger"
)

var (
	// ErrSignatureUnsupported indicates an unrecognized signature algorithm.
	ErrSignatureUnsupported = errors.New("x509verify: signature algorithm not supported")

	// ErrKeyUnsupported indicates an unrecognized public key algorithm or curve.
	ErrKeyUnsupported = errors.New("x509verify: public key algorithm not supported")

	// ErrModulusUnsupported indicates an RSA modulus width that is not configured.
	ErrModulusUnsupported = errors.New("x509verify: RSA modulus width not configured")

	// ErrExponentUnsupported indicates an RSA public exponent other than 3 or 65537.
	ErrExponentUnsupported = errors.New("x509verify: RSA public exponent not supported")

	// ErrTBSNotFound indicates that the signed TBSCertificate could not be located.
	ErrTBSNotFound = errors.New("x509verify: TBSCertificate not found")

	// ErrInvalidECCKey indicates an ECC public key that is not a valid curve point.
	ErrInvalidECCKey = errors.New("x509verify: invalid ECC public key")

	// ErrCertTooLarge indicates a certificate larger than the configured limit.
	ErrCertTooLarge = errors.New("x509verify: certificate exceeds size limit")
)

// ECC is the elliptic curve collaborator. Implementations validate public
// points given as X || Y and verify ECDSA signatures over a digest.
type ECC interface {
	ValidatePublicKey(curve x509scan.Curve, point []byte) bool
	VerifySignature(curve x509scan.Curve, kind digest.Kind, point, sum, r, s []byte) bool
}

// Options configures a [Verifier].
type Options struct {
	// ModulusBits lists the RSA modulus widths that may be verified.
	ModulusBits []int
	// Strategy selects the modular multiplication strategy.
	Strategy bignum.Strategy
	// Curves lists the accepted ECC curves.
	Curves []x509scan.Curve
	// MaxCertBytes bounds certificate and TBSCertificate buffers.
	MaxCertBytes int
	// MaxKeyBytes bounds public key and signature buffers.
	MaxKeyBytes int
}

// DefaultOptions returns RSA 2048/3072/4096, the divide strategy and all
// three NIST curves.
func DefaultOptions() Options {
	return Options{
		ModulusBits:  []int{2048, 3072, 4096},
		Strategy:     bignum.MultiplyDivide,
		Curves:       []x509scan.Curve{x509scan.CurveP256, x509scan.CurveP384, x509scan.CurveP521},
		MaxCertBytes: 16384,
		MaxKeyBytes:  1056,
	}
}

// Signer is a public key extracted from a certificate, used to verify
// certificates it signed.
type Signer struct {
	Key        x509scan.Descriptor
	Material   []byte
	Subject    Name
	SelfSigned bool
}

// Verifier verifies certificate signatures. It is not safe for concurrent
// use.
type Verifier struct {
	opts    Options
	scanner *x509scan.Scanner
	ecc     ECC
	log     logger.Logger

	rsa  map[int]*pkcs1.Verifier
	hash *digest.SHA256

	tbs  *octet.Buffer
	sig  *octet.Buffer
	key  *octet.Buffer
	tail *octet.Buffer
}

// New returns a verifier. RSA engines are created lazily per modulus width.
//
// Parameters:
//   - opts: widths, strategy, curves and buffer limits
//   - ecc: elliptic curve collaborator
//   - log: receives warnings such as a signature and key type mismatch; may be nil
//
// Returns:
//   - *Verifier: ready to use verifier
//
// Thread Safety: The returned verifier must be used by one goroutine at a time.
func New(opts Options, ecc ECC, log logger.Logger) *Verifier {
	def := DefaultOptions()
	if len(opts.ModulusBits) == 0 {
		opts.ModulusBits = def.ModulusBits
	}
	if len(opts.Curves) == 0 {
		opts.Curves = def.Curves
	}
	if opts.MaxCertBytes <= 0 {
		opts.MaxCertBytes = def.MaxCertBytes
	}
	if opts.MaxKeyBytes <= 0 {
		opts.MaxKeyBytes = def.MaxKeyBytes
	}
	return &Verifier{
		opts:    opts,
		scanner: x509scan.New(opts.Curves...),
		ecc:     ecc,
		log:     log,
		rsa:     make(map[int]*pkcs1.Verifier),
		hash:    digest.New(),
		tbs:     octet.New(opts.MaxCertBytes),
		sig:     octet.New(opts.MaxKeyBytes),
		key:     octet.New(opts.MaxKeyBytes),
		tail:    octet.New(opts.MaxKeyBytes),
	}
}

// fork returns a verifier with the same configuration and fresh state.
func (v *Verifier) fork() *Verifier { return New(v.opts, v.ecc, v.log) }

func (v *Verifier) extractTBS(der []byte) error {
	if len(der) > v.opts.MaxCertBytes {
		return ErrCertTooLarge
	}
	if !v.scanner.ExtractTBSCertificate(der, v.tbs) {
		return ErrTBSNotFound
	}
	return nil
}

// ExtractSigner reads the subject public key of der so it can verify the
// certificates it issued.
func (v *Verifier) ExtractSigner(der []byte) (Signer, error) {
	if err := v.extractTBS(der); err != nil {
		return Signer{}, err
	}
	tbs := v.tbs.Bytes()
	subject := v.scanner.FindSubject(tbs)
	desc := v.scanner.ExtractPublicKey(tbs, subject, v.key)
	if !desc.Supported() {
		return Signer{}, ErrKeyUnsupported
	}
	if desc.Algorithm == x509scan.AlgorithmECC && v.ecc != nil && !v.ecc.ValidatePublicKey(desc.Curve, v.key.Bytes()) {
		return Signer{}, ErrInvalidECCKey
	}
	return Signer{
		Key:      desc,
		Material: slices.Clone(v.key.Bytes()),
		Subject:  v.name(tbs, subject),
	}, nil
}

// VerifySelfSigned checks der against its own embedded public key.
func (v *Verifier) VerifySelfSigned(der []byte) (*Report, error) {
	signer, err := v.ExtractSigner(der)
	if err != nil {
		return nil, err
	}
	signer.SelfSigned = true
	return v.VerifyWith(der, signer)
}

// VerifyWith checks the signature of der with signer's key.
//
// A signature that does not match is reported through Report.Verified with
// a nil error. Errors are returned for unsupported algorithms and for
// structure the scanner cannot locate. When the signature algorithm and the
// signer key type differ a warning is logged and verification proceeds with
// the signer key.
func (v *Verifier) VerifyWith(der []byte, signer Signer) (*Report, error) {
	report, err := v.Inspect(der)
	if err != nil {
		return nil, err
	}
	report.SignerKey = describeKey(signer.Key)
	report.SelfSigned = signer.SelfSigned
	if !signer.SelfSigned {
		report.Signer = &signer.Subject
	}

	sigDesc := v.scanner.ExtractCertSignature(der, v.sig)
	if !sigDesc.Supported() {
		return nil, ErrSignatureUnsupported
	}
	if sigDesc.Algorithm != signer.Key.Algorithm {
		msg := fmt.Sprintf("signature algorithm %s does not match %s signer key", sigDesc.Algorithm, signer.Key.Algorithm)
		report.Warnings = append(report.Warnings, msg)
		logger.Warnf(v.log, "%s", msg)
	}

	// Inspect left the TBSCertificate in v.tbs.
	sum, err := v.digest(sigDesc.Hash, v.tbs.Bytes())
	if err != nil {
		return nil, err
	}

	switch signer.Key.Algorithm {
	case x509scan.AlgorithmRSA:
		report.Verified, err = v.verifyRSA(sigDesc.Hash, sum, signer)
	case x509scan.AlgorithmECC:
		report.Verified, err = v.verifyECC(sigDesc.Hash, sum, signer)
	default:
		err = ErrKeyUnsupported
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// digest hashes data; SHA-256 goes through the verifier's own engine.
func (v *Verifier) digest(kind digest.Kind, data []byte) ([]byte, error) {
	if kind == digest.KindSHA256 {
		_, _ = v.hash.Write(data)
		sum := v.hash.Hash()
		return sum[:], nil
	}
	sum, err := digest.Sum(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignatureUnsupported, kind)
	}
	return sum, nil
}

func (v *Verifier) rsaVerifier(bits int) (*pkcs1.Verifier, error) {
	if rv, ok := v.rsa[bits]; ok {
		return rv, nil
	}
	if !slices.Contains(v.opts.ModulusBits, bits) {
		return nil, fmt.Errorf("%w: %d bits", ErrModulusUnsupported, bits)
	}
	rv, err := pkcs1.NewVerifier(bits, v.opts.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModulusUnsupported, err)
	}
	v.rsa[bits] = rv
	return rv, nil
}

func (v *Verifier) verifyRSA(kind digest.Kind, sum []byte, signer Signer) (bool, error) {
	exp := bignum.Exponent(signer.Key.Exponent)
	if !exp.Supported() {
		return false, fmt.Errorf("%w: %d", ErrExponentUnsupported, signer.Key.Exponent)
	}
	rv, err := v.rsaVerifier(signer.Key.Bits)
	if err != nil {
		return false, err
	}
	ok, err := rv.Verify(kind, sum, signer.Material, v.sig.Bytes(), exp)
	if err != nil {
		return false, fmt.Errorf("x509verify: RSA verification: %w", err)
	}
	return ok, nil
}

func (v *Verifier) verifyECC(kind digest.Kind, sum []byte, signer Signer) (bool, error) {
	if v.ecc == nil {
		return false, ErrKeyUnsupported
	}
	if v.sig.Len()%2 != 0 {
		return false, nil
	}
	if err := v.sig.Chop(v.sig.Len()/2, v.tail); err != nil {
		return false, err
	}
	return v.ecc.VerifySignature(signer.Key.Curve, kind, signer.Material, sum, v.sig.Bytes(), v.tail.Bytes()), nil
}
