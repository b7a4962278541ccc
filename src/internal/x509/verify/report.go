// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultDateLayout is used when no layout is given to [Report.RenderText].
const DefaultDateLayout = "2006-01-02 15:04:05 MST"

// Name holds the distinguished name attributes the scanner can locate.
type Name struct {
	Country            string `json:"country,omitempty"`
	State              string `json:"state,omitempty"`
	Locality           string `json:"locality,omitempty"`
	Organization       string `json:"organization,omitempty"`
	OrganizationalUnit string `json:"organizationalUnit,omitempty"`
	CommonName         string `json:"commonName,omitempty"`
	Email              string `json:"email,omitempty"`
}

// String renders n in the familiar "CN=..., O=..." order, omitting empty
// attributes.
func (n Name) String() string {
	parts := make([]string, 0, 7)
	for _, a := range []struct{ k, v string }{
		{"CN", n.CommonName},
		{"OU", n.OrganizationalUnit},
		{"O", n.Organization},
		{"L", n.Locality},
		{"ST", n.State},
		{"C", n.Country},
		{"emailAddress", n.Email},
	} {
		if a.v != "" {
			parts = append(parts, a.k+"="+a.v)
		}
	}
	return strings.Join(parts, ", ")
}

// Report describes one certificate and, after verification, its outcome.
type Report struct {
	Source     string    `json:"source,omitempty"`
	Signature  string    `json:"signature"`
	Hash       string    `json:"hash"`
	Issuer     Name      `json:"issuer"`
	Subject    Name      `json:"subject"`
	NotBefore  time.Time `json:"notBefore"`
	NotAfter   time.Time `json:"notAfter"`
	Key        string    `json:"publicKey"`
	SignerKey  string    `json:"signerKey,omitempty"`
	Signer     *Name     `json:"signer,omitempty"`
	SelfSigned bool      `json:"selfSigned"`
	Verified   bool      `json:"verified"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// Status returns "verified" or "FAILED".
func (r *Report) Status() string {
	if r.Verified {
		return "verified"
	}
	return "FAILED"
}

func describeKey(d x509scan.Descriptor) string {
	switch d.Algorithm {
	case x509scan.AlgorithmRSA:
		return fmt.Sprintf("RSA %d-bit e=%d", d.Bits, d.Exponent)
	case x509scan.AlgorithmECC:
		return fmt.Sprintf("ECC %s", d.Curve)
	}
	return "unsupported"
}

func (v *Verifier) name(tbs []byte, at int) Name {
	get := func(oid []byte) string {
		return string(v.scanner.FindEntityAttribute(tbs, oid, at).Value(tbs))
	}
	return Name{
		Country:            get(x509scan.OIDCountryName),
		State:              get(x509scan.OIDStateOrProvince),
		Locality:           get(x509scan.OIDLocality),
		Organization:       get(x509scan.OIDOrganizationName),
		OrganizationalUnit: get(x509scan.OIDOrganizationalUnit),
		CommonName:         get(x509scan.OIDCommonName),
		Email:              get(x509scan.OIDEmailAddress),
	}
}

// Inspect reports what the scanner finds in der without verifying it. The
// TBSCertificate stays in the verifier's buffer for a following signature
// check.
func (v *Verifier) Inspect(der []byte) (*Report, error) {
	if err := v.extractTBS(der); err != nil {
		return nil, err
	}
	tbs := v.tbs.Bytes()

	sig := v.scanner.ExtractCertSignature(der, v.sig)
	report := &Report{
		Signature: sig.Algorithm.String(),
		Hash:      sig.Hash.String(),
	}

	issuer := v.scanner.FindIssuer(tbs)
	subject := v.scanner.FindSubject(tbs)
	report.Issuer = v.name(tbs, issuer)
	report.Subject = v.name(tbs, subject)

	validity := v.scanner.FindValidity(tbs)
	if t, err := x509scan.ParseDate(tbs, v.scanner.FindStartDate(tbs, validity)); err == nil {
		report.NotBefore = t
	}
	if t, err := x509scan.ParseDate(tbs, v.scanner.FindExpiryDate(tbs, validity)); err == nil {
		report.NotAfter = t
	}

	report.Key = describeKey(v.scanner.ExtractPublicKey(tbs, subject, v.key))
	return report, nil
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

// RenderText renders the report as indented "key: value" lines. Dates use
// layout, or [DefaultDateLayout] when empty.
func (r *Report) RenderText(layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	var b strings.Builder
	if r.Source != "" {
		fmt.Fprintf(&b, "Source:     %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Subject:    %s\n", r.Subject)
	fmt.Fprintf(&b, "Issuer:     %s\n", r.Issuer)
	fmt.Fprintf(&b, "Not Before: %s\n", formatDate(r.NotBefore, layout))
	fmt.Fprintf(&b, "Not After:  %s\n", formatDate(r.NotAfter, layout))
	fmt.Fprintf(&b, "Public Key: %s\n", r.Key)
	fmt.Fprintf(&b, "Signature:  %s with %s\n", r.Signature, r.Hash)
	if r.SignerKey != "" {
		signer := "self"
		if r.Signer != nil {
			signer = r.Signer.String()
		}
		fmt.Fprintf(&b, "Signed By:  %s (%s)\n", signer, r.SignerKey)
		fmt.Fprintf(&b, "Status:     %s\n", r.Status())
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "Warning:    %s\n", w)
	}
	return b.String()
}

// RenderTable renders reports as a markdown table, one row per certificate.
func RenderTable(reports []*Report, layout string) string {
	if len(reports) == 0 {
		return "No certificates to display"
	}
	if layout == "" {
		layout = DefaultDateLayout
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"#", "Source", "Subject", "Issuer", "Valid Until", "Key", "Signature", "Status"})

	rows := make([][]string, 0, len(reports))
	for i, r := range reports {
		status := "-"
		if r.SignerKey != "" {
			status = r.Status()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Source,
			r.Subject.CommonName,
			r.Issuer.CommonName,
			formatDate(r.NotAfter, layout),
			r.Key,
			r.Signature + "/" + r.Hash,
			status,
		})
	}
	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// MarshalReports encodes reports as indented JSON.
func MarshalReports(reports []*Report) ([]byte, error) {
	return json.MarshalIndent(reports, "", "  ")
}
