// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/config"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
	x509verify "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/verify"
)

// writeReports renders reports in the configured output format.
func (o *options) writeReports(w io.Writer, reports []*x509verify.Report) error {
	layout := o.cfg.Output.DateLayout

	switch o.cfg.Output.Format {
	case config.FormatJSON:
		data, err := x509verify.MarshalReports(reports)
		if err != nil {
			return fmt.Errorf("error marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case config.FormatTable:
		_, err := io.WriteString(w, x509verify.RenderTable(reports, layout))
		return err
	}

	for i, r := range reports {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.RenderText(layout)); err != nil {
			return err
		}
	}
	return nil
}

// readKeyMaterial reads raw bytes, or decodes the file when it holds hex text.
func readKeyMaterial(path string) ([]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.Join(strings.Fields(string(data)), "")
	if len(text) > 0 && len(text)%2 == 0 {
		if raw, err := hex.DecodeString(text); err == nil {
			return raw, nil
		}
	}
	return data, nil
}

// bootReport is the outcome of a boot image check.
type bootReport struct {
	Image       string `json:"image"`
	Size        int    `json:"size"`
	SHA256      string `json:"sha256"`
	ModulusBits int    `json:"modulusBits"`
	Exponent    uint32 `json:"exponent"`
	Verified    bool   `json:"verified"`
}

func newBootReport(path string, image, modulus []byte, exp bignum.Exponent, ok bool) bootReport {
	sum := digest.Sum256(image)
	return bootReport{
		Image:       path,
		Size:        len(image),
		SHA256:      hex.EncodeToString(sum[:]),
		ModulusBits: 8 * len(bytes.TrimLeft(modulus, "\x00")),
		Exponent:    uint32(exp),
		Verified:    ok,
	}
}

func (r bootReport) status() string {
	if r.Verified {
		return "verified"
	}
	return "FAILED"
}

func (o *options) writeBootReport(w io.Writer, r bootReport) error {
	switch o.cfg.Output.Format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case config.FormatTable:
		table := tablewriter.NewTable(w,
			tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
			tablewriter.WithHeaderAutoFormat(tw.Off),
		)
		table.Header([]string{"Image", "Size", "SHA-256", "Key", "Status"})
		table.Bulk([][]string{{
			r.Image,
			fmt.Sprintf("%d", r.Size),
			r.SHA256,
			fmt.Sprintf("RSA %d-bit e=%d", r.ModulusBits, r.Exponent),
			r.status(),
		}})
		table.Render()
		return nil
	}

	_, err := fmt.Fprintf(w, "Image:      %s (%d bytes)\nSHA-256:    %s\nKey:        RSA %d-bit e=%d\nStatus:     %s\n",
		r.Image, r.Size, r.SHA256, r.ModulusBits, r.Exponent, r.status())
	return err
}
