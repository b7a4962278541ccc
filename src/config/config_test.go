// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/config"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		testFunc func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "JSON",
			file: "config.json",
			content: `{
  "engine": {"modulusBits": [2048], "strategy": "shift", "exponent": 3},
  "ecc": {"curves": ["P-256"]},
  "output": {"format": "json"}
}`,
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []int{2048}, cfg.Engine.ModulusBits)
				assert.Equal(t, "shift", cfg.Engine.Strategy)
				assert.Equal(t, bignum.E3, cfg.Exponent())
				assert.Equal(t, config.FormatJSON, cfg.Output.Format)
				assert.Equal(t, "2006-01-02 15:04:05", cfg.Output.DateLayout)
			},
		},
		{
			name: "YAML",
			file: "config.yml",
			content: `
engine:
  modulusBits: [3072, 4096]
ecc:
  curves: [secp384r1]
output:
  format: table
  dateLayout: "02 Jan 2006"
limits:
  maxCertBytes: 8192
`,
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []int{3072, 4096}, cfg.Engine.ModulusBits)
				assert.Equal(t, "divide", cfg.Engine.Strategy)
				assert.Equal(t, []string{"secp384r1"}, cfg.ECC.Curves)
				assert.Equal(t, config.FormatTable, cfg.Output.Format)
				assert.Equal(t, "02 Jan 2006", cfg.Output.DateLayout)
				assert.Equal(t, 8192, cfg.Limits.MaxCertBytes)

				curves, err := cfg.Curves()
				require.NoError(t, err)
				assert.Equal(t, []x509scan.Curve{x509scan.CurveP384}, curves)
			},
		},
		{
			name: "TOML",
			file: "config.toml",
			content: `
[engine]
modulusBits = [2048, 2048, 4096]
strategy = "divide"
exponent = 65537

[ecc]
curves = ["P-521", "prime256v1"]

[limits]
maxKeyBytes = 600
`,
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []int{2048, 4096}, cfg.Engine.ModulusBits)
				assert.Equal(t, bignum.E65537, cfg.Exponent())
				assert.Equal(t, 600, cfg.Limits.MaxKeyBytes)

				curves, err := cfg.Curves()
				require.NoError(t, err)
				assert.Equal(t, []x509scan.Curve{x509scan.CurveP521, x509scan.CurveP256}, curves)
			},
		},
		{
			name: "Invalid Values Reset To Defaults",
			file: "config.json",
			content: `{
  "engine": {"modulusBits": [2047, -1], "exponent": 17},
  "output": {"format": "TEXT"},
  "limits": {"maxCertBytes": -5, "maxKeyBytes": 10}
}`,
			testFunc: func(t *testing.T, cfg *config.Config) {
				def := config.Default()
				assert.Equal(t, def.Engine.ModulusBits, cfg.Engine.ModulusBits)
				assert.Equal(t, bignum.E65537, cfg.Exponent())
				assert.Equal(t, config.FormatText, cfg.Output.Format)
				assert.Equal(t, def.Limits.MaxCertBytes, cfg.Limits.MaxCertBytes)
				assert.Equal(t, def.Limits.MaxKeyBytes, cfg.Limits.MaxKeyBytes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvStrategy, "")
			cfg, err := config.Load(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			tt.testFunc(t, cfg)
		})
	}
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "No File",
			testFunc: func(t *testing.T) {
				t.Setenv(config.EnvConfigFile, "")
				t.Setenv(config.EnvStrategy, "")
				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, config.Default(), cfg)

				opts, err := cfg.Options()
				require.NoError(t, err)
				assert.Equal(t, bignum.MultiplyDivide, opts.Strategy)
				assert.Equal(t, []int{2048, 3072, 4096}, opts.ModulusBits)
				assert.Len(t, opts.Curves, 3)
				assert.Equal(t, 16384, opts.MaxCertBytes)
			},
		},
		{
			name: "File From Environment",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "env.yaml", "output:\n  format: json\n")
				t.Setenv(config.EnvConfigFile, path)
				t.Setenv(config.EnvStrategy, "")
				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, config.FormatJSON, cfg.Output.Format)
			},
		},
		{
			name: "Strategy Override",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "c.json", `{"engine": {"strategy": "divide"}}`)
				t.Setenv(config.EnvStrategy, "shift")
				cfg, err := config.Load(path)
				require.NoError(t, err)

				opts, err := cfg.Options()
				require.NoError(t, err)
				assert.Equal(t, bignum.ShiftAdd, opts.Strategy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		err     error
	}{
		{"Unknown Strategy", "c.json", `{"engine": {"strategy": "karatsuba"}}`, bignum.ErrStrategy},
		{"Unknown Curve", "c.yaml", "ecc:\n  curves: [brainpoolP256r1]\n", config.ErrUnknownCurve},
		{"Unknown Format", "c.toml", "[output]\nformat = \"xml\"\n", config.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvStrategy, "")
			_, err := config.Load(writeConfig(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("Malformed Files", func(t *testing.T) {
		for _, name := range []string{"bad.json", "bad.yaml", "bad.toml"} {
			_, err := config.Load(writeConfig(t, name, "{[ not valid"))
			assert.Error(t, err, name)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
