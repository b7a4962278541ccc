// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
	x509verify "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/verify"
)

const (
	// EnvConfigFile names the configuration file when no path is given.
	EnvConfigFile = "X509_TRUST_CONFIG_FILE"
	// EnvStrategy overrides engine.strategy.
	EnvStrategy = "X509_TRUST_STRATEGY"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

var (
	// ErrUnknownCurve indicates a curve name the scanner does not know.
	ErrUnknownCurve = errors.New("config: unknown curve")

	// ErrUnknownFormat indicates an output format other than text, table or json.
	ErrUnknownFormat = errors.New("config: unknown output format")
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
	// configFormatTOML represents TOML configuration format (.toml)
	configFormatTOML
)

// Config holds the verifier settings.
type Config struct {
	// Engine: RSA arithmetic settings
	Engine struct {
		// ModulusBits: RSA modulus widths that may be verified, multiples of 32
		ModulusBits []int `json:"modulusBits" yaml:"modulusBits" toml:"modulusBits"`
		// Strategy: modular multiplication strategy, "divide" or "shift"
		Strategy string `json:"strategy" yaml:"strategy" toml:"strategy"`
		// Exponent: public exponent of the boot image path, 3 or 65537
		Exponent uint32 `json:"exponent" yaml:"exponent" toml:"exponent"`
	} `json:"engine" yaml:"engine" toml:"engine"`

	// ECC: elliptic curve settings
	ECC struct {
		// Curves: accepted named curves
		Curves []string `json:"curves" yaml:"curves" toml:"curves"`
	} `json:"ecc" yaml:"ecc" toml:"ecc"`

	// Output: presentation settings
	Output struct {
		// Format: "text", "table" or "json"
		Format string `json:"format" yaml:"format" toml:"format"`
		// DateLayout: Go time layout for validity dates
		DateLayout string `json:"dateLayout" yaml:"dateLayout" toml:"dateLayout"`
	} `json:"output" yaml:"output" toml:"output"`

	// Limits: scratch buffer capacities in bytes
	Limits struct {
		MaxCertBytes int `json:"maxCertBytes" yaml:"maxCertBytes" toml:"maxCertBytes"`
		MaxKeyBytes  int `json:"maxKeyBytes" yaml:"maxKeyBytes" toml:"maxKeyBytes"`
	} `json:"limits" yaml:"limits" toml:"limits"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.Engine.ModulusBits = []int{2048, 3072, 4096}
	c.Engine.Strategy = bignum.MultiplyDivide.String()
	c.Engine.Exponent = uint32(bignum.E65537)
	c.ECC.Curves = []string{"P-256", "P-384", "P-521"}
	c.Output.Format = FormatText
	c.Output.DateLayout = "2006-01-02 15:04:05"
	c.Limits.MaxCertBytes = 16384
	c.Limits.MaxKeyBytes = 1056
	return c
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	case ".toml":
		return configFormatTOML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	case configFormatTOML:
		if err := toml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse TOML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml, .toml
//
// Returns:
//   - *Config: loaded configuration with defaults applied
//   - error: the file cannot be read or parsed, or names an unknown
//     strategy, curve or output format
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_TRUST_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults
//  4. X509_TRUST_STRATEGY overrides engine.strategy
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if s := os.Getenv(EnvStrategy); s != "" {
		config.Engine.Strategy = s
	}

	config.normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// normalize resets out of range values to their defaults.
func (c *Config) normalize() {
	def := Default()

	bits := c.Engine.ModulusBits[:0:0]
	for _, b := range c.Engine.ModulusBits {
		if b > 0 && b%bignum.WordBits == 0 && !slices.Contains(bits, b) {
			bits = append(bits, b)
		}
	}
	if len(bits) == 0 {
		bits = def.Engine.ModulusBits
	}
	c.Engine.ModulusBits = bits

	if c.Engine.Strategy == "" {
		c.Engine.Strategy = def.Engine.Strategy
	}
	if !bignum.Exponent(c.Engine.Exponent).Supported() {
		c.Engine.Exponent = def.Engine.Exponent
	}
	if len(c.ECC.Curves) == 0 {
		c.ECC.Curves = def.ECC.Curves
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.DateLayout == "" {
		c.Output.DateLayout = def.Output.DateLayout
	}
	if c.Limits.MaxCertBytes <= 0 {
		c.Limits.MaxCertBytes = def.Limits.MaxCertBytes
	}
	// A key buffer must hold the largest configured modulus.
	minKey := slices.Max(c.Engine.ModulusBits) / 8
	if c.Limits.MaxKeyBytes < minKey {
		c.Limits.MaxKeyBytes = max(minKey, def.Limits.MaxKeyBytes)
	}
}

// Validate reports names that cannot be interpreted.
func (c *Config) Validate() error {
	if _, err := bignum.ParseStrategy(c.Engine.Strategy); err != nil {
		return fmt.Errorf("config: engine.strategy %q: %w", c.Engine.Strategy, err)
	}
	if _, err := c.Curves(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatText, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format)
	}
	return nil
}

// Curves returns the configured curves.
func (c *Config) Curves() ([]x509scan.Curve, error) {
	curves := make([]x509scan.Curve, 0, len(c.ECC.Curves))
	for _, name := range c.ECC.Curves {
		curve := x509scan.ParseCurve(name)
		if curve == x509scan.CurveNone {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

// Exponent returns the boot path public exponent.
func (c *Config) Exponent() bignum.Exponent { return bignum.Exponent(c.Engine.Exponent) }

// Options converts c into verifier options.
func (c *Config) Options() (x509verify.Options, error) {
	strategy, err := bignum.ParseStrategy(c.Engine.Strategy)
	if err != nil {
		return x509verify.Options{}, err
	}
	curves, err := c.Curves()
	if err != nil {
		return x509verify.Options{}, err
	}
	return x509verify.Options{
		ModulusBits:  slices.Clone(c.Engine.ModulusBits),
		Strategy:     strategy,
		Curves:       curves,
		MaxCertBytes: c.Limits.MaxCertBytes,
		MaxKeyBytes:  c.Limits.MaxKeyBytes,
	}, nil
}
