// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
// It contains default settings for signing operations.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// DGC_SIGNER_CONFIG_FILE environment variable, with defaults applied for any
// missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for signing operations
	Defaults struct {
		// SigningCertFile: Path to the signing certificate used when a tool
		// call does not provide one
		SigningCertFile string `json:"signingCertFile,omitempty" yaml:"signingCertFile,omitempty"`
		// SigningKeyFile: Path to the signing private key used when a tool
		// call does not provide one
		SigningKeyFile string `json:"signingKeyFile,omitempty" yaml:"signingKeyFile,omitempty"`
		// Detached: Whether built messages omit the payload by default
		Detached bool `json:"detached" yaml:"detached"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file extension.
// It supports .json, .yaml, and .yml extensions, matched case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
//
// Parameters:
//   - data: Raw configuration file contents
//   - config: Pointer to Config struct to populate
//   - format: The configuration format (configFormatJSON or configFormatYAML)
//
// Returns:
//   - error: Any parsing error encountered during unmarshaling
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. DGC_SIGNER_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("DGC_SIGNER_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}
	}

	return config, nil
}
