// Package config assembles run configuration from defaults, an optional
// TOML file, and environment variables, lowest to highest precedence.
// The credential is only ever read from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kumvijaya/pr-merger/internal/constants"
	"github.com/kumvijaya/pr-merger/internal/errors"
)

// Config holds everything a run needs. The token is threaded through
// explicitly rather than read from a process-wide global.
type Config struct {
	// Token authenticates every GitHub API request. Environment only.
	Token string `toml:"-"`

	// RequiredApprovals is the minimum number of APPROVED reviews.
	RequiredApprovals int `toml:"required_approvals"`

	// RequiredLabels are the status contexts that must report success.
	RequiredLabels []string `toml:"required_labels"`

	// OutputPath is where the JSON run record is written.
	OutputPath string `toml:"output_path"`

	// DryRun evaluates the gate without issuing the merge request.
	DryRun bool `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RequiredApprovals: constants.DefaultRequiredApprovals,
		OutputPath:        constants.DefaultOutputFile,
	}
}

// Load builds the configuration: defaults, then the optional config file,
// then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := filePath(); err == nil {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func filePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pr-merger.toml"), nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Token = os.Getenv(constants.EnvToken)

	if v, ok := os.LookupEnv(constants.EnvApprovalCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &errors.ValidationError{Field: constants.EnvApprovalCount, Value: v, Msg: "must be an integer"}
		}
		c.RequiredApprovals = n
	}

	if v, ok := os.LookupEnv(constants.EnvStatusLabels); ok {
		c.RequiredLabels = SplitLabels(v)
	}
	return nil
}

// SplitLabels parses a comma-delimited label list, trimming whitespace and
// dropping empty entries.
func SplitLabels(s string) []string {
	var labels []string
	for _, label := range strings.Split(s, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.ErrMissingCredential
	}
	if c.RequiredApprovals < 0 {
		return &errors.ValidationError{
			Field: "RequiredApprovals",
			Value: c.RequiredApprovals,
			Msg:   "must not be negative",
		}
	}
	if c.OutputPath == "" {
		return &errors.ValidationError{Field: "OutputPath", Value: c.OutputPath, Msg: "must not be empty"}
	}
	return nil
}
