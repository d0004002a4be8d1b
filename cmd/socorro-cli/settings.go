package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/padenot/socorro-cli/internal/config"
	"github.com/padenot/socorro-cli/internal/logging"
	"github.com/padenot/socorro-cli/internal/output"
	"github.com/padenot/socorro-cli/internal/socorro"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDepth   = 10
	defaultProduct = "Firefox"
)

// settings are the effective values after precedence is applied.
type settings struct {
	format  output.Format
	token   string
	baseURL string
	timeout time.Duration
	depth   int
	product string
}

var current settings

// resolveSettings initializes logging and merges flags, environment and
// config file into current.
func resolveSettings(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return err
	}
	if !logging.ValidFormat(rootFlags.logFormat) {
		return fmt.Errorf("unknown log format %q (want text or json)", rootFlags.logFormat)
	}
	logging.Init(level, rootFlags.logFormat, cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	s := settings{
		format:  output.Compact,
		token:   firstNonEmpty(os.Getenv(config.EnvToken), cfg.Token),
		baseURL: firstNonEmpty(os.Getenv(config.EnvBaseURL), cfg.BaseURL, socorro.DefaultBaseURL),
		timeout: defaultTimeout,
		depth:   defaultDepth,
		product: firstNonEmpty(cfg.Product, defaultProduct),
	}

	if flags.Changed("format") {
		s.format = rootFlags.format
	} else if cfg.Format != "" {
		if s.format, err = output.ParseFormat(cfg.Format); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if flags.Changed("token") {
		s.token = rootFlags.token
	}
	if flags.Changed("base-url") {
		s.baseURL = rootFlags.baseURL
	}
	if flags.Changed("timeout") {
		s.timeout = rootFlags.timeout
	} else if d, _ := cfg.TimeoutDuration(); d > 0 {
		s.timeout = d
	}
	if cfg.Depth != nil {
		s.depth = *cfg.Depth
	}

	current = s
	logging.New("cli").Debug("settings resolved",
		"format", s.format, "base_url", s.baseURL, "authenticated", s.token != "", "timeout", s.timeout)
	return nil
}

// loadConfig reads --config, then $SOCORRO_CLI_CONFIG, then the default
// path. Only a missing default file is tolerated.
func loadConfig() (*config.Config, error) {
	path := firstNonEmpty(rootFlags.configPath, os.Getenv(config.EnvConfig))
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.LoadDefault()
}

// newClient builds an API client from the resolved settings.
func newClient(opts ...socorro.Option) (*socorro.Client, error) {
	opts = append([]socorro.Option{
		socorro.WithTimeout(current.timeout),
		socorro.WithLogger(logging.New("socorro")),
		socorro.WithUserAgent("socorro-cli/" + version),
	}, opts...)
	return socorro.New(current.baseURL, current.token, opts...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
