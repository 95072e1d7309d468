package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8000"

// config is the resolved runtime configuration: environment (optionally
// seeded from .env) overridden by subcommand flags.
type config struct {
	APIURL          string
	RefreshOnSignup bool
	DebugLog        string
	Addr            string
}

// loadDotEnv seeds the environment from .env. A missing file is fine.
func loadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// configFromEnv reads ROSTER_* variables through getenv.
func configFromEnv(getenv func(string) string) (config, error) {
	cfg := config{
		APIURL:   strings.TrimSpace(getenv("ROSTER_API_URL")),
		DebugLog: strings.TrimSpace(getenv("ROSTER_DEBUG_LOG")),
		Addr:     strings.TrimSpace(getenv("ROSTER_ADDR")),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if v := strings.TrimSpace(getenv("ROSTER_REFRESH_ON_SIGNUP")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return config{}, fmt.Errorf("ROSTER_REFRESH_ON_SIGNUP: invalid boolean %q", v)
		}
		cfg.RefreshOnSignup = b
	}
	return cfg, nil
}

// newFlagSet returns a flag set for one subcommand, bound to cfg.
func newFlagSet(name string, cfg *config, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	switch name {
	case "serve":
		flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	case "demo":
		flags.BoolVar(&cfg.RefreshOnSignup, "refresh-on-signup", cfg.RefreshOnSignup, "reload the roster after a successful sign-up")
	default:
		flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "activities API base URL")
		flags.BoolVar(&cfg.RefreshOnSignup, "refresh-on-signup", cfg.RefreshOnSignup, "reload the roster after a successful sign-up")
	}
	return flags
}

// setupLogging points the standard logger at path while the terminal UI
// owns stdout. With no path, diagnostics are dropped.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "roster")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() {
		f.Close() //nolint:errcheck
		log.SetOutput(os.Stderr)
	}, nil
}
