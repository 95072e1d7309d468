package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/roster/internal/browser"
	"github.com/naveenspark/roster/internal/devserver"
	"github.com/naveenspark/roster/internal/export"
	"github.com/naveenspark/roster/internal/tui"
	"github.com/naveenspark/roster/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "roster "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(stdout)
			return nil
		}
	}

	if err := loadDotEnv(); err != nil {
		return err
	}
	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		return err
	}

	cmd := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	flags := newFlagSet(cmd, &cfg, stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	switch cmd {
	case "":
		return runTUI(cfg)
	case "demo":
		return runDemo(cfg)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, stdout)
	case "export":
		if flags.NArg() != 1 {
			return fmt.Errorf("usage: roster export [-api-url URL] FILE")
		}
		return runExport(context.Background(), cfg, flags.Arg(0), stdout)
	case "web":
		return openWeb(webURL(client.New(cfg.APIURL)), stdout)
	default:
		return fmt.Errorf("unknown command %q (see: roster help)", cmd)
	}
}

// webURL is the browser page of the service c talks to.
func webURL(c *client.Client) string {
	return c.BaseURL() + devserver.IndexPath
}

func runTUI(cfg config) error {
	closeLog, err := setupLogging(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()
	return startTUI(cfg)
}

func startTUI(cfg config) error {
	c := client.New(cfg.APIURL)
	app := tui.NewApp(c, tui.Config{
		RefreshOnSignup: cfg.RefreshOnSignup,
		WebURL:          webURL(c),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runDemo serves the seeded roster on an ephemeral port and opens the TUI
// against it. The server stops when the TUI exits.
func runDemo(cfg config) error {
	closeLog, err := setupLogging(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	store := devserver.NewStore(devserver.SchoolDomain, devserver.SeedActivities())
	srv, err := devserver.Listen("127.0.0.1:0", store)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cfg.APIURL = srv.URL()
	tuiErr := startTUI(cfg)
	cancel()
	if err := <-done; err != nil && tuiErr == nil {
		return err
	}
	return tuiErr
}

func runServe(ctx context.Context, cfg config, stdout io.Writer) error {
	store := devserver.NewStore(devserver.SchoolDomain, devserver.SeedActivities())
	srv, err := devserver.Listen(cfg.Addr, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "serving activities on %s (ctrl+c to stop)\n", srv.URL())
	return srv.Serve(ctx)
}

func runExport(ctx context.Context, cfg config, path string, stdout io.Writer) error {
	c := client.New(cfg.APIURL)
	r, err := c.ListActivities(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := export.SaveFile(path, r); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d activities from %s to %s\n", r.Len(), c.BaseURL(), path)
	return nil
}

func openWeb(url string, stdout io.Writer) error {
	if err := browser.Open(url); err != nil {
		fmt.Fprintln(stdout, url)
	}
	return nil
}
