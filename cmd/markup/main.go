package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Build and render HTML and CSS documents from Go",
		Long: `markup renders documents built with the markup library.

It prints the built-in sample documents, publishes them to a
directory or an S3 bucket, and serves them on a live preview
server that reloads open browser tabs when a page changes.

Settings are read from markup.json in the working directory
or the nearest parent directory holding one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every step")

	rootCmd.AddCommand(
		renderCmd(),
		publishCmd(),
		serveCmd(),
		listCmd(),
		versionCmd(),
	)

	return rootCmd
}

// newLogger returns a text logger on the command's stderr. Only warnings
// are shown unless --verbose is set.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadConfig loads and validates markup.json.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveFormat returns the --format flag value, or the configured format
// when the flag is empty.
func resolveFormat(cfg *config.Config, flag string) (markup.Formatting, error) {
	if flag == "" {
		return cfg.Format(), nil
	}
	f, err := markup.ParseFormatting(flag)
	if err != nil {
		return 0, errors.New("X001").
			WithDetail("--format: " + err.Error()).
			Wrap(err)
	}
	return f, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
