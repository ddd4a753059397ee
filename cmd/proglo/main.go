// Command proglo is the command-line client of the proglo fitness tracker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/and161185/proglo/internal/config"
	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv/sealed"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, `proglo CLI
Usage:
  proglo [-backend file|memory|postgres] [-data-dir dir] [-dsn url] [-seal-passphrase p] <cmd> [args]

Commands:
  %s
  version

Run "proglo <cmd> -h" for command flags.
`, strings.Join(names, "\n  "))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(stderr, "load .env:", err)
		return 1
	}
	cfg, rest, err := config.Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		usage(stderr)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	name := rest[0]
	if name == "version" {
		fmt.Fprintf(stdout, "proglo %s (%s)\n", version, buildDate)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr)
		return 2
	}

	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	a, err := openApp(ctx, cfg, logger, stdout, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer a.Close()

	if err := cmd(ctx, a, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return fail(stderr, err)
	}
	return 0
}

// newLogger writes JSON logs to w so that stdout carries command output only.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

// message turns an error into the line shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, errs.ErrNotAuthenticated):
		return "not logged in (run: proglo login)"
	case errors.Is(err, errs.ErrForbidden):
		return "admin role required"
	case errors.Is(err, errs.ErrAlreadyExists):
		return "email is already registered"
	case errors.Is(err, sealed.ErrWrongPassphrase):
		return "wrong seal passphrase"
	case errors.Is(err, sealed.ErrSealed):
		return "data is sealed (pass -seal-passphrase)"
	case errors.Is(err, sealed.ErrPlainData):
		return "data is not sealed; refusing to seal over it (drop -seal-passphrase)"
	case errors.Is(err, errs.ErrRateLimited):
		return "too many failed logins: " + strings.TrimPrefix(err.Error(), errs.ErrRateLimited.Error()+": ")
	default:
		return err.Error()
	}
}

func fail(w io.Writer, err error) int {
	fmt.Fprintln(w, "error:", message(err))
	return 1
}
