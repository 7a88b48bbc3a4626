// bookingctl runs maintenance tasks against the same backends as the API
// server: a one-off sweep, a ledger rebuild from the order system, and a
// terminal calendar for one resource.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/srgjo27/cowork_booking/internal/adapter/cli"
	"github.com/srgjo27/cowork_booking/internal/app"
	"github.com/srgjo27/cowork_booking/internal/platform/config"
	"github.com/srgjo27/cowork_booking/internal/platform/logger"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printHelp()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	var resourceID, month, logLevel string
	var noColor bool

	flagSet := pflag.NewFlagSet("bookingctl "+command, pflag.ContinueOnError)
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	switch command {
	case "sweep":
		flagSet.BoolVar(&noColor, "no-color", false, "disable colored output")
	case "rebuild":
		flagSet.StringVarP(&resourceID, "resource", "r", "", "resource ID whose ledger is rebuilt")
	case "calendar":
		flagSet.StringVarP(&resourceID, "resource", "r", "", "resource ID to display")
		flagSet.StringVarP(&month, "month", "m", "", "month to display as YYYY-MM")
		flagSet.BoolVar(&noColor, "no-color", false, "disable colored output")
	case "help", "-h", "--help":
		printHelp()
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}

	if err := flagSet.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if command != "sweep" && resourceID == "" {
		return fmt.Errorf("--resource is required: %w", errUsage)
	}
	if command == "calendar" && month == "" {
		return fmt.Errorf("--month is required: %w", errUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	switch command {
	case "sweep":
		report, err := a.Sweeper.Run(ctx)
		if report != nil {
			fmt.Fprint(out, cli.RenderSweepReport(report, noColor))
		}
		return err
	case "rebuild":
		n, err := a.Sweeper.RebuildLedger(ctx, resourceID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ledger of %s rebuilt with %d reservations\n", resourceID, n)
		return nil
	default:
		view, err := a.Booking.MonthView(ctx, resourceID, month)
		if err != nil {
			return err
		}
		fmt.Fprint(out, cli.RenderMonth(view, noColor))
		return nil
	}
}

func printHelp() {
	fmt.Fprint(os.Stderr, `bookingctl: maintenance for the reservation engine.

Usage:
  bookingctl sweep [--no-color]
  bookingctl rebuild --resource ID
  bookingctl calendar --resource ID --month YYYY-MM [--no-color]

Configuration is read from the environment and an optional .env file,
the same way the API server reads it.
`)
}
