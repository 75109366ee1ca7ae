// Command pna turns the Polish postal code register into validated CSV
// records and serves them for review.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tsawler/pna/internal/config"
	"github.com/tsawler/pna/internal/logging"
)

// cfg is populated by the root command before any subcommand runs.
var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pna",
		Short:         "Extract, reconcile and validate the PNA postal code register",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	fs := root.PersistentFlags()
	fs.String("pdf", "", "register PDF, scan directory or raw dump (env PDF_PATH)")
	fs.String("format", "", "source format: auto, pdf, raw-csv, image, images")
	fs.String("pages", "", "inclusive page range start-end")
	fs.String("encoding", "", "text encoding of raw dumps")
	fs.StringP("output", "o", "", "record CSV destination (env OUTPUT_PATH)")
	fs.BoolP("verbose", "v", false, "log progress detail")
	fs.Bool("skip-validation-flags", false, "omit flag columns from the CSV")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("log-format", "", "text or json")

	root.AddCommand(
		newRunCmd(),
		newDumpCmd(),
		newMissingGminaCmd(),
		newDiffCmd(),
		newStatsCmd(),
		newServeCmd(),
		newCalibrateCmd(),
	)
	return root
}

// loadConfig reads .env and the environment, applies command-line
// overrides, validates the result and configures logging.
func loadConfig(cmd *cobra.Command) error {
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	c, err := config.Read()
	if err != nil {
		return err
	}

	stringFlag(cmd, "pdf", &c.Input.PDFPath)
	stringFlag(cmd, "format", &c.Input.Format)
	stringFlag(cmd, "pages", &c.Input.PageRange)
	stringFlag(cmd, "encoding", &c.Input.RawEncoding)
	stringFlag(cmd, "output", &c.Output.Path)
	boolFlag(cmd, "verbose", &c.Logging.Verbose)
	boolFlag(cmd, "skip-validation-flags", &c.Output.SkipValidationFlags)
	stringFlag(cmd, "log-level", &c.Logging.Level)
	stringFlag(cmd, "log-format", &c.Logging.Format)

	stringFlag(cmd, "raw-dump", &c.Output.RawDumpPath)
	stringFlag(cmd, "html-report", &c.Output.HTMLReportPath)
	boolFlag(cmd, "repair-gmina", &c.Extraction.RepairGmina)
	boolFlag(cmd, "preflight", &c.Input.Preflight)
	stringFlag(cmd, "database-url", &c.Database.URL)
	stringFlag(cmd, "addr", &c.Server.Addr)

	if err := c.Validate(); err != nil {
		return err
	}

	logging.Setup(c.Logging.EffectiveLevel(), c.Logging.Format)
	slog.Debug("configuration loaded", "config", c.String())

	cfg = c
	return nil
}

// stringFlag copies a flag into dst when it was set on the command line.
func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetString(name); err == nil {
		*dst = v
	}
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetBool(name); err == nil {
		*dst = v
	}
}
