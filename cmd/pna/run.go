package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/pna"
	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/internal/config"
	"github.com/tsawler/pna/sink"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the register and write the record CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			res, err := process(cmd, cfg)
			if err != nil {
				return err
			}

			cols, err := columns(cfg)
			if err != nil {
				return err
			}
			if err := sink.WriteCSVFile(cfg.Output.Path, res.Records, cols); err != nil {
				return err
			}
			slog.Info("wrote records", "path", cfg.Output.Path, "records", len(res.Records))

			if path := cfg.Output.HTMLReportPath; path != "" {
				err := sink.WriteHTMLReportFile(path, sink.ReportData{
					RunID:   res.RunID,
					Source:  cfg.Input.PDFPath,
					Records: res.Records,
				})
				if err != nil {
					return err
				}
				slog.Info("wrote report", "path", path)
			}

			if cfg.Database.URL != "" {
				db, err := sink.ConnectPostgres(ctx, cfg.Database.URL, cfg.Database.Table)
				if err != nil {
					return err
				}
				defer db.Close()

				if err := db.EnsureTable(ctx); err != nil {
					return err
				}
				n, err := db.Write(ctx, res.RunID, res.Records)
				if err != nil {
					return err
				}
				slog.Info("stored records", "table", cfg.Database.Table, "rows", n, "run_id", res.RunID)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d flagged, %d unique postal codes (%s)\n",
				res.Summary.Records, res.Summary.Flagged, res.Summary.UniquePostalCodes, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().String("raw-dump", "", "also write the unreconciled rows to this CSV")
	cmd.Flags().String("html-report", "", "also write an HTML review report")
	cmd.Flags().Bool("repair-gmina", false, "move gmina names merged into number ranges back")
	cmd.Flags().Bool("preflight", false, "validate the PDF structure before extraction")
	cmd.Flags().String("database-url", "", "also copy the records into PostgreSQL")
	return cmd
}

// newProcessor configures a pipeline from the loaded configuration.
func newProcessor(c *config.Config) (*pna.Processor, error) {
	fm, err := format.Parse(c.Input.Format)
	if err != nil {
		return nil, err
	}
	vc, err := c.ValidateConfig()
	if err != nil {
		return nil, err
	}

	p := pna.Open(c.Input.PDFPath).
		Format(fm).
		Profile(c.Extraction.Profile).
		Encoding(c.Input.RawEncoding).
		OCR(c.Extraction.OCRLanguage, c.Extraction.OCRDPI).
		Validation(vc).
		Logger(slog.Default())

	start, end, err := c.PageRange()
	if err != nil {
		return nil, err
	}
	if start > 0 {
		p = p.PageRange(start, end)
	}
	area, separators, err := c.Layout()
	if err != nil {
		return nil, err
	}
	if !area.IsZero() || len(separators) > 0 {
		p = p.Layout(area, separators)
	}
	if c.Extraction.RowTolerance > 0 {
		p = p.RowTolerance(c.Extraction.RowTolerance)
	}
	if c.Input.Preflight {
		p = p.Preflight()
	}
	if c.Output.RawDumpPath != "" {
		p = p.RawDump(c.Output.RawDumpPath)
	}
	if c.Extraction.RepairGmina {
		p = p.RepairGmina()
	}
	return p, nil
}

// process runs the full pipeline and logs its warnings.
func process(cmd *cobra.Command, c *config.Config) (*pna.Result, error) {
	p, err := newProcessor(c)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	res, warnings, err := p.Process(cmd.Context())
	if err != nil {
		return nil, err
	}
	logWarnings(warnings)
	return res, nil
}

func logWarnings(warnings []pna.Warning) {
	for _, w := range warnings {
		if w.Code == pna.WarnExtraction {
			slog.Debug("warning", "code", w.Code, "page", w.Page, "message", w.Message)
			continue
		}
		slog.Warn("warning", "code", w.Code, "page", w.Page, "message", w.Message)
	}
}

func columns(c *config.Config) (sink.Columns, error) {
	suppress, err := c.SuppressedFlags()
	if err != nil {
		return sink.Columns{}, err
	}
	return sink.Columns{SkipFlags: c.Output.SkipValidationFlags, Suppress: suppress}, nil
}
