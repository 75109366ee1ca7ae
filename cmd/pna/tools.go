package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/report"
	"github.com/tsawler/pna/sink"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <path>",
		Short: "Write the unreconciled rows of the register to a CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProcessor(cfg)
			if err != nil {
				return err
			}

			rows, warnings, err := p.RawRows(cmd.Context())
			if err != nil {
				return err
			}
			logWarnings(warnings)

			if err := sink.WriteRawRowsFile(args[0], rows); err != nil {
				return err
			}
			slog.Info("wrote raw rows", "path", args[0], "rows", len(rows))
			return nil
		},
	}
}

// loadRecords reads a record CSV, defaulting to the configured output.
func loadRecords(args []string) ([]model.Record, string, error) {
	path := cfg.Output.Path
	if len(args) > 0 {
		path = args[0]
	}
	records, err := sink.ReadRecordsFile(path)
	if err != nil {
		return nil, path, err
	}
	return records, path, nil
}

func newMissingGminaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missing-gmina [records.csv]",
		Short: "List records whose gmina is empty",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, path, err := loadRecords(args)
			if err != nil {
				return err
			}

			missing := report.MissingGmina(records)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROW\tPNA\tMIEJSCOWOŚĆ\tULICA\tNUMERY\tPOWIAT")
			for _, e := range missing {
				r := e.Record
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.Index+1, r.PostalCode, r.PlaceName, r.Street, r.NumberRange, r.Powiat)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			slog.Info("records without gmina", "path", path, "missing", len(missing), "records", len(records))
			return nil
		},
	}
}

var errDiffer = errors.New("record sets differ")

func newDiffCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "diff <a.csv> <b.csv>",
		Short: "Compare two record CSVs row by row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := sink.ReadRecordsFile(args[0])
			if err != nil {
				return err
			}
			b, err := sink.ReadRecordsFile(args[1])
			if err != nil {
				return err
			}

			d := report.Diff(a, b)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d records\n%s: %d records\n", args[0], d.LenA, args[1], d.LenB)
			if d.Equal() {
				fmt.Fprintln(out, "identical")
				return nil
			}

			fmt.Fprintf(out, "%d differing rows, %d only in %s, %d only in %s\n",
				len(d.Rows), len(d.OnlyA), args[0], len(d.OnlyB), args[1])
			for _, c := range d.Columns() {
				fmt.Fprintf(out, "  %-14s %d\n", c.Field, c.Count)
			}
			for i, row := range d.Rows {
				if i == limit {
					fmt.Fprintf(out, "... %d more\n", len(d.Rows)-limit)
					break
				}
				fmt.Fprintf(out, "row %d:", row.Index+1)
				for _, f := range row.Fields {
					fmt.Fprintf(out, " %s %q -> %q;", f, row.A.Get(f), row.B.Get(f))
				}
				if row.FlagsDiffer {
					fmt.Fprintf(out, " flags %s -> %s;", row.A.Flags, row.B.Flags)
				}
				fmt.Fprintln(out)
			}
			return errDiffer
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum differing rows to print")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [records.csv]",
		Short: "Print summary counts of a record CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := loadRecords(args)
			if err != nil {
				return err
			}
			s := report.Summarize(records)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "records\t%d\n", s.Records)
			fmt.Fprintf(w, "unique postal codes\t%d\n", s.UniquePostalCodes)
			fmt.Fprintf(w, "flagged\t%d\n", s.Flagged)
			fmt.Fprintf(w, "orphans\t%d\n", s.Orphans)
			fmt.Fprintf(w, "unconverged\t%d\n", s.Unconverged)
			for _, k := range model.FlagKinds() {
				fmt.Fprintf(w, "%s\t%d\n", k, s.PerFlag[k.String()])
			}
			for _, woj := range s.Wojewodztwa() {
				fmt.Fprintf(w, "%s\t%d\n", woj, s.PerWojewodztwo[woj])
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
