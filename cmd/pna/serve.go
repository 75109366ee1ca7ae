package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tsawler/pna/internal/server"
	"github.com/tsawler/pna/model"
)

func newServeCmd() *cobra.Command {
	var records string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve records over the review API",
		Long: `Serve loads a record CSV written by "pna run" when --records is given,
otherwise it processes the register first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data   []model.Record
				runID  = uuid.New()
				source = records
			)

			if records != "" {
				var err error
				if data, _, err = loadRecords([]string{records}); err != nil {
					return err
				}
			} else {
				res, err := process(cmd, cfg)
				if err != nil {
					return err
				}
				data, runID, source = res.Records, res.RunID, cfg.Input.PDFPath
			}

			slog.Info("serving records", "source", source, "records", len(data), "run_id", runID)
			store := server.NewStore(runID, source, data)
			return server.New(store, cfg.Server).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&records, "records", "", "record CSV to serve instead of processing")
	cmd.Flags().String("addr", "", "listen address (env SERVER_ADDR)")
	return cmd
}
