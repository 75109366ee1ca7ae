package pna_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/pna"
	"github.com/tsawler/pna/internal/logging"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/sink"
	"github.com/tsawler/pna/source"
)

func Example_process() {
	ctx := context.Background()
	res, warnings, err := pna.Open("data/oficjalny_spis_pna_2025.pdf").
		PageRange(3, 1672).
		Process(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
	fmt.Println(len(res.Records), "records,", res.Summary.UniquePostalCodes, "postal codes")
}

func Example_withOptions() {
	ctx := context.Background()
	res, warnings, err := pna.Open("data/oficjalny_spis_pna_2025.pdf").
		PageRange(3, 1672).
		Preflight().                     // Validate the PDF before reading it
		RawDump("postal_codes_raw.csv"). // Keep the unreconciled rows
		RepairGmina().                   // Split gmina names out of number ranges
		Logger(logging.Setup("debug", "text")).
		Process(ctx)
	if err != nil {
		log.Fatal(err)
	}
	_ = warnings

	err = sink.WriteCSVFile("postal_codes_poland.csv", res.Records, sink.Columns{
		Suppress: model.NewFlagSet(model.NumericInPlaceName),
	})
	if err != nil {
		log.Fatal(err)
	}
}

func Example_reprocessDump() {
	// A raw dump from an earlier run is detected by its header row
	records := pna.MustRecords(pna.Open("postal_codes_raw.csv").Process(context.Background()))
	_ = sink.WriteCSV(os.Stdout, records, sink.Columns{SkipFlags: true})
}

func Example_fromRows() {
	rows := []model.RawRow{
		model.NewRawRow(3, 0, "12-345", "Lipowa", "", "Warszawa", "Wola", "Warszawa", "mazowieckie"),
		model.NewRawRow(3, 1, "", "", "1-10", "", "", "", ""),
	}

	res, _, err := pna.FromSource(source.NewMemory(rows)).Pages(3).Process(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range res.Records {
		fmt.Println(r.PostalCode, r.Street, r.NumberRange, r.Flags.Empty())
	}
	// Output: 12-345 Lipowa 1-10 true
}
