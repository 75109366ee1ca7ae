package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// findByID returns the first element with the given id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// countRows counts the tr elements below n.
func countRows(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "tr" {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countRows(c)
	}
	return count
}

func TestWriteHTMLReport(t *testing.T) {
	var buf bytes.Buffer
	runID := uuid.New()
	err := WriteHTMLReport(&buf, ReportData{
		RunID:     runID,
		Source:    "spis.pdf",
		Generated: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Records:   records(),
	})
	if err != nil {
		t.Fatalf("WriteHTMLReport failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("Expected doctype, got %q", out[:20])
	}
	if !strings.Contains(out, runID.String()) {
		t.Error("Expected run id in report")
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse failed: %v", err)
	}

	flagged := findByID(doc, "flagged")
	if flagged == nil {
		t.Fatal("Expected flagged table")
	}
	// Header plus one flagged record
	if n := countRows(flagged); n != 2 {
		t.Errorf("Expected 2 rows in flagged table, got %d", n)
	}
	if !strings.Contains(out, "missing_essential_field, duplicate_pna_cross_wojewodztwo") {
		t.Error("Expected flag names in flagged row")
	}

	if woj := findByID(doc, "wojewodztwa"); woj == nil || countRows(woj) != 2 {
		t.Error("Expected two voivodeship rows")
	}
}

func TestWriteHTMLReportLimit(t *testing.T) {
	recs := append(records(), records()...)

	var buf bytes.Buffer
	if err := WriteHTMLReport(&buf, ReportData{Records: recs, Limit: 1}); err != nil {
		t.Fatalf("WriteHTMLReport failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Showing 1 of 2 flagged records.") {
		t.Error("Expected truncation note")
	}
}
