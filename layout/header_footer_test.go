package layout

import "testing"

func pageWithLines(page int, texts map[float64]string) PageLines {
	p := PageLines{Page: page, Height: 842}
	for y, txt := range texts {
		p.Lines = append(p.Lines, Line{Text: txt, Baseline: y})
	}
	return p
}

func TestHeaderFooterKeywords(t *testing.T) {
	detector := NewHeaderFooterDetector()
	page := pageWithLines(3, map[float64]string{
		800: "PNA Miejscowość Ulica Numery Gmina Powiat Województwo",
		700: "00-001 Warszawa",
		400: "Copyright Poczta Polska S.A.",
	})

	result := detector.Detect([]PageLines{page})
	kept, dropped := result.Filter(page)
	if len(kept) != 1 || kept[0].Text != "00-001 Warszawa" {
		t.Errorf("Unexpected kept lines: %+v", kept)
	}
	if len(dropped) != 2 {
		t.Errorf("Expected 2 dropped lines, got %d", len(dropped))
	}
}

func TestHeaderFooterKeywordInsideRow(t *testing.T) {
	detector := NewHeaderFooterDetector()
	page := pageWithLines(3, map[float64]string{
		790: "32-860 Strona Czchów brzeski małopolskie",
		400: "32-861 Strona Czchów brzeski małopolskie",
		300: "Strona",
		15:  "Strona 3 z 1672",
	})

	kept, dropped := detector.Detect([]PageLines{page}).Filter(page)
	if len(kept) != 3 {
		t.Errorf("Expected 3 kept lines, got %d: %+v", len(kept), kept)
	}
	if len(dropped) != 1 || dropped[0].Text != "Strona 3 z 1672" {
		t.Errorf("Unexpected dropped lines: %+v", dropped)
	}
}

func TestHeaderFooterRepeating(t *testing.T) {
	detector := NewHeaderFooterDetectorWithConfig(HeaderFooterConfig{
		HeaderRegionHeight: 72,
		FooterRegionHeight: 72,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5,
		MinPages:           2,
	})

	var pages []PageLines
	for i := 1; i <= 4; i++ {
		pages = append(pages, pageWithLines(i, map[float64]string{
			20:  "Wydanie 2025",
			500: "00-00" + string(rune('0'+i)) + " Warszawa",
			790: "00-10" + string(rune('0'+i)) + " Kraków",
		}))
	}

	result := detector.Detect(pages)
	if !result.HasRepeating() {
		t.Fatal("Expected a repeating footer")
	}

	kept, dropped := result.Filter(pages[0])
	if len(dropped) != 1 || dropped[0].Text != "Wydanie 2025" {
		t.Errorf("Unexpected dropped lines: %+v", dropped)
	}
	if len(kept) != 2 {
		t.Errorf("Expected 2 kept lines, got %d", len(kept))
	}
}

func TestHeaderFooterPageNumber(t *testing.T) {
	detector := NewHeaderFooterDetector()
	page := pageWithLines(7, map[float64]string{
		15:  "Strona 7 z 1672",
		30:  "59",
		300: "- 7 -",
	})

	kept, _ := detector.Detect([]PageLines{page}).Filter(page)
	// A bare number is kept: number ranges look the same
	// A dash label outside the footer zone is body text
	if len(kept) != 2 {
		t.Errorf("Expected 2 kept lines, got %d: %+v", len(kept), kept)
	}
}

func TestIsPageNumberPattern(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Strona # z #", true},
		{"strona #", true},
		{"- # -", true},
		{"#", false},
		{"#/#", false},
		{"Warszawa", false},
	}
	for _, tt := range tests {
		if got := isPageNumberPattern(tt.input); got != tt.expected {
			t.Errorf("isPageNumberPattern(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
