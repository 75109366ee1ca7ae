package sink

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/report"
)

// DefaultReportLimit caps the flagged records listed in an HTML report.
const DefaultReportLimit = 5000

// ReportData is the content of an HTML review report.
type ReportData struct {
	RunID     uuid.UUID
	Source    string
	Generated time.Time
	Records   []model.Record

	// Limit caps the listed flagged records; zero uses DefaultReportLimit
	Limit int
}

const reportStyle = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse;margin-bottom:2em}
th,td{border:1px solid #ccc;padding:2px 6px;text-align:left;vertical-align:top}
th{background:#eee}
td.flags{color:#a00}`

// WriteHTMLReport renders a summary and the flagged records as a
// standalone HTML page.
func WriteHTMLReport(w io.Writer, d ReportData) error {
	summary := report.Summarize(d.Records)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "pl")
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), "PNA review"))
	head.AppendChild(withText(element(atom.Style), reportStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	body.AppendChild(withText(element(atom.H1), "PNA review"))
	meta := element(atom.P, "class", "meta")
	meta.AppendChild(text(fmt.Sprintf("Run %s · source %s · generated %s",
		d.RunID, d.Source, d.Generated.Format(time.RFC3339))))
	body.AppendChild(meta)

	body.AppendChild(withText(element(atom.H2), "Summary"))
	body.AppendChild(keyValueTable("summary", [][2]string{
		{"Records", strconv.Itoa(summary.Records)},
		{"Unique postal codes", strconv.Itoa(summary.UniquePostalCodes)},
		{"Flagged records", strconv.Itoa(summary.Flagged)},
		{"Orphan rows", strconv.Itoa(summary.Orphans)},
		{"Unreconciled continuations", strconv.Itoa(summary.Unconverged)},
	}))

	var perFlag [][2]string
	for _, k := range model.FlagKinds() {
		perFlag = append(perFlag, [2]string{k.String(), strconv.Itoa(summary.PerFlag[k.String()])})
	}
	body.AppendChild(withText(element(atom.H2), "Flags"))
	body.AppendChild(keyValueTable("flags", perFlag))

	var perWoj [][2]string
	for _, name := range summary.Wojewodztwa() {
		label := name
		if label == "" {
			label = "(empty)"
		}
		perWoj = append(perWoj, [2]string{label, strconv.Itoa(summary.PerWojewodztwo[name])})
	}
	body.AppendChild(withText(element(atom.H2), "Records per voivodeship"))
	body.AppendChild(keyValueTable("wojewodztwa", perWoj))

	body.AppendChild(withText(element(atom.H2), "Flagged records"))
	listed, total := flaggedTable(body, d.Records, d.Limit)
	if listed < total {
		body.AppendChild(withText(element(atom.P, "class", "truncated"),
			fmt.Sprintf("Showing %d of %d flagged records.", listed, total)))
	}

	return html.Render(w, doc)
}

// flaggedTable appends the flagged record table and returns how many rows
// were listed out of how many flagged records.
func flaggedTable(parent *html.Node, records []model.Record, limit int) (listed, total int) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}

	table := element(atom.Table, "id", "flagged")
	header := element(atom.Tr)
	header.AppendChild(withText(element(atom.Th), "#"))
	for _, f := range model.Fields() {
		header.AppendChild(withText(element(atom.Th), f.String()))
	}
	header.AppendChild(withText(element(atom.Th), "flags"))
	header.AppendChild(withText(element(atom.Th), "sources"))
	table.AppendChild(header)

	for i, rec := range records {
		if rec.Flags.Empty() {
			continue
		}
		total++
		if listed >= limit {
			continue
		}
		listed++

		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Td), strconv.Itoa(i)))
		for _, v := range rec.Values() {
			tr.AppendChild(withText(element(atom.Td), v))
		}
		tr.AppendChild(withText(element(atom.Td, "class", "flags"), strings.ReplaceAll(rec.Flags.String(), "|", ", ")))
		refs := make([]string, len(rec.Sources))
		for j, s := range rec.Sources {
			refs[j] = s.String()
		}
		tr.AppendChild(withText(element(atom.Td), strings.Join(refs, " ")))
		table.AppendChild(tr)
	}

	parent.AppendChild(table)
	return listed, total
}

func keyValueTable(id string, rows [][2]string) *html.Node {
	table := element(atom.Table, "id", id)
	for _, r := range rows {
		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Th), r[0]))
		tr.AppendChild(withText(element(atom.Td), r[1]))
		table.AppendChild(tr)
	}
	return table
}

// element creates an element node; attrs are key, value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

// WriteHTMLReportFile writes the report to path.
func WriteHTMLReportFile(path string, d ReportData) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteHTMLReport(w, d)
	})
}
