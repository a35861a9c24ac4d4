package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Quarters []Projection `json:"quarters"`
}

// JSONRenderer collects projections and writes them as one JSON document on Close
type JSONRenderer struct {
	w      io.Writer
	output JSONOutput
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{w: w, output: JSONOutput{Quarters: []Projection{}}}
}

func (r *JSONRenderer) Render(p Projection) error {
	r.output.Quarters = append(r.output.Quarters, p)
	return nil
}

func (r *JSONRenderer) Close() error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// tableRow places a slot in a table. pct names the slot shown in the
// Share column; group rows are bold, others are indented under them.
type tableRow struct {
	id    string
	pct   string
	group bool
}

var (
	summaryRows = []tableRow{
		{id: "metric-income"},
		{id: "metric-expenditures"},
		{id: "metric-net"},
		{id: "metric-balance-beginning"},
		{id: "metric-balance"},
	}
	incomeRows = []tableRow{
		{id: "income-local-amount", pct: "income-local-pct", group: true},
		{id: "income-tax-revenue"},
		{id: "income-rpt"},
		{id: "income-rpt-general-fund"},
		{id: "income-rpt-sef"},
		{id: "income-business-tax"},
		{id: "income-other-taxes"},
		{id: "income-non-tax"},
		{id: "income-regulatory-fees"},
		{id: "income-service-charges"},
		{id: "income-economic-enterprises"},
		{id: "income-other-receipts"},
		{id: "income-external-amount", pct: "income-external-pct", group: true},
		{id: "income-nta"},
		{id: "income-other-shares"},
		{id: "income-inter-local"},
		{id: "income-extraordinary"},
	}
	expenditureRows = []tableRow{
		{id: "exp-gps-amount", pct: "exp-gps-pct", group: true},
		{id: "exp-social-amount", pct: "exp-social-pct", group: true},
		{id: "exp-education"},
		{id: "exp-health"},
		{id: "exp-labor"},
		{id: "exp-housing"},
		{id: "exp-welfare"},
		{id: "exp-economic-amount", pct: "exp-economic-pct", group: true},
		{id: "exp-debt-amount", pct: "exp-debt-pct", group: true},
	}
)

// TableRenderer prints a projection as terminal tables
type TableRenderer struct {
	w io.Writer
}

func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{w: w}
}

func (r *TableRenderer) Render(p Projection) error {
	fmt.Fprintf(r.w, "Statement of Receipts and Expenditures, %s (%s)\n\n", p.Period, p.PeriodLabel)

	r.renderTable(p, "Summary", summaryRows, "")
	if s, ok := p.Slot("income-period-text"); ok {
		fmt.Fprintf(r.w, "%s\n", s.Value)
	}
	r.renderTable(p, "Income", incomeRows, "metric-income")
	r.renderTable(p, "Expenditures", expenditureRows, "metric-expenditures")
	return nil
}

func (r *TableRenderer) renderTable(p Projection, title string, rows []tableRow, totalID string) {
	slots := p.Map()

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Item", "Amount", "Share"})

	appended := 0
	for _, row := range rows {
		value, ok := slots[row.id]
		if !ok {
			continue
		}
		slot, _ := p.Slot(row.id)
		label := slot.Label
		share := ""
		if row.pct != "" {
			share = slots[row.pct]
		}
		if row.group {
			label = text.Bold.Sprint(label)
		} else if title != "Summary" {
			label = "  " + label
		}
		t.AppendRow(table.Row{label, value, share})
		appended++
	}
	if appended == 0 {
		return
	}

	if total, ok := p.Slot(totalID); ok {
		t.AppendFooter(table.Row{text.Bold.Sprint(total.Label), text.Bold.Sprint(total.Value), ""})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.w)
}
