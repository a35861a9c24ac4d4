package internal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func q1Projection(t *testing.T) Projection {
	t.Helper()
	q1, ok := DefaultDataset().Get("q1")
	if !ok {
		t.Fatal("q1 missing")
	}
	return Project("q1", q1)
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableRenderer(&buf).Render(q1Projection(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Statement of Receipts and Expenditures, Q1 2025 (Jan - Mar)",
		"Summary", "Income", "Expenditures",
		"Total Income", "₱158.47 M",
		"Net Operating Income", "₱90.96 M",
		"Breakdown of municipal revenue for Q1 2025",
		"Local Sources", "₱88.85 M", "56.1%",
		"National Tax Allotment", "₱69.62 M",
		"General Public Services", "63.3%",
		"Debt Service", "0.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestTableRenderer_HiddenSlots(t *testing.T) {
	cfg := &Config{}
	cfg.Hide = []string{"^exp-"}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	var buf bytes.Buffer
	if err := NewTableRenderer(&buf).Render(loaded.Apply(q1Projection(t))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "General Public Services") || strings.Contains(out, "63.3%") {
		t.Error("hidden expenditure rows were rendered")
	}
	if !strings.Contains(out, "Local Sources") {
		t.Error("income rows missing")
	}
}

func TestJSONRenderer(t *testing.T) {
	d := DefaultDataset()
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	s := NewSelector(d, r)
	for _, k := range d.Keys() {
		if _, err := s.Select(k); err != nil {
			t.Fatalf("Select(%q) error = %v", k, err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(out.Quarters) != 2 {
		t.Fatalf("got %d quarters, want 2", len(out.Quarters))
	}
	q1, _ := d.Get("q1")
	if want := Project("q1", q1); !reflect.DeepEqual(out.Quarters[0], want) {
		t.Errorf("decoded q1 differs from projection:\n got %+v\nwant %+v", out.Quarters[0], want)
	}
	if out.Quarters[1].Map()["metric-income"] != "₱253.40 M" {
		t.Errorf("q2 metric-income = %q", out.Quarters[1].Map()["metric-income"])
	}
}

func TestJSONRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"quarters": []`) {
		t.Errorf("empty output = %s", buf.String())
	}
}

func TestXLSXRenderer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sre.xlsx")
	r, err := NewXLSXRenderer(path)
	if err != nil {
		t.Fatalf("NewXLSXRenderer() error = %v", err)
	}
	d := DefaultDataset()
	s := NewSelector(d, r)
	for _, k := range d.Keys() {
		if _, err := s.Select(k); err != nil {
			t.Fatalf("Select(%q) error = %v", k, err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"Q1 2025", "Q2 2025"}) {
		t.Fatalf("sheets = %v", got)
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{"Q1 2025", "A1", "Slot"},
		{"Q1 2025", "C1", "Value"},
		{"Q1 2025", "A2", "metric-income"},
		{"Q1 2025", "C2", "₱158.47 M"},
		{"Q1 2025", "E1", "Income"},
		{"Q1 2025", "E2", "Local Sources"},
		{"Q1 2025", "F2", "88.85"},
		{"Q1 2025", "G2", "#10b981"},
		{"Q1 2025", "E5", "Expenditures"},
		{"Q1 2025", "E6", "General Public Services"},
		{"Q1 2025", "F6", "42.76"},
		{"Q2 2025", "C2", "₱253.40 M"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s!%s) error = %v", tt.sheet, tt.cell, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}
}

func TestXLSXRenderer_NothingRendered(t *testing.T) {
	r, err := NewXLSXRenderer(filepath.Join(t.TempDir(), "empty.xlsx"))
	if err != nil {
		t.Fatalf("NewXLSXRenderer() error = %v", err)
	}
	if err := r.Close(); err == nil {
		t.Error("expected error when closing an empty workbook")
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		p    Projection
		want string
	}{
		{Projection{Quarter: "q1", Period: "Q1 2025"}, "Q1 2025"},
		{Projection{Quarter: "q3"}, "q3"},
		{Projection{Quarter: "q4", Period: "Q4 2025/26"}, "Q4 2025-26"},
		{Projection{Quarter: "x", Period: "Statement of Receipts and Expenditures"}, "Statement of Receipts and Expen"},
	}

	for _, tt := range tests {
		if got := SheetName(tt.p); got != tt.want {
			t.Errorf("SheetName(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSiteRenderer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site", "data")
	r, err := NewSiteRenderer(dir)
	if err != nil {
		t.Fatalf("NewSiteRenderer() error = %v", err)
	}
	d := DefaultDataset()
	s := NewSelector(d, r)
	for _, k := range []QuarterKey{"q1", "q2", "q1"} {
		if _, err := s.Select(k); err != nil {
			t.Fatalf("Select(%q) error = %v", k, err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, SiteFileName("q2")))
	if err != nil {
		t.Fatalf("reading quarter file: %v", err)
	}
	var q2 Projection
	if err := json.Unmarshal(data, &q2); err != nil {
		t.Fatalf("quarter file is not valid JSON: %v", err)
	}
	if q2.Map()["metric-expenditures"] != "₱140.48 M" {
		t.Errorf("q2 metric-expenditures = %q", q2.Map()["metric-expenditures"])
	}

	data, err = os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	var index SiteIndex
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatalf("index is not valid JSON: %v", err)
	}
	want := []SiteIndexEntry{
		{Key: "q1", Period: "Q1 2025", PeriodLabel: "Jan - Mar", File: "sre-q1.json"},
		{Key: "q2", Period: "Q2 2025", PeriodLabel: "Apr - Jun", File: "sre-q2.json"},
	}
	if !reflect.DeepEqual(index.Quarters, want) {
		t.Errorf("index = %+v, want %+v", index.Quarters, want)
	}
}

func TestXLSXRenderer_SharedPeriods(t *testing.T) {
	d := DefaultDataset()
	q1, _ := d.Get("q1")
	q2, _ := d.Get("q2")
	q2.Period = q1.Period
	q3 := q1
	q3.Period = "Sheet1"

	path := filepath.Join(t.TempDir(), "sre.xlsx")
	r, err := NewXLSXRenderer(path)
	if err != nil {
		t.Fatalf("NewXLSXRenderer() error = %v", err)
	}
	for _, p := range []Projection{Project("q1", q1), Project("q2", q2), Project("q3", q3)} {
		if err := r.Render(p); err != nil {
			t.Fatalf("Render(%s) error = %v", p.Quarter, err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{"Q1 2025", "Q1 2025 (2)", "Sheet1 (2)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	tests := []struct {
		sheet, want string
	}{
		{"Q1 2025", "₱158.47 M"},
		{"Q1 2025 (2)", "₱253.40 M"},
		{"Sheet1 (2)", "₱158.47 M"},
	}
	for _, tt := range tests {
		if got, _ := f.GetCellValue(tt.sheet, "C2"); got != tt.want {
			t.Errorf("%s!C2 = %q, want %q", tt.sheet, got, tt.want)
		}
	}
}

func TestXLSXRenderer_UniqueSheetName(t *testing.T) {
	r, err := NewXLSXRenderer(filepath.Join(t.TempDir(), "sre.xlsx"))
	if err != nil {
		t.Fatalf("NewXLSXRenderer() error = %v", err)
	}
	defer r.Abort()

	long := "Statement of Receipts and Expen"
	r.used = map[string]bool{"q1 2025": true, "q1 2025 (2)": true, strings.ToLower(long): true}

	tests := []struct {
		name, want string
	}{
		{"Q2 2025", "Q2 2025"},
		{"Q1 2025", "Q1 2025 (3)"},
		{"q1 2025", "q1 2025 (3)"},
		{long, "Statement of Receipts and E (2)"},
	}
	for _, tt := range tests {
		got := r.uniqueSheetName(tt.name)
		if got != tt.want {
			t.Errorf("uniqueSheetName(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if n := len([]rune(got)); n > 31 {
			t.Errorf("uniqueSheetName(%q) has %d runes", tt.name, n)
		}
	}
}

func TestXLSXRenderer_Abort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sre.xlsx")
	r, err := NewXLSXRenderer(path)
	if err != nil {
		t.Fatalf("NewXLSXRenderer() error = %v", err)
	}
	if err := r.Render(q1Projection(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Abort(); err != nil {
		t.Fatalf("Abort() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("aborted workbook was written: %v", err)
	}
	if err := r.Abort(); err != nil {
		t.Errorf("second Abort() error = %v", err)
	}
	if err := r.Render(q1Projection(t)); err == nil {
		t.Error("Render after Abort should fail")
	}
	if err := r.Close(); err == nil {
		t.Error("Close after Abort should fail")
	}
}
