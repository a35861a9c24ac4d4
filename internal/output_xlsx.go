package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXRenderer writes one sheet per rendered quarter, with the slots, the
// chart data and a doughnut chart for each split. The workbook is saved on Close.
type XLSXRenderer struct {
	path   string
	file   *excelize.File
	sheets int
	bold   int
	closed bool

	// sheet names in use, lower-cased since Excel compares them case-insensitively
	used map[string]bool
}

func NewXLSXRenderer(path string) (*XLSXRenderer, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating style: %w", err)
	}
	return &XLSXRenderer{
		path: path,
		file: f,
		bold: bold,
		used: map[string]bool{strings.ToLower(defaultSheet): true},
	}, nil
}

func (r *XLSXRenderer) Render(p Projection) error {
	if r.closed {
		return fmt.Errorf("workbook already closed")
	}
	sheet := r.uniqueSheetName(SheetName(p))
	idx, err := r.file.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if r.sheets == 0 {
		r.file.SetActiveSheet(idx)
	}
	r.sheets++
	r.used[strings.ToLower(sheet)] = true

	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return r.file.SetCellValue(sheet, cell, value)
	}

	for col, h := range []string{"Slot", "Label", "Value"} {
		if err := set(col+1, 1, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, s := range p.Slots {
		row := i + 2
		for col, v := range []string{s.ID, s.Label, s.Value} {
			if err := set(col+1, row, v); err != nil {
				return fmt.Errorf("writing slot %s: %w", s.ID, err)
			}
		}
	}

	// Chart data block in columns E:G (label, value, color), income first, then expenditures.
	incomeStart := 2
	expStart := incomeStart + len(p.IncomeChart.Values) + 2
	if err := r.writeSeries(sheet, "Income", incomeStart, p.IncomeChart); err != nil {
		return err
	}
	if err := r.writeSeries(sheet, "Expenditures", expStart, p.ExpenditureChart); err != nil {
		return err
	}

	if err := r.file.SetCellStyle(sheet, "A1", "C1", r.bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := r.file.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := r.file.SetColWidth(sheet, "B", "B", 48); err != nil {
		return err
	}
	if err := r.file.SetColWidth(sheet, "C", "C", 36); err != nil {
		return err
	}
	if err := r.file.SetColWidth(sheet, "E", "E", 26); err != nil {
		return err
	}

	if err := r.addDoughnut(sheet, "H2", "Income by Source", incomeStart, len(p.IncomeChart.Values)); err != nil {
		return err
	}
	return r.addDoughnut(sheet, "H20", "Expenditures by Sector", expStart, len(p.ExpenditureChart.Values))
}

func (r *XLSXRenderer) writeSeries(sheet, title string, start int, c ChartData) error {
	header, _ := excelize.CoordinatesToCellName(5, start-1)
	if err := r.file.SetCellValue(sheet, header, title); err != nil {
		return fmt.Errorf("writing chart data: %w", err)
	}
	if err := r.file.SetCellStyle(sheet, header, header, r.bold); err != nil {
		return fmt.Errorf("styling chart data: %w", err)
	}
	for i, label := range c.Labels {
		labelCell, _ := excelize.CoordinatesToCellName(5, start+i)
		valueCell, _ := excelize.CoordinatesToCellName(6, start+i)
		if err := r.file.SetCellValue(sheet, labelCell, label); err != nil {
			return fmt.Errorf("writing chart data: %w", err)
		}
		if i < len(c.Values) {
			if err := r.file.SetCellValue(sheet, valueCell, c.Values[i]); err != nil {
				return fmt.Errorf("writing chart data: %w", err)
			}
		}
		if i < len(c.Colors) {
			colorCell, _ := excelize.CoordinatesToCellName(7, start+i)
			if err := r.file.SetCellValue(sheet, colorCell, c.Colors[i]); err != nil {
				return fmt.Errorf("writing chart data: %w", err)
			}
		}
	}
	return nil
}

func (r *XLSXRenderer) addDoughnut(sheet, anchor, title string, start, n int) error {
	ref := fmt.Sprintf("'%s'!", sheet)
	chart := &excelize.Chart{
		Type: excelize.Doughnut,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s$E$%d", ref, start-1),
			Categories: fmt.Sprintf("%s$E$%d:$E$%d", ref, start, start+n-1),
			Values:     fmt.Sprintf("%s$F$%d:$F$%d", ref, start, start+n-1),
		}},
		Title:    []excelize.RichTextRun{{Text: title}},
		HoleSize: 60,
	}
	if err := r.file.AddChart(sheet, anchor, chart); err != nil {
		return fmt.Errorf("adding chart %q: %w", title, err)
	}
	return nil
}

// Close drops the default sheet and saves the workbook.
func (r *XLSXRenderer) Close() error {
	if r.closed {
		return fmt.Errorf("workbook already closed")
	}
	r.closed = true
	defer r.file.Close()
	if r.sheets == 0 {
		return fmt.Errorf("no quarters rendered")
	}
	if err := r.file.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	if err := r.file.SaveAs(r.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// Abort releases the workbook without saving it. It is a no-op after Close.
func (r *XLSXRenderer) Abort() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// uniqueSheetName returns name, or name with a " (n)" suffix when a sheet
// of that name already exists. The result stays within 31 runes.
func (r *XLSXRenderer) uniqueSheetName(name string) string {
	if !r.used[strings.ToLower(name)] {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if limit := maxSheetNameLen - len(suffix); len(base) > limit {
			base = base[:limit]
		}
		candidate := string(base) + suffix
		if !r.used[strings.ToLower(candidate)] {
			return candidate
		}
	}
}

// SheetName is the worksheet name used for a projection: the period, or
// the quarter key, cleaned of characters Excel rejects and cut to 31 runes.
func SheetName(p Projection) string {
	name := strings.TrimSpace(p.Period)
	if name == "" {
		name = string(p.Quarter)
	}
	name = invalidSheetChars.Replace(name)
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}

const (
	defaultSheet    = "Sheet1"
	maxSheetNameLen = 31
)

var invalidSheetChars = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")", "'", "")
