package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// reportField addresses one numeric line item of a QuarterReport by its
// dotted path, e.g. "income.local.taxRevenue.businessTax".
type reportField struct {
	Path string
	ptr  func(r *QuarterReport) *float64
}

var reportFields = []reportField{
	{"income.local.taxRevenue.realPropertyTax.generalFund", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.RealPropertyTax.GeneralFund }},
	{"income.local.taxRevenue.realPropertyTax.sef", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.RealPropertyTax.SEF }},
	{"income.local.taxRevenue.realPropertyTax.total", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.RealPropertyTax.Total }},
	{"income.local.taxRevenue.businessTax", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.BusinessTax }},
	{"income.local.taxRevenue.otherTaxes", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.OtherTaxes }},
	{"income.local.taxRevenue.total", func(r *QuarterReport) *float64 { return &r.Income.Local.TaxRevenue.Total }},
	{"income.local.nonTaxRevenue.regulatoryFees", func(r *QuarterReport) *float64 { return &r.Income.Local.NonTaxRevenue.RegulatoryFees }},
	{"income.local.nonTaxRevenue.serviceCharges", func(r *QuarterReport) *float64 { return &r.Income.Local.NonTaxRevenue.ServiceCharges }},
	{"income.local.nonTaxRevenue.economicEnterprises", func(r *QuarterReport) *float64 { return &r.Income.Local.NonTaxRevenue.EconomicEnterprises }},
	{"income.local.nonTaxRevenue.otherReceipts", func(r *QuarterReport) *float64 { return &r.Income.Local.NonTaxRevenue.OtherReceipts }},
	{"income.local.nonTaxRevenue.total", func(r *QuarterReport) *float64 { return &r.Income.Local.NonTaxRevenue.Total }},
	{"income.local.total", func(r *QuarterReport) *float64 { return &r.Income.Local.Total }},
	{"income.external.nationalTaxAllotment", func(r *QuarterReport) *float64 { return &r.Income.External.NationalTaxAllotment }},
	{"income.external.otherShares", func(r *QuarterReport) *float64 { return &r.Income.External.OtherShares }},
	{"income.external.interLocalTransfers", func(r *QuarterReport) *float64 { return &r.Income.External.InterLocalTransfers }},
	{"income.external.extraordinaryReceipts", func(r *QuarterReport) *float64 { return &r.Income.External.ExtraordinaryReceipts }},
	{"income.external.total", func(r *QuarterReport) *float64 { return &r.Income.External.Total }},
	{"income.total", func(r *QuarterReport) *float64 { return &r.Income.Total }},
	{"expenditures.generalPublicServices", func(r *QuarterReport) *float64 { return &r.Expenditures.GeneralPublicServices }},
	{"expenditures.socialServices.education", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.Education }},
	{"expenditures.socialServices.health", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.Health }},
	{"expenditures.socialServices.labor", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.Labor }},
	{"expenditures.socialServices.housing", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.Housing }},
	{"expenditures.socialServices.socialWelfare", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.SocialWelfare }},
	{"expenditures.socialServices.total", func(r *QuarterReport) *float64 { return &r.Expenditures.SocialServices.Total }},
	{"expenditures.economicServices", func(r *QuarterReport) *float64 { return &r.Expenditures.EconomicServices }},
	{"expenditures.debtService", func(r *QuarterReport) *float64 { return &r.Expenditures.DebtService }},
	{"expenditures.total", func(r *QuarterReport) *float64 { return &r.Expenditures.Total }},
	{"netOperatingIncome", func(r *QuarterReport) *float64 { return &r.NetOperatingIncome }},
	{"fundBalanceEnd", func(r *QuarterReport) *float64 { return &r.FundBalanceEnd }},
	{"fundBalanceBeginning", func(r *QuarterReport) *float64 { return &r.FundBalanceBeginning }},
}

func setReportField(r *QuarterReport, path, value string) error {
	switch path {
	case "period":
		r.Period = value
		return nil
	case "periodLabel":
		r.PeriodLabel = value
		return nil
	}
	for _, f := range reportFields {
		if f.Path != path {
			continue
		}
		if value == "" {
			*f.ptr(r) = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q for %s", value, path)
		}
		*f.ptr(r) = v
		return nil
	}
	return fmt.Errorf("unknown field %q", path)
}

// ParseXLSX reads an SRE workbook: one sheet per quarter, named after the
// quarter key, with a header row holding "Field" and "Amount" columns.
// Sheets without that header are skipped.
func ParseXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var entries []QuarterEntry
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}

		// Find header row and column indices
		fieldCol, amountCol, dataStartRow := -1, -1, -1
		for i, row := range rows {
			for j, cell := range row {
				switch strings.TrimSpace(cell) {
				case "Field":
					fieldCol = j
				case "Amount":
					amountCol = j
				}
			}
			if fieldCol >= 0 && amountCol >= 0 {
				dataStartRow = i + 1
				break
			}
			fieldCol, amountCol = -1, -1
		}
		if dataStartRow < 0 {
			continue
		}

		var report QuarterReport
		for i := dataStartRow; i < len(rows); i++ {
			row := rows[i]
			if len(row) <= fieldCol {
				continue
			}
			field := strings.TrimSpace(row[fieldCol])
			if field == "" {
				continue
			}
			value := ""
			if len(row) > amountCol {
				value = strings.TrimSpace(row[amountCol])
			}
			if err := setReportField(&report, field, value); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
			}
		}
		entries = append(entries, QuarterEntry{Key: QuarterKey(sheet), QuarterReport: report})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no quarter sheets found in file")
	}
	return NewDataset(entries...)
}

func init() {
	RegisterParser("xlsx", ParserFunc(ParseXLSX), ".xlsx")
}
