package internal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the accepted gap between a total and the sum of its
// line items. Source figures are rounded independently, so one centavo of
// a million either way is normal.
const DefaultTolerance = 0.01

// Discrepancy is a total that does not match the sum of its line items.
type Discrepancy struct {
	Quarter  QuarterKey `json:"quarter"`
	Total    string     `json:"total"`
	Reported float64    `json:"reported"`
	Computed float64    `json:"computed"`
}

func (d Discrepancy) Error() string {
	return fmt.Sprintf("%s: %s is %.2f but line items sum to %.2f", d.Quarter, d.Total, d.Reported, d.Computed)
}

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

// CheckTotals compares every total of r with the sum of its line items and
// returns the ones that differ by more than tolerance.
func CheckTotals(key QuarterKey, r QuarterReport, tolerance float64) []Discrepancy {
	inc := r.Income
	exp := r.Expenditures
	rpt := inc.Local.TaxRevenue.RealPropertyTax
	tax := inc.Local.TaxRevenue
	nonTax := inc.Local.NonTaxRevenue
	ext := inc.External
	social := exp.SocialServices

	checks := []struct {
		name     string
		reported float64
		computed decimal.Decimal
	}{
		{"income.local.taxRevenue.realPropertyTax.total", rpt.Total, sum(rpt.GeneralFund, rpt.SEF)},
		{"income.local.taxRevenue.total", tax.Total, sum(rpt.Total, tax.BusinessTax, tax.OtherTaxes)},
		{"income.local.nonTaxRevenue.total", nonTax.Total, sum(nonTax.RegulatoryFees, nonTax.ServiceCharges, nonTax.EconomicEnterprises, nonTax.OtherReceipts)},
		{"income.local.total", inc.Local.Total, sum(tax.Total, nonTax.Total)},
		{"income.external.total", ext.Total, sum(ext.NationalTaxAllotment, ext.OtherShares, ext.InterLocalTransfers, ext.ExtraordinaryReceipts)},
		{"income.total", inc.Total, sum(inc.Local.Total, ext.Total)},
		{"expenditures.socialServices.total", social.Total, sum(social.Education, social.Health, social.Labor, social.Housing, social.SocialWelfare)},
		{"expenditures.total", exp.Total, sum(exp.GeneralPublicServices, social.Total, exp.EconomicServices, exp.DebtService)},
		{"netOperatingIncome", r.NetOperatingIncome, sum(inc.Total).Sub(sum(exp.Total))},
	}

	limit := decimal.NewFromFloat(tolerance)
	var out []Discrepancy
	for _, c := range checks {
		if sum(c.reported).Sub(c.computed).Abs().GreaterThan(limit) {
			out = append(out, Discrepancy{
				Quarter:  key,
				Total:    c.name,
				Reported: c.reported,
				Computed: c.computed.InexactFloat64(),
			})
		}
	}
	return out
}
