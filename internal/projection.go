package internal

// Slot is one named output value, bound by the presentation layer to the
// UI element with the same ID.
type Slot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Bar is a percentage-width progress bar.
type Bar struct {
	ID      string  `json:"id"`
	Percent float64 `json:"percent"`
}

// ChartData is the data of one doughnut chart.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// Sum adds up the chart values.
func (c ChartData) Sum() float64 {
	return sum(c.Values...).InexactFloat64()
}

// Projection is everything the presentation layer needs for one quarter.
type Projection struct {
	Quarter          QuarterKey `json:"quarter"`
	Period           string     `json:"period"`
	PeriodLabel      string     `json:"periodLabel"`
	Slots            []Slot     `json:"slots"`
	Bars             []Bar      `json:"bars"`
	IncomeChart      ChartData  `json:"incomeChart"`
	ExpenditureChart ChartData  `json:"expenditureChart"`
}

// Map returns slot ID to value.
func (p Projection) Map() map[string]string {
	m := make(map[string]string, len(p.Slots))
	for _, s := range p.Slots {
		m[s.ID] = s.Value
	}
	return m
}

// Slot looks up a slot by ID.
func (p Projection) Slot(id string) (Slot, bool) {
	for _, s := range p.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// Bar looks up a bar by ID.
func (p Projection) Bar(id string) (Bar, bool) {
	for _, b := range p.Bars {
		if b.ID == id {
			return b, true
		}
	}
	return Bar{}, false
}

// Chart colors and labels as shown on the transparency page.
var (
	IncomeChartLabels      = []string{"Local Sources", "External Sources"}
	IncomeChartColors      = []string{"#10b981", "#0ea5e9"}
	ExpenditureChartLabels = []string{"General Public Services", "Social Services", "Economic Services", "Debt Service"}
	ExpenditureChartColors = []string{"#3b82f6", "#8b5cf6", "#f59e0b", "#ef4444"}
)

// Project derives the slots, bars and chart data of a quarter. Percentages
// use the quarter's own totals as denominators.
func Project(key QuarterKey, r QuarterReport) Projection {
	inc := r.Income
	exp := r.Expenditures

	localPct := Percentage(inc.Local.Total, inc.Total)
	externalPct := Percentage(inc.External.Total, inc.Total)
	gpsPct := Percentage(exp.GeneralPublicServices, exp.Total)
	socialPct := Percentage(exp.SocialServices.Total, exp.Total)
	economicPct := Percentage(exp.EconomicServices, exp.Total)
	debtPct := Percentage(exp.DebtService, exp.Total)

	amount := func(id, label string, v float64) Slot {
		return Slot{ID: id, Label: label, Value: FormatPesoMillions(v)}
	}
	pct := func(id, label string, p float64) Slot {
		return Slot{ID: id, Label: label, Value: FormatPercent(p)}
	}

	slots := []Slot{
		amount("metric-income", "Total Income", inc.Total),
		amount("metric-expenditures", "Total Expenditures", exp.Total),
		amount("metric-net", "Net Operating Income", r.NetOperatingIncome),
		amount("metric-balance", "Fund Balance, End", r.FundBalanceEnd),
		amount("metric-balance-beginning", "Fund Balance, Beginning", r.FundBalanceBeginning),
		{ID: "metric-income-source", Label: "Income Period", Value: r.Period},
		{ID: "metric-expenditures-source", Label: "Expenditures Period", Value: r.Period},

		{ID: "income-period-text", Label: "Income Breakdown", Value: "Breakdown of municipal revenue for " + r.Period},
		amount("income-local-amount", "Local Sources", inc.Local.Total),
		pct("income-local-pct", "Local Sources Share", localPct),
		amount("income-tax-revenue", "Tax Revenue", inc.Local.TaxRevenue.Total),
		amount("income-rpt", "Real Property Tax", inc.Local.TaxRevenue.RealPropertyTax.Total),
		amount("income-rpt-general-fund", "Real Property Tax, General Fund", inc.Local.TaxRevenue.RealPropertyTax.GeneralFund),
		amount("income-rpt-sef", "Real Property Tax, SEF", inc.Local.TaxRevenue.RealPropertyTax.SEF),
		amount("income-business-tax", "Business Tax", inc.Local.TaxRevenue.BusinessTax),
		amount("income-other-taxes", "Other Taxes", inc.Local.TaxRevenue.OtherTaxes),
		amount("income-non-tax", "Non-Tax Revenue", inc.Local.NonTaxRevenue.Total),
		amount("income-regulatory-fees", "Regulatory Fees", inc.Local.NonTaxRevenue.RegulatoryFees),
		amount("income-service-charges", "Service/User Charges", inc.Local.NonTaxRevenue.ServiceCharges),
		amount("income-economic-enterprises", "Receipts from Economic Enterprises", inc.Local.NonTaxRevenue.EconomicEnterprises),
		amount("income-other-receipts", "Other Receipts", inc.Local.NonTaxRevenue.OtherReceipts),
		amount("income-external-amount", "External Sources", inc.External.Total),
		pct("income-external-pct", "External Sources Share", externalPct),
		amount("income-nta", "National Tax Allotment", inc.External.NationalTaxAllotment),
		amount("income-other-shares", "Other Shares from National Tax Collections", inc.External.OtherShares),
		amount("income-inter-local", "Inter-Local Transfers", inc.External.InterLocalTransfers),
		amount("income-extraordinary", "Extraordinary Receipts/Grants/Donations/Aids", inc.External.ExtraordinaryReceipts),

		amount("exp-gps-amount", "General Public Services", exp.GeneralPublicServices),
		pct("exp-gps-pct", "General Public Services Share", gpsPct),
		amount("exp-social-amount", "Social Services", exp.SocialServices.Total),
		pct("exp-social-pct", "Social Services Share", socialPct),
		amount("exp-education", "Education, Culture, Sports & Manpower Development", exp.SocialServices.Education),
		amount("exp-health", "Health, Nutrition & Population Control", exp.SocialServices.Health),
		amount("exp-labor", "Labor & Employment", exp.SocialServices.Labor),
		amount("exp-housing", "Housing & Community Development", exp.SocialServices.Housing),
		amount("exp-welfare", "Social Services & Social Welfare", exp.SocialServices.SocialWelfare),
		amount("exp-economic-amount", "Economic Services", exp.EconomicServices),
		pct("exp-economic-pct", "Economic Services Share", economicPct),
		amount("exp-debt-amount", "Debt Service", exp.DebtService),
		pct("exp-debt-pct", "Debt Service Share", debtPct),
	}

	return Projection{
		Quarter:     key,
		Period:      r.Period,
		PeriodLabel: r.PeriodLabel,
		Slots:       slots,
		Bars: []Bar{
			{ID: "exp-gps-bar", Percent: gpsPct},
			{ID: "exp-social-bar", Percent: socialPct},
			{ID: "exp-economic-bar", Percent: economicPct},
			{ID: "exp-debt-bar", Percent: debtPct},
		},
		IncomeChart: ChartData{
			Labels: append([]string(nil), IncomeChartLabels...),
			Values: []float64{inc.Local.Total, inc.External.Total},
			Colors: append([]string(nil), IncomeChartColors...),
		},
		ExpenditureChart: ChartData{
			Labels: append([]string(nil), ExpenditureChartLabels...),
			Values: []float64{exp.GeneralPublicServices, exp.SocialServices.Total, exp.EconomicServices, exp.DebtService},
			Colors: append([]string(nil), ExpenditureChartColors...),
		},
	}
}
