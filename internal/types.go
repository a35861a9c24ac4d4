package internal

// QuarterKey identifies a fiscal quarter in a dataset, e.g. "q1".
type QuarterKey string

// All figures below are in millions of pesos, pre-rounded to 2 decimals.

type RealPropertyTax struct {
	GeneralFund float64 `json:"generalFund" yaml:"generalFund"`
	SEF         float64 `json:"sef" yaml:"sef"` // Special Education Fund share
	Total       float64 `json:"total" yaml:"total"`
}

type TaxRevenue struct {
	RealPropertyTax RealPropertyTax `json:"realPropertyTax" yaml:"realPropertyTax"`
	BusinessTax     float64         `json:"businessTax" yaml:"businessTax"`
	OtherTaxes      float64         `json:"otherTaxes" yaml:"otherTaxes"`
	Total           float64         `json:"total" yaml:"total"`
}

type NonTaxRevenue struct {
	RegulatoryFees      float64 `json:"regulatoryFees" yaml:"regulatoryFees"`
	ServiceCharges      float64 `json:"serviceCharges" yaml:"serviceCharges"`
	EconomicEnterprises float64 `json:"economicEnterprises" yaml:"economicEnterprises"`
	OtherReceipts       float64 `json:"otherReceipts" yaml:"otherReceipts"`
	Total               float64 `json:"total" yaml:"total"`
}

// LocalIncome is revenue raised directly by the municipality.
type LocalIncome struct {
	TaxRevenue    TaxRevenue    `json:"taxRevenue" yaml:"taxRevenue"`
	NonTaxRevenue NonTaxRevenue `json:"nonTaxRevenue" yaml:"nonTaxRevenue"`
	Total         float64       `json:"total" yaml:"total"`
}

// ExternalIncome is transfers from national government or other jurisdictions.
type ExternalIncome struct {
	NationalTaxAllotment  float64 `json:"nationalTaxAllotment" yaml:"nationalTaxAllotment"`
	OtherShares           float64 `json:"otherShares" yaml:"otherShares"`
	InterLocalTransfers   float64 `json:"interLocalTransfers" yaml:"interLocalTransfers"`
	ExtraordinaryReceipts float64 `json:"extraordinaryReceipts" yaml:"extraordinaryReceipts"`
	Total                 float64 `json:"total" yaml:"total"`
}

type Income struct {
	Local    LocalIncome    `json:"local" yaml:"local"`
	External ExternalIncome `json:"external" yaml:"external"`
	Total    float64        `json:"total" yaml:"total"`
}

type SocialServices struct {
	Education     float64 `json:"education" yaml:"education"`
	Health        float64 `json:"health" yaml:"health"`
	Labor         float64 `json:"labor" yaml:"labor"`
	Housing       float64 `json:"housing" yaml:"housing"`
	SocialWelfare float64 `json:"socialWelfare" yaml:"socialWelfare"`
	Total         float64 `json:"total" yaml:"total"`
}

type Expenditures struct {
	GeneralPublicServices float64        `json:"generalPublicServices" yaml:"generalPublicServices"`
	SocialServices        SocialServices `json:"socialServices" yaml:"socialServices"`
	EconomicServices      float64        `json:"economicServices" yaml:"economicServices"`
	DebtService           float64        `json:"debtService" yaml:"debtService"`
	Total                 float64        `json:"total" yaml:"total"`
}

// QuarterReport is the Statement of Receipts and Expenditures for one quarter.
// Reports are treated as immutable once loaded.
type QuarterReport struct {
	Period               string       `json:"period" yaml:"period"`
	PeriodLabel          string       `json:"periodLabel" yaml:"periodLabel"`
	Income               Income       `json:"income" yaml:"income"`
	Expenditures         Expenditures `json:"expenditures" yaml:"expenditures"`
	NetOperatingIncome   float64      `json:"netOperatingIncome" yaml:"netOperatingIncome"`
	FundBalanceEnd       float64      `json:"fundBalanceEnd" yaml:"fundBalanceEnd"`
	FundBalanceBeginning float64      `json:"fundBalanceBeginning" yaml:"fundBalanceBeginning"`
}
