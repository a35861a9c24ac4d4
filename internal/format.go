package internal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PesoSign is the currency glyph prefixed to every formatted amount.
const PesoSign = "₱"

const (
	millionsSuffix = " M"
	zeroMillions   = PesoSign + "0.00" + millionsSuffix
	notAvailable   = "N/A"
)

// groupingPrinter renders the integer part with "," every three digits.
var groupingPrinter = message.NewPrinter(language.English)

// The transparency page shows millions without grouping and falls back to
// "₱0.00 M". The grouped formatters put the sign in front of the glyph and
// fall back to "N/A".

// FormatPesoMillions formats a value in millions as "₱123.45 M".
// NaN and infinities render as "₱0.00 M". Rounding is half-up to 2 decimals
// and there are no thousands separators.
func FormatPesoMillions(value float64) string {
	if !isFinite(value) {
		return zeroMillions
	}
	return PesoSign + roundHalfUp(value, 2).StringFixed(2) + millionsSuffix
}

// FormatPesoMillionsValue is FormatPesoMillions for loosely typed input.
// nil and non-numeric values render as "₱0.00 M".
func FormatPesoMillionsValue(value any) string {
	v, ok := toNumber(value)
	if !ok {
		return zeroMillions
	}
	return FormatPesoMillions(v)
}

// FormatPeso formats a full peso amount as "₱1,234.56", or "-₱1,234.56"
// for negative values. NaN and infinities render as "N/A".
func FormatPeso(value float64) string {
	if !isFinite(value) {
		return notAvailable
	}
	return signedPeso(value)
}

// FormatPesoValue is FormatPeso for loosely typed input.
func FormatPesoValue(value any) string {
	v, ok := toNumber(value)
	if !ok {
		return notAvailable
	}
	return FormatPeso(v)
}

// FormatPesoMillionsGrouped formats a value in millions like FormatPeso
// with a " M" suffix: "₱1,234.50 M", "-₱12.00 M". Invalid input renders "N/A".
func FormatPesoMillionsGrouped(value float64) string {
	if !isFinite(value) {
		return notAvailable
	}
	if value == 0 {
		return zeroMillions
	}
	return signedPeso(value) + millionsSuffix
}

// FormatPesoMillionsGroupedValue is FormatPesoMillionsGrouped for loosely typed input.
func FormatPesoMillionsGroupedValue(value any) string {
	v, ok := toNumber(value)
	if !ok {
		return notAvailable
	}
	return FormatPesoMillionsGrouped(v)
}

func signedPeso(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := decimal.NewFromFloat(math.Abs(value)).Round(2)
	grouped := groupingPrinter.Sprint(number.Decimal(abs.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return sign + PesoSign + grouped
}

// roundHalfUp rounds v to the given decimal places with ties towards +Inf,
// i.e. floor(v*10^places + 0.5) / 10^places computed in decimal.
func roundHalfUp(v float64, places int32) decimal.Decimal {
	shift := decimal.New(1, places)
	return decimal.NewFromFloat(v).Mul(shift).Add(decimal.NewFromFloat(0.5)).Floor().Div(shift)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// toNumber coerces Go numeric types, numeric strings and json.Number.
func toNumber(value any) (float64, bool) {
	var v float64
	switch n := value.(type) {
	case nil:
		return 0, false
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case *float64:
		if n == nil {
			return 0, false
		}
		v = *n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	return v, isFinite(v)
}
