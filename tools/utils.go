package tools

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

func FmtJSONIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

// FmtDecimal renders v rounded half away from zero to the given decimal places.
func FmtDecimal(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.NewFromFloat(0).String()
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FmtPercent renders part/whole as a percentage with one decimal place.
func FmtPercent(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(whole)), 1).
		StringFixed(1) + "%"
}

// ParseDecimal parses a plain or exponent decimal string, surrounding spaces allowed.
func ParseDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid decimal %q", value)
	}
	return d, nil
}
