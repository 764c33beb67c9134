package firestore

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
)

// Money amounts are stored as decimal strings to avoid float drift in
// document fields.

func encDecimal(d decimal.Decimal) string {
	return d.String()
}

func decDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, goerr.Wrap(err, "invalid decimal value", goerr.V("value", s))
	}
	return d, nil
}
