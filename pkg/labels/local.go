package labels

import (
	"context"
	"fmt"
	"math"
)

// Local formats labels deterministically, with no external calls. It is both
// the mock-mode engine and the fallback when the remote service fails.
type Local struct{}

var _ Engine = Local{}

// DifferenceLabel formats the absolute delta with magnitude suffixes and a
// percentage secondary line, e.g. "€28.0K savings" / "(62% reduction)".
func (Local) DifferenceLabel(_ context.Context, req DifferenceRequest) (DifferenceLabel, error) {
	diff := math.Abs(req.StartValue - req.EndValue)

	pct := 0.0
	if req.StartValue != 0 {
		pct = math.Abs((req.StartValue-req.EndValue)/req.StartValue) * 100
	}

	currency := req.Currency
	if currency == "" {
		currency = "€"
	}
	var amount string
	switch {
	case diff >= 1_000_000:
		amount = fmt.Sprintf("%s%.1fM", currency, diff/1_000_000)
	case diff >= 1_000:
		amount = fmt.Sprintf("%s%.1fK", currency, diff/1_000)
	default:
		amount = fmt.Sprintf("%s%.0f", currency, diff)
	}

	var action, pctWord string
	switch req.Direction {
	case DirectionReduction:
		action, pctWord = "savings", "reduction"
	case DirectionIncrease:
		action, pctWord = "increase", "increase"
	default:
		action, pctWord = "change", "change"
	}

	return DifferenceLabel{
		Primary:   fmt.Sprintf("%s %s", amount, action),
		Secondary: fmt.Sprintf("(%.0f%% %s)", pct, pctWord),
	}, nil
}

// CAGRLabel formats "N-Year CAGR: +X%". Years come from the series length;
// positive rates carry an explicit plus sign.
func (Local) CAGRLabel(_ context.Context, req CAGRRequest) (string, error) {
	years := len(req.Series) - 1
	if years < 1 {
		years = 1
	}
	pct := req.Rate * 100
	sign := ""
	if pct >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%d-Year CAGR: %s%.0f%%", years, sign, pct), nil
}
