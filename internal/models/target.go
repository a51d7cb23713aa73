package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CalculateTarget derives the target price from an entry, a stop loss and a
// "risk:reward" ratio: (entry - stop) * reward + entry, with two decimals.
// It returns "" when entry or stop is zero, the ratio is blank, or the
// reward side of the ratio is not a number.
func CalculateTarget(entryPrice, stopLoss decimal.Decimal, targetRatio TargetRatio) string {
	if entryPrice.IsZero() || stopLoss.IsZero() || targetRatio == "" {
		return ""
	}
	factor, ok := targetRatio.Factor()
	if !ok {
		return ""
	}
	return entryPrice.Sub(stopLoss).Mul(factor).Add(entryPrice).StringFixed(2)
}

// DeriveTarget is CalculateTarget over raw form input. Blank or non-numeric
// prices yield "".
func DeriveTarget(entryPrice, stopLoss, targetRatio string) string {
	entry, err := decimal.NewFromString(strings.TrimSpace(entryPrice))
	if err != nil {
		return ""
	}
	stop, err := decimal.NewFromString(strings.TrimSpace(stopLoss))
	if err != nil {
		return ""
	}
	return CalculateTarget(entry, stop, TargetRatio(strings.TrimSpace(targetRatio)))
}

// Factor is the reward side of the ratio, e.g. 3 for "1:3".
func (r TargetRatio) Factor() (decimal.Decimal, bool) {
	_, reward, found := strings.Cut(string(r), ":")
	if !found {
		return decimal.Zero, false
	}
	reward, _, _ = strings.Cut(reward, ":")
	factor, err := decimal.NewFromString(strings.TrimSpace(reward))
	if err != nil {
		return decimal.Zero, false
	}
	return factor, true
}
