// Package metrics derives return figures from an account's sample history.
package metrics

import (
	"math"

	"github.com/paulo-zhang/AccountMonitor/internal/model"
)

const daysPerYear = 365.25

// Compute derives the actual and annualized return of latest relative to
// first (the account's baseline). Returns are unavailable when there is no
// baseline, no time has elapsed, or the baseline value is zero.
//
// The annualized figure compounds the observed change geometrically:
// (1+actual)^(365.25/days)-1, over the same fractional-day span as the
// actual-return denominator.
func Compute(account string, first, latest *model.Sample) model.ReturnMetric {
	m := model.ReturnMetric{Account: account}
	if latest != nil {
		m.AsOf = latest.Time
	}
	if first == nil || latest == nil {
		return m
	}
	elapsed := latest.Time.Sub(first.Time)
	if elapsed <= 0 || !first.Value.IsPositive() {
		return m
	}

	actual := latest.Value.Sub(first.Value).Div(first.Value).InexactFloat64()
	days := elapsed.Hours() / 24

	m.Actual = actual
	m.Annualized = math.Pow(1+actual, daysPerYear/days) - 1
	m.Available = true
	return m
}
