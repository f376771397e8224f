package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulo-zhang/AccountMonitor/internal/model"
)

func sampleAt(ts time.Time, value string) *model.Sample {
	return &model.Sample{
		Account: "main",
		Time:    ts,
		Value:   decimal.RequireFromString(value),
	}
}

func TestComputeHalfYear(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) // 182 days later

	m := Compute("main", sampleAt(t0, "1000"), sampleAt(t1, "1100"))
	require.True(t, m.Available)
	assert.Equal(t, t1, m.AsOf)
	assert.InDelta(t, 0.10, m.Actual, 1e-12)

	days := t1.Sub(t0).Hours() / 24
	want := math.Pow(1.10, 365.25/days) - 1
	assert.InDelta(t, want, m.Annualized, 1e-12)
	assert.InDelta(t, 0.2108, m.Annualized, 1e-3)
}

func TestComputeZeroBaseline(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := Compute("main", sampleAt(t0, "0"), sampleAt(t0.AddDate(0, 1, 0), "500"))
	assert.False(t, m.Available)
}

func TestComputeZeroElapsed(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Single-sample case: first and latest are the same observation.
	m := Compute("main", sampleAt(t0, "1000"), sampleAt(t0, "1000"))
	assert.False(t, m.Available)
}

func TestComputeNoHistory(t *testing.T) {
	t.Parallel()

	m := Compute("main", nil, nil)
	assert.False(t, m.Available)
	assert.Equal(t, "main", m.Account)
}

func TestComputeLossAnnualizes(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(1, 0, 0)
	m := Compute("main", sampleAt(t0, "1000"), sampleAt(t1, "900"))
	require.True(t, m.Available)
	assert.InDelta(t, -0.10, m.Actual, 1e-12)
	assert.Less(t, m.Annualized, 0.0)
}
