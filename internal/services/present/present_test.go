package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashRadar/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUnitByName(t *testing.T) {
	assert.Equal(t, 1.0, UnitByName("INR").Divisor)
	assert.Equal(t, 100_000.0, UnitByName("Lakhs").Divisor)
	assert.Equal(t, 1_000_000.0, UnitByName("Millions").Divisor)
	// unknown unit degrades to INR
	assert.Equal(t, "INR", UnitByName("EUR").Name)
	assert.Equal(t, 2.5, UnitByName("Lakhs").Apply(250_000))
}

func TestDateRangeFiltering(t *testing.T) {
	recs := []models.BankForecastRecord{
		{Date: day(2024, 7, 1)},
		{Date: day(2024, 7, 2)},
		{Date: day(2024, 7, 3)},
	}
	got := FilterBankForecast(recs, DateRange{From: day(2024, 7, 2), To: day(2024, 7, 2)})
	require.Len(t, got, 1)
	assert.Equal(t, day(2024, 7, 2), got[0].Date)

	// open bounds keep everything; disjoint range yields the empty no-data set
	assert.Len(t, FilterBankForecast(recs, DateRange{}), 3)
	assert.Empty(t, FilterBankForecast(recs, DateRange{From: day(2025, 1, 1)}))
}

func TestFilterAccountForecastByAccount(t *testing.T) {
	recs := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "A"},
		{Date: day(2024, 7, 1), AccountID: "B"},
	}
	got := FilterAccountForecast(recs, DateRange{}, "B")
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].AccountID)
}

func TestWithBands(t *testing.T) {
	recs := []models.BankForecastRecord{{Date: day(2024, 7, 1), PredictedOutflow: 1000}}
	got := WithBands(recs, 100, 1.65, 10)
	require.Len(t, got, 1)
	assert.InDelta(t, 1165, got[0].UpperBound, 1e-9)
	assert.InDelta(t, 835, got[0].LowerBound, 1e-9)
	assert.InDelta(t, 1100, got[0].StressOutflow, 1e-9)
}

func TestExecutiveSummaryBranches(t *testing.T) {
	assert.Contains(t, ExecutiveSummary(100, 5), "healthy")
	assert.Contains(t, ExecutiveSummary(100, 25), "elevated funding risk")
	assert.Contains(t, ExecutiveSummary(-100, 5), "close monitoring")
	assert.Contains(t, ExecutiveSummary(100, 15), "close monitoring")
}
