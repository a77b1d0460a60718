package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLedgerDateISO(t *testing.T) {
	got, ok := ParseLedgerDate("2024-06-03")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseLedgerDateDayFirst(t *testing.T) {
	got, ok := ParseLedgerDate("03-06-2024")
	require.True(t, ok)
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 3, got.Day())
}

func TestParseLedgerDateRFC3339NormalizedToMidnight(t *testing.T) {
	got, ok := ParseLedgerDate("2024-06-03T15:04:05Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseLedgerDateInvalid(t *testing.T) {
	_, ok := ParseLedgerDate("not-a-date")
	assert.False(t, ok)
	_, ok = ParseLedgerDate("")
	assert.False(t, ok)

	def := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, def, ParseLedgerDateDefault("garbage", def))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("5", 9))
	assert.Equal(t, 9, ParseIntDefault("", 9))
	assert.Equal(t, 9, ParseIntDefault("x", 9))
}
