package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{
		"":        PeriodDaily,
		"daily":   PeriodDaily,
		"Weekly":  PeriodWeekly,
		"MONTHLY": PeriodMonthly,
		" yearly": PeriodYearly,
	} {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePeriod("hourly")
	assert.Error(t, err)
}

func TestPeriod_Key(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-15", PeriodDaily.Key(ts))
	assert.Equal(t, "2024-W11", PeriodWeekly.Key(ts))
	assert.Equal(t, "2024-03", PeriodMonthly.Key(ts))
	assert.Equal(t, "2024", PeriodYearly.Key(ts))
}

func TestPeriod_Key_NormalisesToUTC(t *testing.T) {
	// 2024-01-02 01:00 at UTC+7 is still 2024-01-01 in UTC.
	ts := time.Date(2024, 1, 2, 1, 0, 0, 0, time.FixedZone("WIB", 7*60*60))

	assert.Equal(t, "2024-01-01", PeriodDaily.Key(ts))
}

func TestPeriod_Key_WeekDoesNotCollideAcrossYears(t *testing.T) {
	// 2020-12-31 belongs to ISO week 53 of 2020, 2021-01-04 to week 1 of 2021,
	// and 2024-12-30 to week 1 of 2025.
	assert.Equal(t, "2020-W53", PeriodWeekly.Key(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2021-W01", PeriodWeekly.Key(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-W01", PeriodWeekly.Key(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
}

func TestProduct_IsLowStock(t *testing.T) {
	p := NewProduct("Echo Dot", 5, nil, nil)
	assert.False(t, p.IsLowStock(5))

	p.Stock = 4
	assert.True(t, p.IsLowStock(5))
}

func TestStockEvent_RoutingKey(t *testing.T) {
	assert.Equal(t, "stock.sale_recorded", StockEvent{Type: EventSaleRecorded}.RoutingKey())
}
