package model

import (
	"fmt"
	"strings"
	"time"
)

// Period is the granularity used to bucket sales for revenue reports.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod accepts the query value case-insensitively. An empty value means daily.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Key truncates t (converted to UTC) to the bucket label for p.
// Keys of one period sort lexicographically in chronological order.
//
//	daily   2024-01-31
//	weekly  2024-W05 (ISO 8601 week-year)
//	monthly 2024-01
//	yearly  2024
func (p Period) Key(t time.Time) string {
	t = t.UTC()
	switch p {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case PeriodMonthly:
		return t.Format("2006-01")
	case PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
