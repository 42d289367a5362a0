// Package finance contains the finance reporting use cases: date range
// resolution, statistics aggregation and trend aggregation.
package finance

import (
	"time"

	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

// RangeToken selects a reporting window.
type RangeToken string

const (
	Range7Days  RangeToken = "7d"
	Range30Days RangeToken = "30d"
	Range90Days RangeToken = "90d"
	RangeAll    RangeToken = "all"
	RangeCustom RangeToken = "custom"
)

// presetDays maps preset tokens to their window length in days.
var presetDays = map[RangeToken]int{
	Range7Days:  7,
	Range30Days: 30,
	Range90Days: 90,
}

// ParseRangeToken parses a range token string. An empty token defaults to
// the 30-day window, matching the dashboard's initial state.
func ParseRangeToken(s string) (RangeToken, error) {
	if s == "" {
		return Range30Days, nil
	}
	token := RangeToken(s)
	switch token {
	case Range7Days, Range30Days, Range90Days, RangeAll, RangeCustom:
		return token, nil
	}
	return "", domainerror.NewFinanceError(
		domainerror.ErrCodeInvalidRangeToken,
		"range must be: 7d, 30d, 90d, all, or custom",
		domainerror.ErrInvalidRangeToken,
	)
}

// DateInterval is a half-open [Start, End) time window. All interval math in
// this package is done in UTC; mixing timezones is the primary source of
// off-by-one-day bugs in calendar bucketing.
type DateInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the half-open interval.
func (i DateInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval.
func (i DateInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// ResolvePeriod turns a range token plus optional custom bounds into the
// current interval and the immediately preceding interval of equal length.
// It is the single source of truth for date math: stats, trends, the
// transaction table and both exporters all resolve their window here.
//
// For RangeAll the previous interval is nil; no comparison is meaningful
// against an unbounded window. The function is pure: now is passed in.
func ResolvePeriod(token RangeToken, customStart, customEnd *time.Time, now time.Time) (DateInterval, *DateInterval, error) {
	now = now.UTC()

	if days, ok := presetDays[token]; ok {
		length := time.Duration(days) * 24 * time.Hour
		current := DateInterval{Start: now.Add(-length), End: now}
		previous := &DateInterval{Start: current.Start.Add(-length), End: current.Start}
		return current, previous, nil
	}

	switch token {
	case RangeAll:
		return DateInterval{Start: time.Unix(0, 0).UTC(), End: now}, nil, nil

	case RangeCustom:
		if customStart == nil || customEnd == nil {
			return DateInterval{}, nil, domainerror.NewFinanceError(
				domainerror.ErrCodeMissingCustomBounds,
				"custom range requires start_date and end_date",
				domainerror.ErrMissingCustomBounds,
			)
		}
		start := customStart.UTC()
		end := customEnd.UTC()
		if start.After(end) {
			return DateInterval{}, nil, domainerror.NewFinanceError(
				domainerror.ErrCodeInvalidDateRange,
				"start_date must not be after end_date",
				domainerror.ErrInvalidDateRange,
			)
		}
		current := DateInterval{Start: start, End: end}
		length := current.Duration()
		previous := &DateInterval{Start: start.Add(-length), End: start}
		return current, previous, nil
	}

	return DateInterval{}, nil, domainerror.NewFinanceError(
		domainerror.ErrCodeInvalidRangeToken,
		"range must be: 7d, 30d, 90d, all, or custom",
		domainerror.ErrInvalidRangeToken,
	)
}
