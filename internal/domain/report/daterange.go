package report

import "time"

// Period is a named date-range token accepted by the reporting endpoints.
type Period string

const (
	PeriodToday         Period = "today"
	PeriodWeek          Period = "week"
	PeriodMonth         Period = "month"
	PeriodQuarter       Period = "quarter"
	PeriodYear          Period = "year"
	PeriodPayPeriod     Period = "pay-period"
	PeriodPrevPayPeriod Period = "prev-pay-period"
)

// ParsePeriod maps a raw query value to a Period. Unrecognized tokens fall
// back to the current pay period.
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear,
		PeriodPayPeriod, PeriodPrevPayPeriod:
		return Period(raw)
	default:
		return PeriodPayPeriod
	}
}

// DateRange is a half-open interval. Start is inclusive; a nil End means
// "through now".
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first calendar day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight on the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// Resolve maps a period token and a reference time to a concrete range.
// Every endpoint resolves dates through this single function.
func Resolve(period Period, now time.Time) DateRange {
	switch period {
	case PeriodToday:
		return DateRange{Start: StartOfDay(now)}
	case PeriodWeek:
		return DateRange{Start: now.AddDate(0, 0, -7)}
	case PeriodMonth:
		return DateRange{Start: now.AddDate(0, -1, 0)}
	case PeriodQuarter:
		return DateRange{Start: now.AddDate(0, -3, 0)}
	case PeriodYear:
		return DateRange{Start: now.AddDate(-1, 0, 0)}
	case PeriodPrevPayPeriod:
		curStart := StartOfMonth(now)
		end := curStart.Add(-time.Millisecond)
		return DateRange{Start: StartOfMonth(now.AddDate(0, -1, 0)), End: &end}
	default: // pay-period and anything unrecognized
		return DateRange{Start: StartOfMonth(now)}
	}
}

// Previous returns the window immediately preceding Resolve(period, now),
// used for trend comparison. The window mirrors the period's offset one step
// further back and ends one millisecond before the current start. For
// "today" the previous window is the whole previous day, midnight through
// 23:59:59.999.
func Previous(period Period, now time.Time) DateRange {
	cur := Resolve(period, now)
	end := cur.Start.Add(-time.Millisecond)

	var start time.Time
	switch period {
	case PeriodToday:
		start = cur.Start.AddDate(0, 0, -1)
	case PeriodWeek:
		start = cur.Start.AddDate(0, 0, -7)
	case PeriodMonth:
		start = cur.Start.AddDate(0, -1, 0)
	case PeriodQuarter:
		start = cur.Start.AddDate(0, -3, 0)
	case PeriodYear:
		start = cur.Start.AddDate(-1, 0, 0)
	case PeriodPrevPayPeriod:
		start = cur.Start.AddDate(0, -1, 0)
	default:
		start = cur.Start.AddDate(0, -1, 0)
	}
	return DateRange{Start: start, End: &end}
}

// PayPeriodBounds returns the first and last calendar day of the month
// containing t, the commission accounting boundary.
func PayPeriodBounds(t time.Time) (time.Time, time.Time) {
	return StartOfMonth(t), EndOfMonth(t)
}
