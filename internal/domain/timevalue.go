package domain

import "time"

// Grain is the granularity a time expression was recognized at. It decides
// how wide an interval a bare point value spans.
type Grain string

const (
	GrainSecond  Grain = "second"
	GrainMinute  Grain = "minute"
	GrainHour    Grain = "hour"
	GrainDay     Grain = "day"
	GrainWeek    Grain = "week"
	GrainMonth   Grain = "month"
	GrainQuarter Grain = "quarter"
	GrainYear    Grain = "year"
)

// DisplayLayout is how resolved dates are rendered inside user messages.
const DisplayLayout = "01/02/2006"

// Next returns the exclusive end of a one-grain interval starting at t.
// Calendar grains use calendar arithmetic so month lengths and DST stay
// correct.
func (g Grain) Next(t time.Time) time.Time {
	switch g {
	case GrainSecond:
		return t.Add(time.Second)
	case GrainMinute:
		return t.Add(time.Minute)
	case GrainHour:
		return t.Add(time.Hour)
	case GrainDay:
		return t.AddDate(0, 0, 1)
	case GrainWeek:
		return t.AddDate(0, 0, 7)
	case GrainMonth:
		return t.AddDate(0, 1, 0)
	case GrainQuarter:
		return t.AddDate(0, 3, 0)
	case GrainYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Valid reports whether the grain is one duckling can produce.
func (g Grain) Valid() bool {
	switch g {
	case GrainSecond, GrainMinute, GrainHour, GrainDay, GrainWeek, GrainMonth, GrainQuarter, GrainYear:
		return true
	}
	return false
}

// TimePoint is a single resolved instant plus its display form.
type TimePoint struct {
	At        time.Time
	Formatted string
	Grain     Grain
}

// Interval is a half-open [Start, End) time range. End is exclusive of the
// grain boundary: a "day" point widens to [day 00:00, next day 00:00).
type Interval struct {
	Start          time.Time
	End            time.Time
	StartFormatted string
	EndFormatted   string
	Grain          Grain
}

// Contains reports whether t falls inside the half-open interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}
