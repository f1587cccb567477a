package parsing

import (
	"time"

	"github.com/tellerbot/teller/internal/domain"
)

// ParseTimePoint resolves a duckling time entity into a single instant.
// Entities that resolved to an explicit interval do not qualify.
func ParseTimePoint(entity *domain.Entity) (domain.TimePoint, bool) {
	if entity == nil || entity.Detail == nil || entity.Detail.Time == "" {
		return domain.TimePoint{}, false
	}

	at, err := time.Parse(time.RFC3339, entity.Detail.Time)
	if err != nil {
		return domain.TimePoint{}, false
	}

	grain := entity.Detail.Grain
	if !grain.Valid() {
		grain = domain.GrainDay
	}

	return domain.TimePoint{
		At:        at,
		Formatted: at.Format(domain.DisplayLayout),
		Grain:     grain,
	}, true
}

// ParseTimeInterval resolves a duckling time entity into a half-open
// interval. An entity that already denotes an interval keeps its explicit
// bounds; a point value widens to exactly one unit of its grain, so
// "yesterday" becomes [yesterday 00:00, today 00:00).
func ParseTimeInterval(entity *domain.Entity) (domain.Interval, bool) {
	if entity == nil || entity.Detail == nil {
		return domain.Interval{}, false
	}

	detail := entity.Detail
	if detail.From != "" || detail.To != "" {
		return parseExplicitInterval(detail)
	}

	point, ok := ParseTimePoint(entity)
	if !ok {
		return domain.Interval{}, false
	}

	end := point.Grain.Next(point.At)
	return domain.Interval{
		Start:          point.At,
		End:            end,
		StartFormatted: point.At.Format(domain.DisplayLayout),
		EndFormatted:   end.Format(domain.DisplayLayout),
		Grain:          point.Grain,
	}, true
}

func parseExplicitInterval(detail *domain.EntityDetail) (domain.Interval, bool) {
	if detail.From == "" || detail.To == "" {
		return domain.Interval{}, false
	}

	start, err := time.Parse(time.RFC3339, detail.From)
	if err != nil {
		return domain.Interval{}, false
	}
	end, err := time.Parse(time.RFC3339, detail.To)
	if err != nil {
		return domain.Interval{}, false
	}
	if end.Before(start) {
		return domain.Interval{}, false
	}

	grain := detail.Grain
	if !grain.Valid() {
		grain = domain.GrainDay
	}

	return domain.Interval{
		Start:          start,
		End:            end,
		StartFormatted: start.Format(domain.DisplayLayout),
		EndFormatted:   end.Format(domain.DisplayLayout),
		Grain:          grain,
	}, true
}
