package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerbot/teller/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name         string
		entity       *domain.Entity
		wantOK       bool
		wantAmount   string
		wantCurrency string
	}{
		{
			name: "amount with explicit currency",
			entity: &domain.Entity{
				Type:   domain.SlotAmountOfMoney,
				Detail: &domain.EntityDetail{Number: floatPtr(50), Unit: "EUR"},
			},
			wantOK:       true,
			wantAmount:   "50.00",
			wantCurrency: "EUR",
		},
		{
			name: "amount without currency gets the base currency",
			entity: &domain.Entity{
				Type:   domain.SlotAmountOfMoney,
				Detail: &domain.EntityDetail{Number: floatPtr(12.5)},
			},
			wantOK:       true,
			wantAmount:   "12.50",
			wantCurrency: "$",
		},
		{
			name:   "nil entity",
			entity: nil,
			wantOK: false,
		},
		{
			name:   "entity without detail",
			entity: &domain.Entity{Type: domain.SlotAmountOfMoney, Text: "some"},
			wantOK: false,
		},
		{
			name: "missing numeric value",
			entity: &domain.Entity{
				Type:   domain.SlotAmountOfMoney,
				Detail: &domain.EntityDetail{Unit: "$"},
			},
			wantOK: false,
		},
		{
			name: "negative amount",
			entity: &domain.Entity{
				Type:   domain.SlotAmountOfMoney,
				Detail: &domain.EntityDetail{Number: floatPtr(-3)},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := ParseCurrency(tt.entity, "$")
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantAmount, amount.StringFixed())
			assert.Equal(t, tt.wantCurrency, amount.Currency)
		})
	}
}

func TestParseTimePoint(t *testing.T) {
	entity := &domain.Entity{
		Type:   domain.SlotTime,
		Detail: &domain.EntityDetail{Time: "2023-04-05T00:00:00Z", Grain: domain.GrainDay},
	}

	point, ok := ParseTimePoint(entity)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC), point.At)
	assert.Equal(t, "04/05/2023", point.Formatted)
	assert.Equal(t, domain.GrainDay, point.Grain)

	_, ok = ParseTimePoint(&domain.Entity{Type: domain.SlotTime, Detail: &domain.EntityDetail{Time: "not a date"}})
	assert.False(t, ok)

	_, ok = ParseTimePoint(nil)
	assert.False(t, ok)
}

func TestParseTimeIntervalWidensPoints(t *testing.T) {
	tests := []struct {
		name      string
		timeValue string
		grain     domain.Grain
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "day widens to next midnight",
			timeValue: "2023-01-15T00:00:00Z",
			grain:     domain.GrainDay,
			wantStart: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week spans seven days",
			timeValue: "2023-01-02T00:00:00Z",
			grain:     domain.GrainWeek,
			wantStart: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "month uses calendar length",
			timeValue: "2023-02-01T00:00:00Z",
			grain:     domain.GrainMonth,
			wantStart: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := &domain.Entity{
				Type:   domain.SlotTime,
				Detail: &domain.EntityDetail{Time: tt.timeValue, Grain: tt.grain},
			}

			interval, ok := ParseTimeInterval(entity)
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, interval.Start)
			assert.Equal(t, tt.wantEnd, interval.End)
			assert.True(t, interval.Start.Before(interval.End) || interval.Start.Equal(interval.End))

			// end is exclusive
			assert.True(t, interval.Contains(interval.Start))
			assert.False(t, interval.Contains(interval.End))
		})
	}
}

func TestParseTimeIntervalExplicitBounds(t *testing.T) {
	entity := &domain.Entity{
		Type: domain.SlotTime,
		Detail: &domain.EntityDetail{
			From:  "2023-01-01T00:00:00Z",
			To:    "2023-02-01T00:00:00Z",
			Grain: domain.GrainDay,
		},
	}

	interval, ok := ParseTimeInterval(entity)
	require.True(t, ok)
	assert.Equal(t, "01/01/2023", interval.StartFormatted)
	assert.Equal(t, "02/01/2023", interval.EndFormatted)

	// reversed bounds fail
	reversed := &domain.Entity{
		Type: domain.SlotTime,
		Detail: &domain.EntityDetail{
			From: "2023-02-01T00:00:00Z",
			To:   "2023-01-01T00:00:00Z",
		},
	}
	_, ok = ParseTimeInterval(reversed)
	assert.False(t, ok)

	// one-sided interval fails
	oneSided := &domain.Entity{
		Type:   domain.SlotTime,
		Detail: &domain.EntityDetail{From: "2023-01-01T00:00:00Z"},
	}
	_, ok = ParseTimeInterval(oneSided)
	assert.False(t, ok)
}
