// Package profile seeds the account slots a session starts from. The demo
// deployment has no real profile backend, so Mock serves deterministic data
// for any user id; a production source would implement the same Lookup
// against the bank's profile service.
package profile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerbot/teller/internal/domain"
)

// Mock is a deterministic in-memory profile source.
type Mock struct {
	now func() time.Time
}

// NewMock builds the demo profile source.
func NewMock() *Mock {
	return &Mock{now: time.Now}
}

// NewMockAt pins the clock, so seeded transaction dates are reproducible in
// tests.
func NewMockAt(now func() time.Time) *Mock {
	return &Mock{now: now}
}

// Lookup returns the profile and seed slots for a user id. Unknown ids get
// the same demo account under their own name; the anonymous id keeps the
// anonymous profile.
func (m *Mock) Lookup(userID string) (domain.UserProfile, domain.Snapshot) {
	prof := domain.AnonymousProfile
	if userID != "" && userID != domain.AnonymousProfile.ID {
		prof = domain.UserProfile{ID: userID, Name: domain.TitleCase(userID)}
	}
	return prof, m.seedSlots()
}

func (m *Mock) seedSlots() domain.Snapshot {
	day := func(daysAgo int) time.Time {
		t := m.now().AddDate(0, 0, -daysAgo)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	amt := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	cards := domain.Cards{
		"iris bank": domain.CardBalances{
			domain.LabelCurrentBalance:   amt("120.00"),
			domain.LabelMinimumBalance:   amt("25.00"),
			domain.LabelStatementBalance: amt("180.00"),
		},
		"credit all": domain.CardBalances{
			domain.LabelCurrentBalance:   amt("312.40"),
			domain.LabelMinimumBalance:   amt("40.00"),
			domain.LabelStatementBalance: amt("298.10"),
		},
		"gringotts": domain.CardBalances{
			domain.LabelCurrentBalance:   amt("48.75"),
			domain.LabelMinimumBalance:   amt("20.00"),
			domain.LabelStatementBalance: amt("48.75"),
		},
	}

	history := domain.TransactionHistory{
		domain.SearchTypeSpend: {
			"starbucks": {
				{Date: day(2), Amount: amt("5.40")},
				{Date: day(9), Amount: amt("7.10")},
			},
			"amazon": {
				{Date: day(4), Amount: amt("32.50")},
				{Date: day(18), Amount: amt("64.99")},
			},
			"target": {
				{Date: day(12), Amount: amt("88.20")},
			},
		},
		domain.SearchTypeDeposit: {
			"employer": {
				{Date: day(6), Amount: amt("2150.00")},
				{Date: day(36), Amount: amt("2150.00")},
			},
		},
	}

	return domain.Snapshot{
		domain.SlotAccountBalance:     domain.Decimal(amt("1500.00")),
		domain.SlotAmountTransferred:  domain.Decimal(decimal.Zero),
		domain.SlotCreditCardBalance:  domain.CardsValue(cards),
		domain.SlotTransactionHistory: domain.HistoryValue(history),
		domain.SlotVendorList:         domain.StringList([]string{"amazon", "starbucks", "target"}),
		domain.SlotKnownRecipients:    domain.StringList([]string{"John Smith", "Jane Doe", "Lisa Poole"}),
	}
}
