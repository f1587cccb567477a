package forms

import (
	"strings"
	"time"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/parsing"
)

type transactionSearch struct{}

// NewTransactionSearchValidation builds the validation action for
// transaction_search_form.
func NewTransactionSearchValidation() *ValidationAction {
	f := &transactionSearch{}
	return &ValidationAction{
		name: "validate_transaction_search_form",
		validators: map[string]slotValidator{
			domain.SlotSearchType: f.validateSearchType,
			domain.SlotVendorName: f.validateVendorName,
			domain.SlotTime:       f.validateTime,
			domain.SlotConfirm:    validateConfirm,
		},
		post: f.requireVendorForSpend,
	}
}

func (f *transactionSearch) validateSearchType(candidate domain.SlotValue, _ *engine.Dispatcher, _ *engine.Request) SlotMap {
	value, _ := candidate.String()
	if value == domain.SearchTypeSpend || value == domain.SearchTypeDeposit {
		return SlotMap{domain.SlotSearchType: domain.String(value)}
	}
	return rejected(domain.SlotSearchType)
}

func (f *transactionSearch) validateVendorName(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	vendors, _ := req.Slots.StringList(domain.SlotVendorList)
	value, _ := candidate.String()
	if value != "" {
		for _, vendor := range vendors {
			if strings.EqualFold(value, vendor) {
				return SlotMap{domain.SlotVendorName: domain.String(value)}
			}
		}
	}

	disp.Utter(engine.TemplateNoVendorName, nil)
	return rejected(domain.SlotVendorName)
}

// validateTime requires an interval: a bare point widens to one unit of its
// grain, so "January" covers the whole month.
func (f *transactionSearch) validateTime(_ domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	interval, ok := parsing.ParseTimeInterval(req.Entity(domain.SlotTime))
	if !ok {
		disp.Utter(engine.TemplateNoTransactDate, nil)
		return rejected(domain.SlotTime)
	}

	return SlotMap{
		domain.SlotTime:               domain.String(interval.Start.Format(time.RFC3339)),
		domain.SlotStartTime:          domain.String(interval.Start.Format(time.RFC3339)),
		domain.SlotEndTime:            domain.String(interval.End.Format(time.RFC3339)),
		domain.SlotStartTimeFormatted: domain.String(interval.StartFormatted),
		domain.SlotEndTimeFormatted:   domain.String(interval.EndFormatted),
		domain.SlotGrain:              domain.String(string(interval.Grain)),
	}
}

// requireVendorForSpend force-requests the vendor_name slot when a spend
// search reached the end of validation without one, so the form asks for it
// before confirmation.
func (f *transactionSearch) requireVendorForSpend(_ *engine.Dispatcher, req *engine.Request, events []engine.Event) []engine.Event {
	searchType, _ := req.Slots.String(domain.SlotSearchType)
	for _, ev := range events {
		if ev.Kind == engine.EventSlotSet && ev.Slot == domain.SlotSearchType && !ev.Value.IsAbsent() {
			searchType, _ = ev.Value.String()
		}
	}
	if searchType != domain.SearchTypeSpend {
		return events
	}

	vendor, _ := req.Slots.String(domain.SlotVendorName)
	if vendor == "" && !slotSetInEvents(events, domain.SlotVendorName) {
		events = append(events, engine.SlotSet(domain.SlotRequestedSlot, domain.String(domain.SlotVendorName)))
	}
	return events
}
