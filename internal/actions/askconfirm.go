package actions

import (
	"context"
	"fmt"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// AskSearchConfirm asks for the confirm slot of transaction_search_form.
// A custom action instead of a plain response template because the question
// differs by search_type and vendor_name.
type AskSearchConfirm struct{}

// Name implements engine.Action.
func (AskSearchConfirm) Name() string { return "action_ask_transaction_search_form_confirm" }

// Run implements engine.Action.
func (AskSearchConfirm) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	searchType, _ := req.Slots.String(domain.SlotSearchType)
	vendorName, _ := req.Slots.String(domain.SlotVendorName)
	start, _ := req.Slots.String(domain.SlotStartTimeFormatted)
	end, _ := req.Slots.String(domain.SlotEndTimeFormatted)

	vendorClause := ""
	if vendorName != "" {
		vendorClause = " with " + vendorName
	}

	var text string
	switch searchType {
	case domain.SearchTypeSpend:
		text = fmt.Sprintf("Do you want to search for transactions%s between %s and %s?",
			vendorClause, start, end)
	case domain.SearchTypeDeposit:
		text = fmt.Sprintf("Do you want to search deposits made to your account between %s and %s?",
			start, end)
	default:
		return nil, nil
	}

	disp.UtterText(text, YesNoButtons()...)
	return nil, nil
}

// YesNoButtons are the affirm/deny quick replies used by every
// confirmation prompt.
func YesNoButtons() []engine.Button {
	return []engine.Button{
		{Payload: "/affirm", Title: "Yes"},
		{Payload: "/deny", Title: "No"},
	}
}
