package actions

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

var searchWorkingSlots = []string{
	domain.SlotContinueForm,
	domain.SlotConfirm,
	domain.SlotTime,
	domain.SlotTimeFormatted,
	domain.SlotStartTime,
	domain.SlotEndTime,
	domain.SlotStartTimeFormatted,
	domain.SlotEndTimeFormatted,
	domain.SlotGrain,
	domain.SlotSearchType,
	domain.SlotVendorName,
}

// TransactionSearch counts and sums transactions in the confirmed category,
// vendor and interval.
type TransactionSearch struct {
	logger *zap.Logger
}

// NewTransactionSearch builds the search executor.
func NewTransactionSearch(logger *zap.Logger) *TransactionSearch {
	return &TransactionSearch{logger: logger}
}

// Name implements engine.Action.
func (a *TransactionSearch) Name() string { return "action_transaction_search" }

// Run implements engine.Action.
func (a *TransactionSearch) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	events := clearEvents(searchWorkingSlots)

	if confirm, _ := req.Slots.String(domain.SlotConfirm); confirm != "yes" {
		disp.Utter(engine.TemplateTransactionSearchCancelled, nil)
		return events, nil
	}

	searchType, _ := req.Slots.String(domain.SlotSearchType)
	history, _ := req.Slots.History(domain.SlotTransactionHistory)
	vendorName, _ := req.Slots.String(domain.SlotVendorName)
	startRaw, _ := req.Slots.String(domain.SlotStartTime)
	endRaw, _ := req.Slots.String(domain.SlotEndTime)

	start, errStart := time.Parse(time.RFC3339, startRaw)
	end, errEnd := time.Parse(time.RFC3339, endRaw)
	if errStart != nil || errEnd != nil {
		a.logger.Error("transaction_search invoked without a resolved interval",
			zap.String("start_time", startRaw), zap.String("end_time", endRaw))
		disp.Utter(engine.TemplateTransactionSearchCancelled, nil)
		return events, nil
	}

	transactions, vendorClause := selectTransactions(history[searchType], vendorName)

	count := 0
	total := decimal.Zero
	for _, tx := range transactions {
		// end is exclusive of the grain boundary
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		count++
		total = total.Add(tx.Amount)
	}

	params := map[string]string{
		"total":                         total.StringFixed(2),
		"numtransacts":                  strconv.Itoa(count),
		domain.SlotStartTimeFormatted:   start.Format(domain.DisplayLayout),
		domain.SlotEndTimeFormatted:     end.Format(domain.DisplayLayout),
		domain.SlotVendorName:           vendorClause,
	}

	searching, found := engine.SearchTemplates(searchType)
	disp.Utter(searching, params)
	disp.Utter(found, params)

	return events, nil
}

// selectTransactions narrows a category bucket to one vendor, or flattens
// all vendors when none was asked for. Vendors flatten in name order so the
// result is deterministic.
func selectTransactions(bucket map[string][]domain.Transaction, vendorName string) ([]domain.Transaction, string) {
	if vendorName != "" {
		return bucket[strings.ToLower(vendorName)], " with " + vendorName
	}

	vendors := make([]string, 0, len(bucket))
	for vendor := range bucket {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)

	var all []domain.Transaction
	for _, vendor := range vendors {
		all = append(all, bucket[vendor]...)
	}
	return all, ""
}
