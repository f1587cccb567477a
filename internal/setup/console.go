// Package setup runs the interactive terminal console: a local stand-in for
// the dialogue engine that drives the action registry directly, applies the
// returned slot events to an in-memory snapshot, and renders the message
// directives. Useful for trying flows without a running engine.
package setup

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	botStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	hintStyle = lipgloss.NewStyle().Foreground(subtle)
)

// Console drives the registry against a local slot snapshot.
type Console struct {
	registry *engine.Registry
	slots    domain.Snapshot
}

// RunConsole boots a session and loops over the demo flows until quit.
func RunConsole(registry *engine.Registry) error {
	c := &Console{registry: registry, slots: domain.Snapshot{}}

	fmt.Println(headerStyle.Render("TELLER DEMO CONSOLE"))
	fmt.Println(hintStyle.Render("Talking to the action server without a dialogue engine.\n"))

	if err := c.call("action_session_start", nil, "", nil); err != nil {
		return err
	}

	for {
		var choice string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("Check my balance", "balance"),
						huh.NewOption("Pay a credit card", "pay"),
						huh.NewOption("Transfer money", "transfer"),
						huh.NewOption("Search transactions", "search"),
						huh.NewOption("List recipients", "recipients"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&choice),
			),
		).Run()
		if err != nil {
			return err
		}

		switch choice {
		case "balance":
			err = c.showBalance()
		case "pay":
			err = c.payCreditCard()
		case "transfer":
			err = c.transferMoney()
		case "search":
			err = c.searchTransactions()
		case "recipients":
			err = c.call("action_show_recipients", nil, "", nil)
		case "quit":
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// call dispatches one action against the current snapshot and applies the
// resulting slot events.
func (c *Console) call(action string, candidates []engine.SlotCandidate, intent string, entities domain.Entities) error {
	resp, err := c.registry.Dispatch(context.Background(), &engine.Request{
		Action:     action,
		SenderID:   "console",
		Intent:     intent,
		Entities:   entities,
		Slots:      c.slots,
		Candidates: candidates,
	})
	if err != nil {
		return err
	}

	for _, ev := range resp.Events {
		if ev.Kind != engine.EventSlotSet {
			continue
		}
		if ev.Value.IsAbsent() {
			delete(c.slots, ev.Slot)
		} else {
			c.slots[ev.Slot] = ev.Value
		}
	}
	for _, msg := range resp.Messages {
		fmt.Println(botStyle.Render("bot> ") + renderMessage(msg))
	}
	return nil
}

func (c *Console) showBalance() error {
	var accountType string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which balance?").
			Options(
				huh.NewOption("Bank account", "bank"),
				huh.NewOption("Credit cards", "credit"),
			).
			Value(&accountType),
	)).Run()
	if err != nil {
		return err
	}

	c.slots[domain.SlotAccountType] = domain.String(accountType)
	defer delete(c.slots, domain.SlotAccountType)
	return c.call("action_show_balance", nil, "", nil)
}

func (c *Console) payCreditCard() error {
	cards, _ := c.slots.Cards(domain.SlotCreditCardBalance)
	options := make([]huh.Option[string], 0, len(cards))
	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		options = append(options, huh.NewOption(domain.TitleCase(name), name))
	}

	var card, amount string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Which card?").Options(options...).Value(&card),
		huh.NewInput().
			Title("How much?").
			Description(`An amount, or "minimum" / "balance"`).
			Value(&amount),
	)).Run()
	if err != nil {
		return err
	}

	if err := c.call("validate_cc_payment_form", []engine.SlotCandidate{
		{Name: domain.SlotCreditCard, Value: domain.String(card)},
		{Name: domain.SlotAmountOfMoney, Value: domain.String(amount)},
	}, "pay_cc", amountEntities(amount)); err != nil {
		return err
	}
	if c.slots.Get(domain.SlotAmountOfMoney).IsAbsent() {
		return nil // validation rejected, messages already shown
	}

	if err := c.confirm("Schedule this payment?"); err != nil {
		return err
	}
	return c.call("action_pay_cc", nil, "", nil)
}

func (c *Console) transferMoney() error {
	var recipient, amount string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Who to?").Value(&recipient),
		huh.NewInput().Title("How much?").Value(&amount),
	)).Run()
	if err != nil {
		return err
	}

	if err := c.call("validate_transfer_money_form", []engine.SlotCandidate{
		{Name: domain.SlotPerson, Value: domain.String(recipient)},
		{Name: domain.SlotAmountOfMoney, Value: domain.String(amount)},
	}, "transfer_money", amountEntities(amount)); err != nil {
		return err
	}
	if c.slots.Get(domain.SlotPerson).IsAbsent() || c.slots.Get(domain.SlotAmountOfMoney).IsAbsent() {
		return nil
	}

	if err := c.confirm("Send the transfer?"); err != nil {
		return err
	}
	return c.call("action_transfer_money", nil, "", nil)
}

func (c *Console) searchTransactions() error {
	var searchType, vendor, daysStr string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Search what?").
			Options(
				huh.NewOption("Spending", domain.SearchTypeSpend),
				huh.NewOption("Deposits", domain.SearchTypeDeposit),
			).
			Value(&searchType),
		huh.NewInput().Title("Vendor").Description("Leave empty for all vendors").Value(&vendor),
		huh.NewInput().Title("How many days back?").Value(&daysStr),
	)).Run()
	if err != nil {
		return err
	}

	days, err := strconv.Atoi(strings.TrimSpace(daysStr))
	if err != nil || days <= 0 {
		days = 30
	}
	end := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	candidates := []engine.SlotCandidate{
		{Name: domain.SlotSearchType, Value: domain.String(searchType)},
		{Name: domain.SlotTime, Value: domain.String("recent")},
	}
	if vendor != "" {
		candidates = append(candidates, engine.SlotCandidate{
			Name: domain.SlotVendorName, Value: domain.String(vendor),
		})
	}
	entities := domain.Entities{{
		Type: domain.SlotTime,
		Detail: &domain.EntityDetail{
			From:  start.Format(time.RFC3339),
			To:    end.Format(time.RFC3339),
			Grain: domain.GrainDay,
		},
	}}

	if err := c.call("validate_transaction_search_form", candidates, "search_transactions", entities); err != nil {
		return err
	}
	if c.slots.Get(domain.SlotSearchType).IsAbsent() || c.slots.Get(domain.SlotStartTime).IsAbsent() {
		return nil
	}

	if err := c.call("action_ask_transaction_search_form_confirm", nil, "", nil); err != nil {
		return err
	}
	if err := c.confirm(""); err != nil {
		return err
	}
	return c.call("action_transaction_search", nil, "", nil)
}

// confirm asks yes/no and stores the answer in the confirm slot.
func (c *Console) confirm(title string) error {
	if title == "" {
		title = "Confirm?"
	}
	var yes bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&yes),
	)).Run()
	if err != nil {
		return err
	}

	answer := "no"
	if yes {
		answer = "yes"
	}
	c.slots[domain.SlotConfirm] = domain.String(answer)
	return nil
}

// amountEntities builds the amount entity a numeric input would have been
// extracted as. Keyword inputs carry no entity and take the keyword path.
func amountEntities(input string) domain.Entities {
	n, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(input), "$"), 64)
	if err != nil {
		return nil
	}
	return domain.Entities{{
		Type:   domain.SlotAmountOfMoney,
		Text:   input,
		Detail: &domain.EntityDetail{Number: &n},
	}}
}

// renderMessage flattens a directive for the console. Template rendering is
// the channel's job in production; here the common templates get a readable
// line and the rest print as key/params.
func renderMessage(msg engine.Message) string {
	if msg.Text != "" {
		text := msg.Text
		for _, b := range msg.Buttons {
			text += hintStyle.Render(fmt.Sprintf(" [%s]", b.Title))
		}
		return text
	}

	if strings.HasPrefix(msg.Template, "utter_searching_") {
		return fmt.Sprintf("Searching transactions%s between %s and %s...",
			msg.Params[domain.SlotVendorName],
			msg.Params[domain.SlotStartTimeFormatted], msg.Params[domain.SlotEndTimeFormatted])
	}
	if strings.HasPrefix(msg.Template, "utter_found_") {
		return fmt.Sprintf("I found %s transactions%s totalling $%s.",
			msg.Params["numtransacts"], msg.Params[domain.SlotVendorName], msg.Params["total"])
	}

	switch msg.Template {
	case engine.TemplateCCPayScheduled:
		return "The payment is scheduled."
	case engine.TemplateCCPayCancelled:
		return "The payment was cancelled."
	case engine.TemplateInsufficientFunds:
		return "You don't have sufficient funds in your account."
	case engine.TemplateNoPaymentAmount:
		return "I didn't catch the amount."
	case engine.TemplateNoCreditCard:
		return "I don't recognize that credit card."
	case engine.TemplateTransferComplete:
		return "The transfer is complete."
	case engine.TemplateTransferCancelled:
		return "The transfer was cancelled."
	case engine.TemplateUnknownRecipient:
		return fmt.Sprintf("I don't know a recipient named %s.", msg.Params[domain.SlotPerson])
	case engine.TemplateRecipients:
		return "You can send money to:" + msg.Params["formatted_recipients"]
	case engine.TemplateCreditCardBalance:
		return fmt.Sprintf("Your %s balance is $%s.",
			msg.Params[domain.SlotCreditCard], msg.Params[domain.SlotAmountOfMoney])
	case engine.TemplateAccountBalance:
		return fmt.Sprintf("Your account balance is $%s.", msg.Params["init_account_balance"])
	case engine.TemplateChangedAccountBalance:
		return fmt.Sprintf("Your account balance went from $%s to $%s.",
			msg.Params["init_account_balance"], msg.Params[domain.SlotAccountBalance])
	default:
		var b strings.Builder
		b.WriteString(msg.Template)
		keys := make([]string, 0, len(msg.Params))
		for k := range msg.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, msg.Params[k])
		}
		return b.String()
	}
}
