package internal

import (
	"go.uber.org/zap"

	"github.com/tellerbot/teller/config"
	"github.com/tellerbot/teller/internal/actions"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/forms"
	"github.com/tellerbot/teller/internal/switcher"
)

// BuildRegistry wires every action and form validation the assistant
// serves.
func BuildRegistry(cfg config.Config, logger *zap.Logger, profiles actions.ProfileSource) *engine.Registry {
	rules := forms.AmountRules{
		BaseCurrency:  cfg.BaseCurrency,
		KeywordLabels: cfg.AmountKeywords,
	}

	return engine.NewRegistry(
		// form slot validation
		forms.NewCCPaymentValidation(rules),
		forms.NewTransferMoneyValidation(rules),
		forms.NewTransactionSearchValidation(),

		// transaction executors
		actions.NewPayCC(logger),
		actions.NewTransferMoney(logger),
		actions.NewTransactionSearch(logger),

		// informational queries and prompts
		actions.ShowBalance{},
		actions.ShowRecipients{},
		actions.ShowTransferCharge{},
		actions.AskSearchConfirm{},

		// session lifecycle
		actions.NewSessionStart(profiles, logger),
		actions.Restart{},

		// form switching
		switcher.NewAsk(logger),
		switcher.NewAffirm(logger),
		switcher.NewDeny(logger),
		switcher.NewSwitchBackAsk(logger),
	)
}
