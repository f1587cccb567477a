package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Balance labels stored per credit card. The keyword table in config maps
// spoken keywords ("minimum", "balance") onto these labels.
const (
	LabelCurrentBalance   = "current balance"
	LabelMinimumBalance   = "minimum balance"
	LabelStatementBalance = "statement balance"
)

// CardBalances holds the balance labels of one credit card.
type CardBalances map[string]decimal.Decimal

// Cards maps lower-cased credit card names to their balances.
type Cards map[string]CardBalances

// Clone deep-copies the card balances. Executors mutate a copy because the
// snapshot they were handed is read-only.
func (c Cards) Clone() Cards {
	out := make(Cards, len(c))
	for name, balances := range c {
		b := make(CardBalances, len(balances))
		for label, amount := range balances {
			b[label] = amount
		}
		out[name] = b
	}
	return out
}

// Transaction is a single dated ledger entry.
type Transaction struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TransactionHistory groups transactions by search category ("spend",
// "deposit") and then by lower-cased vendor name.
type TransactionHistory map[string]map[string][]Transaction

// TitleCase upper-cases the first rune of every space-separated word.
// Card names and recipients are stored and displayed in this form.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// UserProfile identifies the session's user.
type UserProfile struct {
	ID   string
	Name string
}

// AnonymousProfile substitutes when channel metadata carries no user id.
var AnonymousProfile = UserProfile{ID: "anonymous", Name: "anonymous"}
