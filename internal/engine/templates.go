package engine

// Response template keys. Rendering lives in the channel layer; the core
// only names the template and supplies parameters.
const (
	TemplateAccountBalance           = "utter_account_balance"
	TemplateCCPayCancelled           = "utter_cc_pay_cancelled"
	TemplateCCPayScheduled           = "utter_cc_pay_scheduled"
	TemplateChangedAccountBalance    = "utter_changed_account_balance"
	TemplateCreditCardBalance        = "utter_credit_card_balance"
	TemplateInsufficientFunds        = "utter_insufficient_funds"
	TemplateNoCreditCard             = "utter_no_creditcard"
	TemplateNoPaymentAmount          = "utter_no_payment_amount"
	TemplateNoTransactDate           = "utter_no_transactdate"
	TemplateNoVendorName             = "utter_no_vendor_name"
	TemplateRecipients               = "utter_recipients"
	TemplateTransactionSearchCancelled = "utter_transaction_search_cancelled"
	TemplateTransferCancelled        = "utter_transfer_cancelled"
	TemplateTransferCharge           = "utter_transfer_charge"
	TemplateTransferComplete         = "utter_transfer_complete"
	TemplateUnknownRecipient         = "utter_unknown_recipient"
)

// SearchTemplates returns the searching/found template pair for a search
// category ("spend" or "deposit").
func SearchTemplates(searchType string) (searching, found string) {
	return "utter_searching_" + searchType + "_transactions",
		"utter_found_" + searchType + "_transactions"
}
