package domain

// Form names known to the assistant.
const (
	FormCCPayment         = "cc_payment_form"
	FormTransferMoney     = "transfer_money_form"
	FormTransactionSearch = "transaction_search_form"
)

// FormForIntent maps an intent asking for a new flow to the form that
// collects its slots.
var FormForIntent = map[string]string{
	"pay_cc":              FormCCPayment,
	"transfer_money":      FormTransferMoney,
	"search_transactions": FormTransactionSearch,
	"check_earnings":      FormTransactionSearch,
}

// FormDescriptions holds the human wording used in switch prompts. A form
// absent from this map is unknown to the switch coordinator.
var FormDescriptions = map[string]string{
	FormCCPayment:         "credit card payment",
	FormTransferMoney:     "money transfer",
	FormTransactionSearch: "transaction search",
}

// Slot names. Entity-derived slots keep the extractor's spelling
// ("amount-of-money", "PERSON") so candidates map onto them directly.
const (
	SlotAccountBalance     = "account_balance"
	SlotAccountType        = "account_type"
	SlotAmountOfMoney      = "amount-of-money"
	SlotAmountTransferred  = "amount_transferred"
	SlotConfirm            = "confirm"
	SlotContinueForm       = "continue_form"
	SlotCreditCard         = "credit_card"
	SlotCreditCardBalance  = "credit_card_balance"
	SlotCurrency           = "currency"
	SlotEndTime            = "end_time"
	SlotEndTimeFormatted   = "end_time_formatted"
	SlotGrain              = "grain"
	SlotKnownRecipients    = "known_recipients"
	SlotNextFormName       = "next_form_name"
	SlotNumber             = "number"
	SlotPaymentAmountType  = "payment_amount_type"
	SlotPerson             = "PERSON"
	SlotPreviousFormName   = "previous_form_name"
	SlotRequestedSlot      = "requested_slot"
	SlotSearchType         = "search_type"
	SlotStartTime          = "start_time"
	SlotStartTimeFormatted = "start_time_formatted"
	SlotTime               = "time"
	SlotTimeFormatted      = "time_formatted"
	SlotTransactionHistory = "transaction_history"
	SlotUserName           = "user_name"
	SlotUserProfile        = "user_profile"
	SlotVendorList         = "vendor_list"
	SlotVendorName         = "vendor_name"
)

// Search categories accepted by the transaction search form.
const (
	SearchTypeSpend   = "spend"
	SearchTypeDeposit = "deposit"
)
