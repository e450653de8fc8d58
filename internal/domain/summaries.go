package domain

import "github.com/shopspring/decimal"

// ClientSummary is a client row joined with its aggregated figures.
type ClientSummary struct {
	Client `gorm:"embedded"`

	TotalValue  decimal.Decimal `json:"total_value"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding" gorm:"-"`
}

// ActionSummary is a legal action joined with its paid total and remaining
// balance. Remaining is negative on overpayment.
type ActionSummary struct {
	LegalAction `gorm:"embedded"`

	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// PaymentDetail is a payment with the names needed to display it outside
// the context of its action.
type PaymentDetail struct {
	Payment `gorm:"embedded"`

	ClientName  string  `json:"client_name"`
	ClientTaxID *string `json:"client_tax_id"`
	ActionType  string  `json:"action_type"`
}

// ActionTotals are the derived figures of one legal action.
type ActionTotals struct {
	ActionID     uint                `json:"action_id"`
	NominalValue decimal.NullDecimal `json:"nominal_value"`
	TotalPaid    decimal.Decimal     `json:"total_paid"`
	Remaining    decimal.Decimal     `json:"remaining"`
}

// ClientTotals are the derived figures of one client.
type ClientTotals struct {
	ClientID    uint            `json:"client_id"`
	TotalValue  decimal.Decimal `json:"total_value"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
