// Package domain defines the persistence models for clients, legal actions,
// and payments. These types are mapped with GORM, and their JSON field names
// double as the column names carried by backup snapshots.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a person or company whose legal actions are tracked.
//
// Fields:
//   - ID: autoincrement primary key, stable for the lifetime of the row.
//   - FullName: required display name.
//   - TaxID: optional tax identifier (CPF/CNPJ); unique when present, NULL otherwise.
//   - Phone / Email / Address: optional free text.
//   - CreatedAt: registration timestamp, stamped once at creation.
type Client struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	FullName  string    `json:"full_name"  gorm:"type:text;not null"`
	TaxID     *string   `json:"tax_id"     gorm:"type:text;uniqueIndex:ux_clients_tax_id"`
	Phone     string    `json:"phone"      gorm:"type:text"`
	Email     string    `json:"email"      gorm:"type:text"`
	Address   string    `json:"address"    gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_clients_created"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// LegalAction is a lawsuit (or any billable matter) owned by a client.
// NominalValue is the total amount owed for the action; it is optional.
// Deleting the owning client cascades to its actions.
type LegalAction struct {
	ID           uint                `json:"id"            gorm:"primaryKey;autoIncrement"`
	ClientID     uint                `json:"client_id"     gorm:"not null;index:idx_actions_client"`
	ActionType   string              `json:"action_type"   gorm:"type:text"`
	CaseNumber   string              `json:"case_number"   gorm:"type:text"`
	NominalValue decimal.NullDecimal `json:"nominal_value" gorm:"type:decimal(14,2)"`
	Notes        *string             `json:"notes"         gorm:"type:text"`
	CreatedAt    time.Time           `json:"created_at"    gorm:"not null"`

	// Client is the owner. Actions are cascade-deleted with it.
	Client Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for LegalAction.
func (LegalAction) TableName() string { return "legal_actions" }

// Payment is an amount received against a legal action.
//
// ClientID duplicates the action's owner so payments can be listed per
// client without a join; it must always match Action.ClientID.
type Payment struct {
	ID          uint            `json:"id"           gorm:"primaryKey;autoIncrement"`
	ClientID    uint            `json:"client_id"    gorm:"not null;index:idx_payments_client"`
	ActionID    uint            `json:"action_id"    gorm:"not null;index:idx_payments_action"`
	PaymentDate Date            `json:"payment_date" gorm:"type:date;not null"`
	Amount      decimal.Decimal `json:"amount"       gorm:"type:decimal(14,2);not null;check:chk_payments_amount,amount > 0"`
	Note        string          `json:"note"         gorm:"type:text"`

	Client Client      `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Action LegalAction `json:"-" gorm:"foreignKey:ActionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Payment.
func (Payment) TableName() string { return "payments" }
