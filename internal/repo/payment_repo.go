package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// paymentOrder is the listing order for every payment query.
const paymentOrder = "payments.payment_date DESC, payments.id DESC"

// paymentDetailColumns selects a payment plus the owning client's name and
// tax id and the action's type.
const paymentDetailColumns = `payments.id, payments.client_id, payments.action_id,
	payments.payment_date, payments.amount, payments.note,
	clients.full_name AS client_name, clients.tax_id AS client_tax_id,
	legal_actions.action_type AS action_type`

// CreatePayment inserts p.
func CreatePayment(ctx context.Context, db *gorm.DB, p *domain.Payment) error {
	p.ID = 0
	return db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// GetPayment fetches a payment by id, or ErrNotFound.
func GetPayment(ctx context.Context, db *gorm.DB, id uint) (*domain.Payment, error) {
	var p domain.Payment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePayment replaces every column of payment id except the id. Callers
// must have derived p.ClientID from p.ActionID.
func UpdatePayment(ctx context.Context, db *gorm.DB, id uint, p *domain.Payment) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"client_id":    p.ClientID,
			"action_id":    p.ActionID,
			"payment_date": p.PaymentDate,
			"amount":       p.Amount,
			"note":         p.Note,
		})
	return res.RowsAffected, res.Error
}

// DeletePayment removes payment id.
func DeletePayment(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Payment{})
	return res.RowsAffected, res.Error
}

// ListPaymentsByAction returns the payments of one action, most recent first.
func ListPaymentsByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]domain.Payment, error) {
	out := []domain.Payment{}
	err := db.WithContext(ctx).
		Where("action_id = ?", actionID).
		Order(paymentOrder).
		Find(&out).Error
	return out, err
}

// ListPaymentDetailsByClient returns the flattened payment view of a client.
func ListPaymentDetailsByClient(ctx context.Context, db *gorm.DB, clientID uint) ([]domain.PaymentDetail, error) {
	return listPaymentDetails(ctx, db, "payments.client_id = ?", clientID)
}

// ListPaymentDetails returns every payment with its client and action labels.
func ListPaymentDetails(ctx context.Context, db *gorm.DB) ([]domain.PaymentDetail, error) {
	return listPaymentDetails(ctx, db, "")
}

func listPaymentDetails(ctx context.Context, db *gorm.DB, where string, args ...any) ([]domain.PaymentDetail, error) {
	q := db.WithContext(ctx).
		Table("payments").
		Select(paymentDetailColumns).
		Joins("JOIN clients ON clients.id = payments.client_id").
		Joins("JOIN legal_actions ON legal_actions.id = payments.action_id")
	if where != "" {
		q = q.Where(where, args...)
	}
	out := []domain.PaymentDetail{}
	err := q.Order(paymentOrder).Scan(&out).Error
	return out, err
}
