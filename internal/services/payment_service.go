// Package services – PaymentService
//
// PaymentService records payments against legal actions. A payment's
// client is always derived from its action inside the same transaction
// that writes the payment, so the denormalized client_id cannot drift from
// the action's owner, including when a payment is moved to another action.
package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/juris-ledger/internal/domain"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/repo"
)

// PaymentInput carries the caller-editable fields of a payment.
//
// ClientID is optional: when set it must equal the action's client, and the
// request is rejected otherwise.
type PaymentInput struct {
	ActionID    uint            `json:"action_id" example:"3"`
	ClientID    uint            `json:"client_id,omitempty" example:"1"`
	PaymentDate domain.Date     `json:"payment_date" swaggertype:"string" example:"2024-05-10"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Note        string          `json:"note" example:"parcela 1/10"`
}

func (in PaymentInput) validate() error {
	if in.ActionID == 0 {
		return &ValidationError{Field: "action_id", Reason: "is required"}
	}
	if in.PaymentDate.IsZero() {
		return &ValidationError{Field: "payment_date", Reason: "is required"}
	}
	if !in.Amount.Round(2).IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}

var paymentViolations = violationNames{
	foreignKey: "payments.action_id",
	check:      "payments.amount",
}

// PaymentService provides payment CRUD and payment listings.
type PaymentService struct {
	Store  *repo.Store
	Events events.Publisher
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(st *repo.Store, pub events.Publisher) *PaymentService {
	return &PaymentService{Store: st, Events: pub}
}

// Create validates in and records a payment against in.ActionID.
func (s *PaymentService) Create(ctx context.Context, in PaymentInput) (*domain.Payment, error) {
	tr := otel.Tracer("services/PaymentService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("action.id", int64(in.ActionID))))
	defer span.End()

	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &domain.Payment{
		ActionID:    in.ActionID,
		PaymentDate: in.PaymentDate,
		Amount:      in.Amount.Round(2),
		Note:        cleanMultiline(in.Note),
	}
	err := s.Store.Write(func() error {
		return s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			clientID, err := ownerOf(ctx, tx, in)
			if err != nil {
				return err
			}
			p.ClientID = clientID
			return repo.CreatePayment(ctx, tx, p)
		})
	})
	if err != nil {
		return nil, s.failure("create payment", err)
	}
	publish(s.Events, events.PaymentChanged, p.ID)
	return p, nil
}

// Get returns payment id; found is false when absent.
func (s *PaymentService) Get(ctx context.Context, id uint) (*domain.Payment, bool, error) {
	p, err := repo.GetPayment(ctx, s.Store.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "get payment", Err: err}
	}
	return p, true, nil
}

// ListByAction returns the payments of one action, most recent first.
func (s *PaymentService) ListByAction(ctx context.Context, actionID uint) ([]domain.Payment, error) {
	out, err := repo.ListPaymentsByAction(ctx, s.Store.DB, actionID)
	if err != nil {
		return nil, &StorageError{Op: "list payments", Err: err}
	}
	return out, nil
}

// ListByClient returns the flattened payment view of one client.
func (s *PaymentService) ListByClient(ctx context.Context, clientID uint) ([]domain.PaymentDetail, error) {
	out, err := repo.ListPaymentDetailsByClient(ctx, s.Store.DB, clientID)
	if err != nil {
		return nil, &StorageError{Op: "list payments", Err: err}
	}
	return out, nil
}

// ListAll returns every payment with client and action labels.
func (s *PaymentService) ListAll(ctx context.Context) ([]domain.PaymentDetail, error) {
	out, err := repo.ListPaymentDetails(ctx, s.Store.DB)
	if err != nil {
		return nil, &StorageError{Op: "list payments", Err: err}
	}
	return out, nil
}

// Update replaces every field of payment id. Moving a payment to another
// action also moves it to that action's client. Returns 0 when no such
// payment exists.
func (s *PaymentService) Update(ctx context.Context, id uint, in PaymentInput) (int64, error) {
	ctx, span := otel.Tracer("services/PaymentService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.Int64("payment.id", int64(id)),
			attribute.Int64("action.id", int64(in.ActionID)),
		))
	defer span.End()

	if err := in.validate(); err != nil {
		return 0, err
	}
	p := &domain.Payment{
		ActionID:    in.ActionID,
		PaymentDate: in.PaymentDate,
		Amount:      in.Amount.Round(2),
		Note:        cleanMultiline(in.Note),
	}
	var n int64
	err := s.Store.Write(func() error {
		return s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// A missing payment is a zero count, whatever the new action.
			if _, err := repo.GetPayment(ctx, tx, id); errors.Is(err, repo.ErrNotFound) {
				return nil
			} else if err != nil {
				return err
			}
			clientID, err := ownerOf(ctx, tx, in)
			if err != nil {
				return err
			}
			p.ClientID = clientID
			n, err = repo.UpdatePayment(ctx, tx, id, p)
			return err
		})
	})
	if err != nil {
		return 0, s.failure("update payment", err)
	}
	if n > 0 {
		publish(s.Events, events.PaymentChanged, id)
	}
	return n, nil
}

// Delete removes payment id.
func (s *PaymentService) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		n   int64
		err error
	)
	err = s.Store.Write(func() error {
		n, err = repo.DeletePayment(ctx, s.Store.DB, id)
		return err
	})
	if err != nil {
		return 0, translate("delete payment", err, violationNames{})
	}
	if n > 0 {
		publish(s.Events, events.PaymentChanged, id)
	}
	return n, nil
}

// ownerOf resolves the client that owns in.ActionID, checking any
// caller-supplied client id against it.
func ownerOf(ctx context.Context, tx *gorm.DB, in PaymentInput) (uint, error) {
	a, err := repo.GetAction(ctx, tx, in.ActionID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, &ConstraintError{Constraint: paymentViolations.foreignKey, Err: err}
	}
	if err != nil {
		return 0, err
	}
	if in.ClientID != 0 && in.ClientID != a.ClientID {
		return 0, &ValidationError{Field: "client_id", Reason: "does not match the action's client"}
	}
	return a.ClientID, nil
}

// failure passes typed errors raised inside a transaction through and
// translates everything else.
func (s *PaymentService) failure(op string, err error) error {
	var (
		ve *ValidationError
		ce *ConstraintError
	)
	if errors.As(err, &ve) {
		return ve
	}
	if errors.As(err, &ce) {
		return ce
	}
	return translate(op, err, paymentViolations)
}
