// Package services – ActionService
//
// ActionService manages legal actions. The owning client is fixed at
// creation; reads return the action joined with its paid total and
// remaining balance.
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

// ActionInput carries the caller-editable fields of a legal action.
// ClientID is read on create only.
type ActionInput struct {
	ClientID     uint                `json:"client_id" example:"1"`
	ActionType   string              `json:"action_type" example:"Trabalhista"`
	CaseNumber   string              `json:"case_number" example:"0001234-56.2024.5.02.0001"`
	NominalValue decimal.NullDecimal `json:"nominal_value" swaggertype:"string" example:"15000.00"`
	Notes        *string             `json:"notes"`
}

func (in ActionInput) toModel() (*domain.LegalAction, error) {
	a := &domain.LegalAction{
		ClientID:     in.ClientID,
		ActionType:   clean(in.ActionType),
		CaseNumber:   clean(in.CaseNumber),
		NominalValue: in.NominalValue,
		Notes:        optionalText(in.Notes),
	}
	if a.NominalValue.Valid {
		if a.NominalValue.Decimal.IsNegative() {
			return nil, &ValidationError{Field: "nominal_value", Reason: "must not be negative"}
		}
		a.NominalValue.Decimal = a.NominalValue.Decimal.Round(2)
	}
	return a, nil
}

var actionViolations = violationNames{foreignKey: "legal_actions.client_id"}

// ActionService provides legal action CRUD and per-action totals.
type ActionService struct {
	Store  *repo.Store
	Events events.Publisher
}

// NewActionService constructs an ActionService.
func NewActionService(st *repo.Store, pub events.Publisher) *ActionService {
	return &ActionService{Store: st, Events: pub}
}

// Create inserts a new action for in.ClientID. An unknown client yields a
// *ConstraintError.
func (s *ActionService) Create(ctx context.Context, in ActionInput) (*domain.LegalAction, error) {
	tr := otel.Tracer("services/ActionService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("client.id", int64(in.ClientID))))
	defer span.End()

	if in.ClientID == 0 {
		return nil, &ValidationError{Field: "client_id", Reason: "is required"}
	}
	a, err := in.toModel()
	if err != nil {
		return nil, err
	}

	err = s.Store.Write(func() error {
		return s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := repo.GetClient(ctx, tx, a.ClientID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return &ConstraintError{Constraint: actionViolations.foreignKey, Err: err}
				}
				return err
			}
			return repo.CreateAction(ctx, tx, a)
		})
	})
	if err != nil {
		var ce *ConstraintError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, translate("create action", err, actionViolations)
	}
	publish(s.Events, events.ActionChanged, a.ID)
	return a, nil
}

// Get returns action id with its totals; found is false when absent.
func (s *ActionService) Get(ctx context.Context, id uint) (*domain.ActionSummary, bool, error) {
	a, err := repo.GetActionSummary(ctx, s.Store.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "get action", Err: err}
	}
	return a, true, nil
}

// ListByClient returns the actions of a client with totals, most recently
// registered first.
func (s *ActionService) ListByClient(ctx context.Context, clientID uint) ([]domain.ActionSummary, error) {
	out, err := repo.ListActionSummaries(ctx, s.Store.DB, clientID)
	if err != nil {
		return nil, &StorageError{Op: "list actions", Err: err}
	}
	return out, nil
}

// Update replaces the editable fields of action id. in.ClientID is ignored.
// Returns 0 when no such action exists.
func (s *ActionService) Update(ctx context.Context, id uint, in ActionInput) (int64, error) {
	ctx, span := otel.Tracer("services/ActionService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("action.id", int64(id))))
	defer span.End()

	a, err := in.toModel()
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.Store.Write(func() error {
		n, err = repo.UpdateAction(ctx, s.Store.DB, id, a)
		return err
	})
	if err != nil {
		return 0, translate("update action", err, actionViolations)
	}
	if n > 0 {
		publish(s.Events, events.ActionChanged, id)
	}
	return n, nil
}

// Delete removes action id and its payments.
func (s *ActionService) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		n   int64
		err error
	)
	err = s.Store.Write(func() error {
		n, err = repo.DeleteAction(ctx, s.Store.DB, id)
		return err
	})
	if err != nil {
		return 0, translate("delete action", err, violationNames{})
	}
	if n > 0 {
		publish(s.Events, events.ActionChanged, id)
	}
	return n, nil
}
