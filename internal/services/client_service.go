// Package services – ClientService
//
// This file implements ClientService, which owns the lifecycle of clients.
// It normalizes and validates input, delegates persistence to the repo
// package, translates storage failures into the service error taxonomy, and
// raises a change notification after every mutation that touched a row.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/juris-ledger/internal/domain"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/repo"
)

// ClientInput carries the caller-editable fields of a client.
type ClientInput struct {
	FullName string  `json:"full_name" example:"Maria da Silva"`
	TaxID    *string `json:"tax_id" example:"123.456.789-00"`
	Phone    string  `json:"phone" example:"+55 11 99999-0000"`
	Email    string  `json:"email" example:"maria@example.com"`
	Address  string  `json:"address" example:"Rua A, 100"`
}

func (in ClientInput) toModel() (*domain.Client, error) {
	c := &domain.Client{
		FullName: clean(in.FullName),
		TaxID:    optional(in.TaxID),
		Phone:    clean(in.Phone),
		Email:    clean(in.Email),
		Address:  clean(in.Address),
	}
	if c.FullName == "" {
		return nil, &ValidationError{Field: "full_name", Reason: "is required"}
	}
	return c, nil
}

var clientViolations = violationNames{unique: "clients.tax_id"}

// ClientService provides client CRUD and the client listing with totals.
type ClientService struct {
	Store  *repo.Store
	Events events.Publisher
}

// NewClientService constructs a ClientService.
func NewClientService(st *repo.Store, pub events.Publisher) *ClientService {
	return &ClientService{Store: st, Events: pub}
}

// Create validates in and inserts a new client. A tax id already used by
// another client yields a *ConstraintError.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*domain.Client, error) {
	ctx, span := otel.Tracer("services/ClientService").Start(ctx, "Create")
	defer span.End()

	c, err := in.toModel()
	if err != nil {
		return nil, err
	}
	err = s.Store.Write(func() error {
		return repo.CreateClient(ctx, s.Store.DB, c)
	})
	if err != nil {
		return nil, translate("create client", err, clientViolations)
	}
	publish(s.Events, events.ClientChanged, c.ID)
	return c, nil
}

// Get returns the client with the given id. A missing client is reported
// as found == false, not as an error.
func (s *ClientService) Get(ctx context.Context, id uint) (*domain.Client, bool, error) {
	c, err := repo.GetClient(ctx, s.Store.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "get client", Err: err}
	}
	return c, true, nil
}

// ListWithTotals returns every client with its total value, total paid and
// outstanding balance, most recently registered first.
func (s *ClientService) ListWithTotals(ctx context.Context) ([]domain.ClientSummary, error) {
	out, err := repo.ListClientSummaries(ctx, s.Store.DB)
	if err != nil {
		return nil, &StorageError{Op: "list clients", Err: err}
	}
	return out, nil
}

// Update replaces the editable fields of client id and returns the number
// of rows changed; 0 means no such client.
func (s *ClientService) Update(ctx context.Context, id uint, in ClientInput) (int64, error) {
	ctx, span := otel.Tracer("services/ClientService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("client.id", int64(id))))
	defer span.End()

	c, err := in.toModel()
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.Store.Write(func() error {
		n, err = repo.UpdateClient(ctx, s.Store.DB, id, c)
		return err
	})
	if err != nil {
		return 0, translate("update client", err, clientViolations)
	}
	if n > 0 {
		publish(s.Events, events.ClientChanged, id)
	}
	return n, nil
}

// Delete removes client id together with its actions and payments.
func (s *ClientService) Delete(ctx context.Context, id uint) (int64, error) {
	ctx, span := otel.Tracer("services/ClientService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("client.id", int64(id))))
	defer span.End()

	var (
		n   int64
		err error
	)
	err = s.Store.Write(func() error {
		n, err = repo.DeleteClient(ctx, s.Store.DB, id)
		return err
	})
	if err != nil {
		return 0, translate("delete client", err, violationNames{})
	}
	if n > 0 {
		publish(s.Events, events.ClientChanged, id)
	}
	return n, nil
}

// publish tolerates a nil Publisher.
func publish(p events.Publisher, kind events.ChangeKind, id uint) {
	if p != nil {
		p.Publish(kind, id)
	}
}
