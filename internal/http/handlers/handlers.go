package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/tbourn/juris-ledger/internal/domain"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/http/middleware"
	"github.com/tbourn/juris-ledger/internal/services"
	"github.com/tbourn/juris-ledger/internal/utils"
)

//
// Service contracts
//

// ClientService manages client records.
type ClientService interface {
	Create(ctx context.Context, in services.ClientInput) (*domain.Client, error)
	Get(ctx context.Context, id uint) (*domain.Client, bool, error)
	ListWithTotals(ctx context.Context) ([]domain.ClientSummary, error)
	Update(ctx context.Context, id uint, in services.ClientInput) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// ActionService manages legal actions.
type ActionService interface {
	Create(ctx context.Context, in services.ActionInput) (*domain.LegalAction, error)
	Get(ctx context.Context, id uint) (*domain.ActionSummary, bool, error)
	ListByClient(ctx context.Context, clientID uint) ([]domain.ActionSummary, error)
	Update(ctx context.Context, id uint, in services.ActionInput) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// PaymentService manages payments.
type PaymentService interface {
	Create(ctx context.Context, in services.PaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, id uint) (*domain.Payment, bool, error)
	ListByAction(ctx context.Context, actionID uint) ([]domain.Payment, error)
	ListByClient(ctx context.Context, clientID uint) ([]domain.PaymentDetail, error)
	ListAll(ctx context.Context) ([]domain.PaymentDetail, error)
	Update(ctx context.Context, id uint, in services.PaymentInput) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// BalanceService computes the derived money figures.
type BalanceService interface {
	ActionTotals(ctx context.Context, actionID uint) (domain.ActionTotals, bool, error)
	ClientTotals(ctx context.Context, clientID uint) (domain.ClientTotals, bool, error)
	GlobalReceivable(ctx context.Context) (decimal.Decimal, error)
	Reconcile(ctx context.Context) (services.Reconciliation, error)
	RevenueSummary(ctx context.Context, now time.Time, months int) (services.RevenueSummary, error)
}

// BackupService exports and replaces the whole ledger.
type BackupService interface {
	Backup(ctx context.Context, choose services.Chooser) (services.BackupResult, error)
	Restore(ctx context.Context, choose services.Chooser) (services.RestoreResult, error)
	RestoreFrom(ctx context.Context, r io.Reader) (services.RestoreResult, error)
	WriteSnapshot(ctx context.Context, w io.Writer) (*domain.Snapshot, error)
}

// Feed hands out change-event subscriptions.
type Feed interface {
	Subscribe(buffer int) (<-chan events.Event, func())
}

// Services bundles the dependencies of Handlers.
type Services struct {
	Clients  ClientService
	Actions  ActionService
	Payments PaymentService
	Balance  BalanceService
	Backup   BackupService
	Feed     Feed

	// AllowOrigins lists the browser origins allowed to open the event
	// stream. "*" allows any. Requests without Origin are always allowed.
	AllowOrigins []string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	clients  ClientService
	actions  ActionService
	payments PaymentService
	balance  BalanceService
	backup   BackupService
	feed     Feed

	upgrader websocket.Upgrader
	now      func() time.Time
}

// New binds the handlers to s.
func New(s Services) *Handlers {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	h := &Handlers{
		clients:  s.Clients,
		actions:  s.Actions,
		payments: s.Payments,
		balance:  s.Balance,
		backup:   s.Backup,
		feed:     s.Feed,
		now:      now,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     middleware.OriginAllowed(s.AllowOrigins),
	}
	return h
}

// idParam parses the :name path parameter, writing a 400 on failure.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
