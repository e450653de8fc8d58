// Package services – BalanceService
//
// BalanceService exposes the derived monetary figures. It keeps no state:
// every call recomputes from the stored rows. Per-client and global figures
// come from independent queries, so two calls issued back to back may
// observe different data if a write lands in between.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/juris-ledger/internal/domain"
	"github.com/tbourn/juris-ledger/internal/repo"
)

// BalanceService computes balances from stored rows.
type BalanceService struct {
	Store *repo.Store
}

// NewBalanceService constructs a BalanceService.
func NewBalanceService(st *repo.Store) *BalanceService {
	return &BalanceService{Store: st}
}

// ActionTotals returns the paid total and remaining balance of an action.
func (s *BalanceService) ActionTotals(ctx context.Context, actionID uint) (domain.ActionTotals, bool, error) {
	t, err := repo.ActionTotals(ctx, s.Store.DB, actionID)
	if errors.Is(err, repo.ErrNotFound) {
		return domain.ActionTotals{}, false, nil
	}
	if err != nil {
		return domain.ActionTotals{}, false, &StorageError{Op: "action totals", Err: err}
	}
	return t, true, nil
}

// ClientTotals returns the total value, total paid and outstanding balance
// of a client.
func (s *BalanceService) ClientTotals(ctx context.Context, clientID uint) (domain.ClientTotals, bool, error) {
	t, err := repo.ClientTotals(ctx, s.Store.DB, clientID)
	if errors.Is(err, repo.ErrNotFound) {
		return domain.ClientTotals{}, false, nil
	}
	if err != nil {
		return domain.ClientTotals{}, false, &StorageError{Op: "client totals", Err: err}
	}
	return t, true, nil
}

// GlobalReceivable is Σ nominal value over all actions minus Σ amount over
// all payments.
func (s *BalanceService) GlobalReceivable(ctx context.Context) (decimal.Decimal, error) {
	g, err := repo.SumAll(ctx, s.Store.DB)
	if err != nil {
		return decimal.Zero, &StorageError{Op: "global receivable", Err: err}
	}
	return g.Receivable(), nil
}

// Reconciliation compares the global receivable with the sum of per-client
// outstanding balances and counts rows that break parent/child invariants.
type Reconciliation struct {
	GlobalReceivable   decimal.Decimal `json:"global_receivable"`
	ClientOutstanding  decimal.Decimal `json:"client_outstanding"`
	Difference         decimal.Decimal `json:"difference"`
	MismatchedPayments int64           `json:"mismatched_payments"`
	OrphanActions      int64           `json:"orphan_actions"`
	OrphanPayments     int64           `json:"orphan_payments"`
}

// Consistent reports whether both figures agree and no invariant is broken.
func (r Reconciliation) Consistent() bool {
	return r.Difference.IsZero() && r.MismatchedPayments == 0 && r.OrphanActions == 0 && r.OrphanPayments == 0
}

// Reconcile computes a Reconciliation. The queries run inside one read
// transaction so the comparison itself is not skewed by concurrent writes.
func (s *BalanceService) Reconcile(ctx context.Context) (Reconciliation, error) {
	ctx, span := otel.Tracer("services/BalanceService").Start(ctx, "Reconcile")
	defer span.End()

	var (
		r       Reconciliation
		g       repo.GrandTotals
		clients []domain.ClientSummary
		counts  repo.IntegrityCounts
	)
	err := s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if g, err = repo.SumAll(ctx, tx); err != nil {
			return err
		}
		if clients, err = repo.ListClientSummaries(ctx, tx); err != nil {
			return err
		}
		counts, err = repo.CountIntegrityIssues(ctx, tx)
		return err
	})
	if err != nil {
		return r, &StorageError{Op: "reconcile", Err: err}
	}

	sum := decimal.Zero
	for _, c := range clients {
		sum = sum.Add(c.Outstanding)
	}
	r.GlobalReceivable = g.Receivable()
	r.ClientOutstanding = sum
	r.Difference = r.GlobalReceivable.Sub(sum)
	r.MismatchedPayments = counts.MismatchedPayments
	r.OrphanActions = counts.OrphanActions
	r.OrphanPayments = counts.OrphanPayments
	return r, nil
}

// MonthTotal is the sum of payments received in one calendar month.
type MonthTotal struct {
	Month string          `json:"month" example:"2024-05"`
	Total decimal.Decimal `json:"total"`
}

// RevenueSummary is the dashboard view: headline figures plus the daily
// series for the current month and the monthly series for the trailing
// months (oldest first, current month last).
type RevenueSummary struct {
	ClientCount       int64           `json:"client_count"`
	ReceivedThisMonth decimal.Decimal `json:"received_this_month"`
	GlobalReceivable  decimal.Decimal `json:"global_receivable"`
	Daily             []repo.DayTotal `json:"daily"`
	Monthly           []MonthTotal    `json:"monthly"`
}

// DefaultRevenueMonths is the trailing window used when months <= 0.
const DefaultRevenueMonths = 6

// RevenueSummary builds the dashboard figures as of now (in now's location).
func (s *BalanceService) RevenueSummary(ctx context.Context, now time.Time, months int) (RevenueSummary, error) {
	if months <= 0 {
		months = DefaultRevenueMonths
	}
	if months > 120 {
		months = 120
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := monthStart.AddDate(0, -(months - 1), 0)
	windowEnd := monthStart.AddDate(0, 1, 0)

	var out RevenueSummary
	n, err := repo.CountClients(ctx, s.Store.DB)
	if err != nil {
		return out, &StorageError{Op: "revenue summary", Err: err}
	}
	g, err := repo.SumAll(ctx, s.Store.DB)
	if err != nil {
		return out, &StorageError{Op: "revenue summary", Err: err}
	}
	days, err := repo.DailyTotals(ctx, s.Store.DB, domain.DateOf(windowStart), domain.DateOf(windowEnd))
	if err != nil {
		return out, &StorageError{Op: "revenue summary", Err: err}
	}

	out.ClientCount = n
	out.GlobalReceivable = g.Receivable()
	out.ReceivedThisMonth = decimal.Zero
	out.Daily = []repo.DayTotal{}

	byMonth := make(map[string]decimal.Decimal, months)
	current := monthStart.Format("2006-01")
	for _, d := range days {
		key := d.Day.Time().Format("2006-01")
		byMonth[key] = byMonth[key].Add(d.Total)
		if key == current {
			out.Daily = append(out.Daily, d)
			out.ReceivedThisMonth = out.ReceivedThisMonth.Add(d.Total)
		}
	}
	for i := 0; i < months; i++ {
		key := windowStart.AddDate(0, i, 0).Format("2006-01")
		out.Monthly = append(out.Monthly, MonthTotal{Month: key, Total: byMonth[key]})
	}
	return out, nil
}
