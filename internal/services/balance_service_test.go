package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbourn/juris-ledger/internal/domain"
)

func payOn(t *testing.T, s *PaymentService, actionID uint, day domain.Date, amount string) {
	t.Helper()
	_, err := s.Create(context.Background(), PaymentInput{
		ActionID:    actionID,
		PaymentDate: day,
		Amount:      decimal.RequireFromString(amount),
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
}

func TestBalanceService_Totals(t *testing.T) {
	st := newSvcStore(t)
	clients := NewClientService(st, nil)
	actions := NewActionService(st, nil)
	payments := NewPaymentService(st, nil)
	s := NewBalanceService(st)
	ctx := context.Background()

	ana := mustClient(t, clients, "Ana", nil)
	bruno := mustClient(t, clients, "Bruno", nil)
	a1 := mustAction(t, actions, ana.ID, "1000")
	mustAction(t, actions, ana.ID, "200.10")
	b1 := mustAction(t, actions, bruno.ID, "")
	mustPayment(t, payments, a1.ID, "300")
	mustPayment(t, payments, b1.ID, "50")

	at, found, err := s.ActionTotals(ctx, a1.ID)
	if err != nil || !found {
		t.Fatalf("ActionTotals: %v %v", found, err)
	}
	if at.TotalPaid.String() != "300" || at.Remaining.String() != "700" {
		t.Fatalf("a1 = %s / %s", at.TotalPaid, at.Remaining)
	}

	ct, found, err := s.ClientTotals(ctx, ana.ID)
	if err != nil || !found {
		t.Fatalf("ClientTotals: %v %v", found, err)
	}
	if ct.TotalValue.String() != "1200.1" || ct.TotalPaid.String() != "300" || ct.Outstanding.String() != "900.1" {
		t.Fatalf("ana = %s / %s / %s", ct.TotalValue, ct.TotalPaid, ct.Outstanding)
	}

	// 1200.10 nominal minus 350 paid overall.
	g, err := s.GlobalReceivable(ctx)
	if err != nil {
		t.Fatalf("GlobalReceivable: %v", err)
	}
	if !g.Equal(decimal.RequireFromString("850.10")) {
		t.Fatalf("global = %s", g)
	}

	if _, found, err := s.ActionTotals(ctx, 999); found || err != nil {
		t.Fatalf("missing action: %v %v", found, err)
	}
	if _, found, err := s.ClientTotals(ctx, 999); found || err != nil {
		t.Fatalf("missing client: %v %v", found, err)
	}
}

func TestBalanceService_Reconcile(t *testing.T) {
	st := newSvcStore(t)
	clients := NewClientService(st, nil)
	actions := NewActionService(st, nil)
	payments := NewPaymentService(st, nil)
	s := NewBalanceService(st)
	ctx := context.Background()

	ana := mustClient(t, clients, "Ana", nil)
	bruno := mustClient(t, clients, "Bruno", nil)
	a := mustAction(t, actions, ana.ID, "500")
	mustAction(t, actions, bruno.ID, "100")
	p := mustPayment(t, payments, a.ID, "120")

	r, err := s.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !r.Consistent() || !r.GlobalReceivable.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("expected consistent 480, got %+v", r)
	}

	// Break the denormalized owner behind the service's back.
	if err := st.DB.Exec("UPDATE payments SET client_id = ? WHERE id = ?", bruno.ID, p.ID).Error; err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	r, err = s.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if r.Consistent() || r.MismatchedPayments != 1 {
		t.Fatalf("expected one mismatched payment, got %+v", r)
	}
}

// Separate reads are separate queries: a write landing between them shows
// up in one figure and not the other. Reconcile reads both in one
// transaction and so always compares like with like.
func TestBalanceService_IndependentReadsMayDisagree(t *testing.T) {
	st := newSvcStore(t)
	clients := NewClientService(st, nil)
	actions := NewActionService(st, nil)
	payments := NewPaymentService(st, nil)
	s := NewBalanceService(st)
	ctx := context.Background()

	ana := mustClient(t, clients, "Ana", nil)
	a := mustAction(t, actions, ana.ID, "1000")
	mustPayment(t, payments, a.ID, "100")

	list, err := clients.ListWithTotals(ctx)
	if err != nil {
		t.Fatalf("ListWithTotals: %v", err)
	}
	outstanding := decimal.Zero
	for _, c := range list {
		outstanding = outstanding.Add(c.Outstanding)
	}

	// A write between the two reads.
	mustPayment(t, payments, a.ID, "250")

	global, err := s.GlobalReceivable(ctx)
	if err != nil {
		t.Fatalf("GlobalReceivable: %v", err)
	}
	if !outstanding.Equal(decimal.NewFromInt(900)) || !global.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("outstanding = %s, global = %s", outstanding, global)
	}
	if outstanding.Equal(global) {
		t.Fatal("expected the two reads to diverge")
	}

	r, err := s.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !r.Consistent() || !r.GlobalReceivable.Equal(global) || !r.ClientOutstanding.Equal(global) {
		t.Fatalf("reconcile = %+v", r)
	}
}

func TestBalanceService_RevenueSummary(t *testing.T) {
	st := newSvcStore(t)
	clients := NewClientService(st, nil)
	actions := NewActionService(st, nil)
	payments := NewPaymentService(st, nil)
	s := NewBalanceService(st)

	c := mustClient(t, clients, "Ana", nil)
	mustClient(t, clients, "Bruno", nil)
	a := mustAction(t, actions, c.ID, "5000")
	payOn(t, payments, a.ID, domain.NewDate(2024, 5, 3), "100")
	payOn(t, payments, a.ID, domain.NewDate(2024, 5, 3), "20")
	payOn(t, payments, a.ID, domain.NewDate(2024, 5, 10), "30")
	payOn(t, payments, a.ID, domain.NewDate(2024, 3, 15), "25")
	payOn(t, payments, a.ID, domain.NewDate(2023, 1, 1), "999")
	payOn(t, payments, a.ID, domain.NewDate(2024, 6, 1), "7")

	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)
	sum, err := s.RevenueSummary(context.Background(), now, 0)
	if err != nil {
		t.Fatalf("RevenueSummary: %v", err)
	}
	if sum.ClientCount != 2 {
		t.Fatalf("clients = %d", sum.ClientCount)
	}
	if !sum.ReceivedThisMonth.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("this month = %s", sum.ReceivedThisMonth)
	}
	// 5000 - (150 + 25 + 999 + 7)
	if !sum.GlobalReceivable.Equal(decimal.NewFromInt(3819)) {
		t.Fatalf("receivable = %s", sum.GlobalReceivable)
	}
	if len(sum.Daily) != 2 || sum.Daily[0].Day.String() != "2024-05-03" || !sum.Daily[0].Total.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("daily = %+v", sum.Daily)
	}
	if len(sum.Monthly) != DefaultRevenueMonths {
		t.Fatalf("monthly len = %d", len(sum.Monthly))
	}
	if sum.Monthly[0].Month != "2023-12" || sum.Monthly[5].Month != "2024-05" {
		t.Fatalf("window = %s..%s", sum.Monthly[0].Month, sum.Monthly[5].Month)
	}
	if !sum.Monthly[3].Total.Equal(decimal.NewFromInt(25)) || !sum.Monthly[5].Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("monthly = %+v", sum.Monthly)
	}
	if !sum.Monthly[4].Total.IsZero() {
		t.Fatalf("april should be empty, got %s", sum.Monthly[4].Total)
	}
}
