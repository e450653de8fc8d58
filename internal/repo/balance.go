// Balance queries.
//
// Every summation over nominal values and payment amounts lives in this
// file. Sums over empty sets are coalesced to zero in SQL, and all results
// are rounded to cents before they leave the package: SQLite stores
// decimal columns with NUMERIC affinity, so its sums come back as floats.
package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// moneyPlaces is the scale of every monetary figure.
const moneyPlaces = 2

// paidByActionSQL is the per-action payment total.
const paidByActionSQL = `SELECT action_id, SUM(amount) AS total FROM payments GROUP BY action_id`

// ListClientSummaries returns every client with total_value (sum of its
// actions' nominal values) and total_paid (sum of those actions' payments),
// most recently registered first.
func ListClientSummaries(ctx context.Context, db *gorm.DB) ([]domain.ClientSummary, error) {
	out := []domain.ClientSummary{}
	err := db.WithContext(ctx).Raw(`
		SELECT clients.*,
		       COALESCE(SUM(legal_actions.nominal_value), 0) AS total_value,
		       COALESCE(SUM(paid.total), 0) AS total_paid
		FROM clients
		LEFT JOIN legal_actions ON legal_actions.client_id = clients.id
		LEFT JOIN (` + paidByActionSQL + `) paid ON paid.action_id = legal_actions.id
		GROUP BY clients.id
		ORDER BY clients.created_at DESC, clients.id DESC`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TotalValue = round(out[i].TotalValue)
		out[i].TotalPaid = round(out[i].TotalPaid)
		out[i].Outstanding = out[i].TotalValue.Sub(out[i].TotalPaid)
	}
	return out, nil
}

// ListActionSummaries returns the actions of one client with their paid
// total and remaining balance, most recently registered first.
func ListActionSummaries(ctx context.Context, db *gorm.DB, clientID uint) ([]domain.ActionSummary, error) {
	return actionSummaries(ctx, db, "legal_actions.client_id = ?", clientID)
}

// GetActionSummary returns one action with its totals, or ErrNotFound.
func GetActionSummary(ctx context.Context, db *gorm.DB, id uint) (*domain.ActionSummary, error) {
	rows, err := actionSummaries(ctx, db, "legal_actions.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func actionSummaries(ctx context.Context, db *gorm.DB, where string, arg any) ([]domain.ActionSummary, error) {
	out := []domain.ActionSummary{}
	err := db.WithContext(ctx).Raw(`
		SELECT legal_actions.*,
		       COALESCE(paid.total, 0) AS total_paid
		FROM legal_actions
		LEFT JOIN (`+paidByActionSQL+`) paid ON paid.action_id = legal_actions.id
		WHERE `+where+`
		ORDER BY legal_actions.created_at DESC, legal_actions.id DESC`, arg).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TotalPaid = round(out[i].TotalPaid)
		out[i].Remaining = remaining(out[i].NominalValue, out[i].TotalPaid)
	}
	return out, nil
}

// ActionTotals returns the derived figures of action id, or ErrNotFound.
func ActionTotals(ctx context.Context, db *gorm.DB, id uint) (domain.ActionTotals, error) {
	s, err := GetActionSummary(ctx, db, id)
	if err != nil {
		return domain.ActionTotals{}, err
	}
	return domain.ActionTotals{
		ActionID:     s.ID,
		NominalValue: s.NominalValue,
		TotalPaid:    s.TotalPaid,
		Remaining:    s.Remaining,
	}, nil
}

// ClientTotals returns the derived figures of client id, or ErrNotFound.
func ClientTotals(ctx context.Context, db *gorm.DB, id uint) (domain.ClientTotals, error) {
	var rows []domain.ClientTotals
	err := db.WithContext(ctx).Raw(`
		SELECT clients.id AS client_id,
		       COALESCE(SUM(legal_actions.nominal_value), 0) AS total_value,
		       COALESCE(SUM(paid.total), 0) AS total_paid
		FROM clients
		LEFT JOIN legal_actions ON legal_actions.client_id = clients.id
		LEFT JOIN (`+paidByActionSQL+`) paid ON paid.action_id = legal_actions.id
		WHERE clients.id = ?
		GROUP BY clients.id`, id).
		Scan(&rows).Error
	if err != nil {
		return domain.ClientTotals{}, err
	}
	if len(rows) == 0 {
		return domain.ClientTotals{}, ErrNotFound
	}
	t := rows[0]
	t.TotalValue = round(t.TotalValue)
	t.TotalPaid = round(t.TotalPaid)
	t.Outstanding = t.TotalValue.Sub(t.TotalPaid)
	return t, nil
}

// GrandTotals are table-wide sums taken without any grouping.
type GrandTotals struct {
	TotalValue decimal.Decimal
	TotalPaid  decimal.Decimal
}

// Receivable is TotalValue minus TotalPaid.
func (g GrandTotals) Receivable() decimal.Decimal { return g.TotalValue.Sub(g.TotalPaid) }

// SumAll returns Σ nominal_value over all actions and Σ amount over all
// payments. It does not join, so rows that lost their parent still count.
func SumAll(ctx context.Context, db *gorm.DB) (GrandTotals, error) {
	var g GrandTotals
	err := db.WithContext(ctx).Raw(`
		SELECT (SELECT COALESCE(SUM(nominal_value), 0) FROM legal_actions) AS total_value,
		       (SELECT COALESCE(SUM(amount), 0) FROM payments) AS total_paid`).
		Row().Scan(&g.TotalValue, &g.TotalPaid)
	if err != nil {
		return GrandTotals{}, err
	}
	g.TotalValue = round(g.TotalValue)
	g.TotalPaid = round(g.TotalPaid)
	return g, nil
}

// IntegrityCounts are rows that break the parent/child invariants. They stay
// at zero while foreign keys are enforced and payments are written through
// the service layer.
type IntegrityCounts struct {
	// MismatchedPayments have a client_id different from their action's client.
	MismatchedPayments int64
	// OrphanActions reference a client that no longer exists.
	OrphanActions int64
	// OrphanPayments reference an action that no longer exists.
	OrphanPayments int64
}

// CountIntegrityIssues counts rows violating the parent/child invariants.
func CountIntegrityIssues(ctx context.Context, db *gorm.DB) (IntegrityCounts, error) {
	var c IntegrityCounts
	db = db.WithContext(ctx)
	if err := db.Raw(`
		SELECT COUNT(*) FROM payments
		JOIN legal_actions ON legal_actions.id = payments.action_id
		WHERE payments.client_id <> legal_actions.client_id`).
		Row().Scan(&c.MismatchedPayments); err != nil {
		return c, err
	}
	if err := db.Raw(`
		SELECT COUNT(*) FROM legal_actions
		LEFT JOIN clients ON clients.id = legal_actions.client_id
		WHERE clients.id IS NULL`).
		Row().Scan(&c.OrphanActions); err != nil {
		return c, err
	}
	if err := db.Raw(`
		SELECT COUNT(*) FROM payments
		LEFT JOIN legal_actions ON legal_actions.id = payments.action_id
		WHERE legal_actions.id IS NULL`).
		Row().Scan(&c.OrphanPayments); err != nil {
		return c, err
	}
	return c, nil
}

// DayTotal is the sum of payments received on one day.
type DayTotal struct {
	Day   domain.Date     `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// DailyTotals sums payments per payment_date for from <= date < to, in
// ascending date order.
func DailyTotals(ctx context.Context, db *gorm.DB, from, to domain.Date) ([]DayTotal, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT payment_date, SUM(amount)
		FROM payments
		WHERE payment_date >= ? AND payment_date < ?
		GROUP BY payment_date
		ORDER BY payment_date`, from, to).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DayTotal{}
	for rows.Next() {
		var d DayTotal
		if err := rows.Scan(&d.Day, &d.Total); err != nil {
			return nil, err
		}
		d.Total = round(d.Total)
		out = append(out, d)
	}
	return out, rows.Err()
}

func round(d decimal.Decimal) decimal.Decimal { return d.Round(moneyPlaces) }

// remaining is nominal minus paid, treating an absent nominal value as zero.
// It is negative on overpayment.
func remaining(nominal decimal.NullDecimal, paid decimal.Decimal) decimal.Decimal {
	base := decimal.Zero
	if nominal.Valid {
		base = nominal.Decimal
	}
	return round(base.Sub(paid))
}
