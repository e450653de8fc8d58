package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// CreateAction inserts a, stamping CreatedAt in UTC.
func CreateAction(ctx context.Context, db *gorm.DB, a *domain.LegalAction) error {
	a.ID = 0
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

// GetAction fetches a legal action by id, or ErrNotFound.
func GetAction(ctx context.Context, db *gorm.DB, id uint) (*domain.LegalAction, error) {
	var a domain.LegalAction
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAction replaces the mutable columns of action id. The owning client
// is immutable and is not written.
func UpdateAction(ctx context.Context, db *gorm.DB, id uint, a *domain.LegalAction) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.LegalAction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"action_type":   a.ActionType,
			"case_number":   a.CaseNumber,
			"nominal_value": a.NominalValue,
			"notes":         a.Notes,
		})
	return res.RowsAffected, res.Error
}

// DeleteAction removes action id; its payments cascade.
func DeleteAction(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.LegalAction{})
	return res.RowsAffected, res.Error
}
