// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Client model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only CRUD persistence and query composition.
//
// Error semantics:
//   - When a client is not found, Get returns gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Update and Delete report the affected row count; zero is not an error.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateClient inserts c, stamping CreatedAt in UTC. The generated id is
// written back into c.
func CreateClient(ctx context.Context, db *gorm.DB, c *domain.Client) error {
	c.ID = 0
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// GetClient fetches a client by id, or ErrNotFound.
func GetClient(ctx context.Context, db *gorm.DB, id uint) (*domain.Client, error) {
	var c domain.Client
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateClient replaces the mutable columns of client id. id and created_at
// are never written.
func UpdateClient(ctx context.Context, db *gorm.DB, id uint, c *domain.Client) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name": c.FullName,
			"tax_id":    c.TaxID,
			"phone":     c.Phone,
			"email":     c.Email,
			"address":   c.Address,
		})
	return res.RowsAffected, res.Error
}

// DeleteClient removes client id; the database cascades to its actions
// and payments.
func DeleteClient(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Client{})
	return res.RowsAffected, res.Error
}

// CountClients returns the number of stored clients.
func CountClients(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Client{}).Count(&n).Error
	return n, err
}
