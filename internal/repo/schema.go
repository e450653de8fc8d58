package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// notesColumn is the one column added to legal_actions after the table
// first shipped.
const notesColumn = "notes"

// EnsureSchema creates the clients, legal_actions and payments tables when
// absent and adds the notes column to a legal_actions table that predates
// it. It is idempotent and runs once at startup, before any other query.
//
// Existing tables are never altered beyond that one additive column.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	m := db.Migrator()

	for _, model := range []any{&domain.Client{}, &domain.LegalAction{}, &domain.Payment{}} {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("schema: create %s: %w", tableName(model), err)
		}
	}

	has, err := hasColumn(db, &domain.LegalAction{}, notesColumn)
	if err != nil {
		return fmt.Errorf("schema: inspect legal_actions: %w", err)
	}
	if !has {
		if err := m.AddColumn(&domain.LegalAction{}, "Notes"); err != nil {
			return fmt.Errorf("schema: add legal_actions.%s: %w", notesColumn, err)
		}
	}

	for _, model := range []any{&domain.Client{}, &domain.LegalAction{}, &domain.Payment{}} {
		if !m.HasTable(model) {
			return fmt.Errorf("schema: table %s missing after create", tableName(model))
		}
	}
	return nil
}

// hasColumn lists the table's current columns and compares by name.
func hasColumn(db *gorm.DB, model any, name string) (bool, error) {
	cols, err := db.Migrator().ColumnTypes(model)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if strings.EqualFold(c.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

func tableName(model any) string {
	if t, ok := model.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", model)
}
