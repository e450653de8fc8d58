package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// insertBatchSize bounds the rows per INSERT statement during a restore.
const insertBatchSize = 200

// entityTables in parent-to-child order.
var entityTables = []string{"clients", "legal_actions", "payments"}

// DumpAll reads every row of the three tables inside one read transaction,
// ordered by id.
func DumpAll(ctx context.Context, db *gorm.DB) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&snap.Clients).Error; err != nil {
			return fmt.Errorf("dump clients: %w", err)
		}
		if err := tx.Order("id").Find(&snap.Actions).Error; err != nil {
			return fmt.Errorf("dump legal_actions: %w", err)
		}
		if err := tx.Order("id").Find(&snap.Payments).Error; err != nil {
			return fmt.Errorf("dump payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}

// ReplaceAll deletes every stored row and inserts the snapshot's rows in a
// single transaction, preserving ids and timestamps verbatim. Identity
// counters are reset so new rows continue after the restored ids. On any
// error the transaction rolls back and prior data is left intact.
func ReplaceAll(ctx context.Context, db *gorm.DB, dialect string, snap *domain.Snapshot) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first, so the deletes never depend on cascade timing.
		for i := len(entityTables) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + entityTables[i]).Error; err != nil {
				return fmt.Errorf("clear %s: %w", entityTables[i], err)
			}
		}
		if dialect != DialectPostgres {
			if err := resetSQLiteSequences(tx); err != nil {
				return err
			}
		}

		if len(snap.Clients) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(&snap.Clients, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert clients: %w", err)
			}
		}
		if len(snap.Actions) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(&snap.Actions, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert legal_actions: %w", err)
			}
		}
		if len(snap.Payments) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(&snap.Payments, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert payments: %w", err)
			}
		}

		if dialect == DialectPostgres {
			return syncPostgresSequences(tx)
		}
		return nil
	})
}

// resetSQLiteSequences clears AUTOINCREMENT counters. sqlite_sequence only
// exists once some table declares AUTOINCREMENT.
func resetSQLiteSequences(tx *gorm.DB) error {
	var n int64
	if err := tx.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'`).
		Row().Scan(&n); err != nil {
		return fmt.Errorf("reset sequences: %w", err)
	}
	if n == 0 {
		return nil
	}
	if err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name IN ?`, entityTables).Error; err != nil {
		return fmt.Errorf("reset sequences: %w", err)
	}
	return nil
}

// syncPostgresSequences moves each identity sequence to the table's max id,
// or back to 1 for an empty table.
func syncPostgresSequences(tx *gorm.DB) error {
	for _, t := range entityTables {
		q := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, t)
		if err := tx.Exec(q).Error; err != nil {
			return fmt.Errorf("sync sequence %s: %w", t, err)
		}
	}
	return nil
}
