// pkg/database/transaction.go
//
// Transaction, sql.Tx üzerinde çalışan bir Client'tır: Exec, Query, Get,
// First ve Maps aynı şekilde kullanılır, yalnızca ifadeler transaction
// içinde çalışır.
//
// Örnek kullanım:
//
//   tx, _ := client.BeginTransaction(ctx, nil)
//   if _, err := tx.Exec(ctx, tx.Composer().Update("seats").
//       Condition("held", "=", 1, "").Where("id", "=", 7)); err != nil {
//       _ = tx.Rollback()
//       return err
//   }
//   return tx.Commit()

package database

import (
	"database/sql"
	"fmt"
)

// Transaction, başlatılmış bir sql.Tx'i ve istemcinin ayarlarını taşır.
type Transaction struct {
	runner
	Tx *sql.Tx
}

// Commit, transaction'ı onaylar.
func (t *Transaction) Commit() error {
	if err := t.Tx.Commit(); err != nil {
		t.logger.Error().Err(err).Msg("transaction commit failed")
		return fmt.Errorf("database: commit: %w", err)
	}
	t.logger.Debug().Msg("transaction committed")
	return nil
}

// Rollback, transaction içindeki tüm değişiklikleri geri alır.
func (t *Transaction) Rollback() error {
	if err := t.Tx.Rollback(); err != nil {
		t.logger.Error().Err(err).Msg("transaction rollback failed")
		return fmt.Errorf("database: rollback: %w", err)
	}
	t.logger.Debug().Msg("transaction rolled back")
	return nil
}
