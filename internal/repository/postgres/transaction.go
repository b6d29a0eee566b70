package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatfolio/internal/domain/repositories"
)

// maxTxAttempts bounds serialization retries. Contention on the folder
// forest is rare and short; three attempts is plenty before giving up.
const maxTxAttempts = 3

// TransactionManager implements the TransactionManager interface.
//
// Transactions run SERIALIZABLE. Folder moves and cascade deletes read a
// snapshot of the forest (cycle walk, subtree discovery) and then write
// rows the snapshot reads did not lock; under READ COMMITTED two
// overlapping moves can each pass their cycle check against stale roots
// and commit a parent cycle through disjoint row sets. Serializable
// isolation turns that interleaving into a serialization failure, which
// is retried here.
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes a function within a serializable transaction,
// retrying the whole function when the database aborts it with a
// serialization failure or deadlock. fn must therefore be safe to run
// more than once; all callers re-read their inputs inside fn.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return withSerializationRetry(ctx, tm.logger, func() error {
		return tm.execTxOnce(ctx, fn)
	})
}

// withSerializationRetry runs attempt up to maxTxAttempts times, backing
// off briefly between serialization failures. Any other error returns
// immediately.
func withSerializationRetry(ctx context.Context, logger *slog.Logger, attempt func() error) error {
	var err error
	for n := 1; n <= maxTxAttempts; n++ {
		err = attempt()
		if err == nil || !isSerializationFailure(err) {
			return err
		}

		logger.Warn("transaction serialization failure, retrying",
			"attempt", n,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(n) * 10 * time.Millisecond):
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func (tm *TransactionManager) execTxOnce(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return classify("begin transaction", err)
	}

	// Defer rollback - safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			tm.logger.Error("transaction rollback failed", "error", err)
		}
	}()

	// Store transaction in context so repositories can access it
	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// isSerializationFailure reports whether the database aborted the
// transaction for a reason that a clean retry can resolve.
// 40001 = serialization_failure, 40P01 = deadlock_detected.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
