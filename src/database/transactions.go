package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TxManager runs store operations inside transactions with timeouts and
// retry on SQLite lock contention
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// TxOptions defines options for transaction execution
type TxOptions struct {
	Isolation sql.IsolationLevel
	ReadOnly  bool
	Timeout   time.Duration
}

// DefaultTxOptions returns sensible defaults for most operations
func DefaultTxOptions() *TxOptions {
	return &TxOptions{
		Isolation: sql.LevelDefault,
		Timeout:   30 * time.Second,
	}
}

// ReadOnlyTxOptions returns options for read-only transactions
func ReadOnlyTxOptions() *TxOptions {
	return &TxOptions{
		Isolation: sql.LevelDefault,
		ReadOnly:  true,
		Timeout:   10 * time.Second,
	}
}

// ImmediateTxOptions takes the write lock up front
func ImmediateTxOptions() *TxOptions {
	return &TxOptions{
		Isolation: sql.LevelSerializable,
		Timeout:   30 * time.Second,
	}
}

// ExecuteInTransaction runs fn in a transaction, committing when it
// returns nil and rolling back otherwise
func (tm *TxManager) ExecuteInTransaction(ctx context.Context, opts *TxOptions, fn func(*sql.Tx) error) error {
	if opts == nil {
		opts = DefaultTxOptions()
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	tx, err := tm.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: opts.Isolation,
		ReadOnly:  opts.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %v, rollback failed: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (tm *TxManager) ExecuteInReadTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return tm.ExecuteInTransaction(ctx, ReadOnlyTxOptions(), fn)
}

// ExecuteInWriteTransaction retries lock conflicts under an immediate lock
func (tm *TxManager) ExecuteInWriteTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return tm.WithRetry(ctx, ImmediateTxOptions(), fn)
}

// WithRetry executes a transaction with retry logic for lock conflicts
func (tm *TxManager) WithRetry(ctx context.Context, opts *TxOptions, fn func(*sql.Tx) error) error {
	const maxRetries = 3
	baseDelay := 50 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = tm.ExecuteInTransaction(ctx, opts, fn)
		if err == nil || !isLockError(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// exponential backoff
		select {
		case <-time.After(baseDelay * time.Duration(1<<uint(i))):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("transaction failed after %d retries: %w", maxRetries, err)
}

var lockMessages = []string{
	"database is locked",
	"database table is locked",
	"database schema is locked",
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
}

// isLockError checks if an error is a SQLite locking error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range lockMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
