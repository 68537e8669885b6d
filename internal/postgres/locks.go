package postgres

import (
	"context"
	"fmt"

	"github.com/leaseflow/leaseflow/internal/types"
)

// LockKey acquires a transaction-scoped advisory lock for the request key.
// Auto released on tx commit/rollback. Must be called inside a transaction.
// On non-postgres drivers this is a no-op: sqlite serializes writers at the
// connection level.
func (c *Client) LockKey(ctx context.Context, req types.LockRequest) error {
	tx := c.TxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("LockKey must be called inside transaction")
	}
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	timeout := req.GetTimeout()

	// Fail-fast path for zero or negative timeouts
	if timeout <= 0 {
		ok, err := c.TryLockKey(ctx, req.Key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("lock already held (timeout: 0ms)")
		}
		return nil
	}

	// lock_timeout is reset automatically on commit/rollback
	timeoutMs := int(timeout.Milliseconds())
	if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = %d", timeoutMs)).Error; err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", req.Key).Error; err != nil {
		return fmt.Errorf("failed to acquire lock within %v: %w", timeout, err)
	}
	return nil
}

// TryLockKey tries acquiring an advisory lock immediately. Returns ok=false
// if the lock is already held. Auto released on tx commit/rollback. Must be
// called inside a transaction.
func (c *Client) TryLockKey(ctx context.Context, key string) (bool, error) {
	tx := c.TxFromContext(ctx)
	if tx == nil {
		return false, fmt.Errorf("TryLockKey must be called inside transaction")
	}
	if tx.Dialector.Name() != "postgres" {
		return true, nil
	}

	var ok bool
	if err := tx.Raw("SELECT pg_try_advisory_xact_lock(hashtext(?))", key).Scan(&ok).Error; err != nil {
		return false, err
	}
	return ok, nil
}
