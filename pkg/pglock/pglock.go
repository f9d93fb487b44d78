package pglock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// Lock provides named, system-wide mutual exclusion on top of Postgres
// session advisory locks. Each Acquire pins a dedicated connection from the
// pool; Release unlocks and returns the connection. The lock is also released
// by Postgres if the session dies, so a crashed job never wedges the next run.
type Lock struct {
	db *sql.DB
}

// New creates a Lock over db.
func New(db *sql.DB) *Lock {
	return &Lock{db: db}
}

// Handle represents a held advisory lock.
type Handle struct {
	conn *sql.Conn
	key  int64
}

// Acquire attempts to take the advisory lock for name without blocking.
// It returns (nil, false, nil) when the lock is held elsewhere.
func (l *Lock) Acquire(ctx context.Context, name string) (*Handle, bool, error) {
	key := keyFor(name)

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("pglock: acquire connection: %w", err)
	}

	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&locked); err != nil {
		conn.Close()
		return nil, false, fmt.Errorf("pglock: try advisory lock %q: %w", name, err)
	}

	if !locked {
		conn.Close()
		return nil, false, nil
	}

	return &Handle{conn: conn, key: key}, true, nil
}

// Release unlocks and returns the pinned connection to the pool.
func (h *Handle) Release(ctx context.Context) error {
	defer h.conn.Close()

	var unlocked bool
	if err := h.conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", h.key).Scan(&unlocked); err != nil {
		return fmt.Errorf("pglock: advisory unlock: %w", err)
	}
	if !unlocked {
		return fmt.Errorf("pglock: advisory unlock: lock was not held")
	}
	return nil
}

// WithLock runs fn while holding the named lock. It returns false without
// running fn when the lock is held elsewhere. The lock is released even when
// ctx is already cancelled by the time fn returns.
func (l *Lock) WithLock(ctx context.Context, name string, fn func(ctx context.Context) error) (bool, error) {
	handle, acquired, err := l.Acquire(ctx, name)
	if err != nil {
		return false, err
	}
	if !acquired {
		return false, nil
	}
	defer handle.Release(context.WithoutCancel(ctx))

	return true, fn(ctx)
}

// keyFor maps a job name onto the 64-bit advisory lock keyspace. The mapping
// only has to be stable, not reversible.
func keyFor(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}
