// Package db owns the Postgres connection lifecycle. Handlers acquire
// the handle per operation instead of checking connection state through
// globals; a dead connection is re-dialed on the next acquire.
package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Handle struct {
	url string

	mu   sync.Mutex
	conn *sqlx.DB
}

func Open(url string) (*Handle, error) {
	conn, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	return &Handle{url: url, conn: conn}, nil
}

// Acquire returns a live connection, reconnecting if the current one no
// longer answers pings.
func (h *Handle) Acquire(ctx context.Context) (*sqlx.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn != nil {
		if err := h.conn.PingContext(ctx); err == nil {
			return h.conn, nil
		}
		_ = h.conn.Close()
		h.conn = nil
	}

	conn, err := sqlx.ConnectContext(ctx, "postgres", h.url)
	if err != nil {
		return nil, fmt.Errorf("failed to reconnect to postgres: %w", err)
	}
	h.conn = conn

	return h.conn, nil
}

func (h *Handle) Live(ctx context.Context) error {
	_, err := h.Acquire(ctx)
	return err
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}
