package database

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"
)

// Handle is the process-wide store handle with an explicit lifecycle:
// uninitialized at startup, populated by the bootstrap retry loop, consulted
// by every store-dependent caller. It is injected rather than global so tests
// can supply their own connection.
type Handle struct {
	db atomic.Pointer[gorm.DB]
}

// NewHandle returns an uninitialized handle.
func NewHandle() *Handle {
	return &Handle{}
}

// NewHandleWithDB returns a handle pre-populated with an open connection.
// Intended for tests.
func NewHandleWithDB(db *gorm.DB) *Handle {
	h := &Handle{}
	h.Set(db)
	return h
}

// Set publishes an established connection.
func (h *Handle) Set(db *gorm.DB) {
	h.db.Store(db)
}

// DB returns the connection, or nil while the store is unreachable.
func (h *Handle) DB() *gorm.DB {
	return h.db.Load()
}

// Ready reports whether the store is connected and answering pings.
func (h *Handle) Ready(ctx context.Context) bool {
	db := h.DB()
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

// Close closes the underlying connection pool if one was established.
func (h *Handle) Close() error {
	db := h.DB()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
