package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	shareddb "warden/internal/shared/db"
)

// base bounds every store call with the configured query timeout. A
// deadline hit surfaces as an ordinary query error.
type base struct {
	db      *gorm.DB
	timeout time.Duration
}

func newBase(db *gorm.DB, timeout time.Duration) base {
	return base{db: db, timeout: timeout}
}

func (b base) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := shareddb.Bounded(ctx, b.timeout)
	return shareddb.GetTxFromContext(ctx, b.db), cancel
}
