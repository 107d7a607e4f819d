package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Page applies normalized offset pagination to q.
func (b Base) Page(q *gorm.DB, params pagination.Params) *gorm.DB {
	params = params.Normalize()
	return q.Offset(params.Skip).Limit(params.Limit)
}

// DeleteByID hard-deletes the row of model's table with the given id and
// returns gorm.ErrRecordNotFound when nothing matched.
func (b Base) DeleteByID(ctx context.Context, model any, id uuid.UUID) error {
	res := b.DB(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
