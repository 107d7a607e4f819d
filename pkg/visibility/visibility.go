package visibility

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// SocietyIDs builds the subquery of societies a non-developer may browse:
// approved societies where the user holds an approved membership. Listings
// that span societies filter with "society_id IN (?)" so pending societies
// never leak through.
func SocietyIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Table("user_societies").
		Select("user_societies.society_id").
		Joins("JOIN societies ON societies.id = user_societies.society_id").
		Where("user_societies.user_id = ?", userID).
		Where("user_societies.approval_status = ?", enums.ApprovalStatusApproved).
		Where("societies.approval_status = ?", enums.ApprovalStatusApproved)
}

// Scope restricts a society-scoped query to what userID may browse.
func Scope(db *gorm.DB, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("society_id IN (?)", SocietyIDs(db, userID))
	}
}
