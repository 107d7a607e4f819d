package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// SeedUser inserts an active user with the given global role.
func SeedUser(t *testing.T, conn *gorm.DB, role enums.GlobalRole) *models.User {
	t.Helper()
	id := uuid.New()
	user := &models.User{
		ID:         id,
		Email:      fmt.Sprintf("user-%s@example.com", id.String()[:8]),
		FullName:   "Seed User",
		GlobalRole: role,
		IsActive:   true,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

// SeedSociety inserts a society in the given approval state.
func SeedSociety(t *testing.T, conn *gorm.DB, status enums.ApprovalStatus) *models.Society {
	t.Helper()
	society := &models.Society{
		ID:             uuid.New(),
		Name:           "Society " + uuid.NewString()[:6],
		ApprovalStatus: status,
	}
	require.NoError(t, conn.Create(society).Error)
	return society
}

// SeedMembership links the user to the society.
func SeedMembership(t *testing.T, conn *gorm.DB, userID, societyID uuid.UUID, role enums.SocietyRole, status enums.ApprovalStatus) *models.UserSociety {
	t.Helper()
	membership := &models.UserSociety{
		ID:             uuid.New(),
		UserID:         userID,
		SocietyID:      societyID,
		Role:           role,
		ApprovalStatus: status,
		JoinedAt:       time.Now().UTC(),
	}
	require.NoError(t, conn.Create(membership).Error)
	return membership
}
