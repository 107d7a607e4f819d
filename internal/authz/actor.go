package authz

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// Actor is the resolved identity of the caller for one request.
type Actor struct {
	UserID     uuid.UUID
	GlobalRole enums.GlobalRole
	IsActive   bool
}

// ActorFromUser builds the identity context from a freshly loaded user row.
func ActorFromUser(u *models.User) Actor {
	return Actor{
		UserID:     u.ID,
		GlobalRole: u.GlobalRole,
		IsActive:   u.IsActive,
	}
}

func (a Actor) IsDeveloper() bool {
	return a.GlobalRole.IsDeveloper()
}

func (a Actor) IsPlatformAdmin() bool {
	return a.GlobalRole.IsPlatformAdmin()
}
