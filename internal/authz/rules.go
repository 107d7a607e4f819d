package authz

import (
	"slices"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

// Role sets used by the society permission gates.
var (
	AdminOnly       = []enums.SocietyRole{enums.SocietyRoleAdmin}
	AdminOrManager  = []enums.SocietyRole{enums.SocietyRoleAdmin, enums.SocietyRoleManager}
	issueEditorRole = AdminOrManager
)

// EvaluateAccess applies the society access rules to rows that were already
// loaded. A nil society means it does not exist; a nil membership means the
// actor never asked to join.
func EvaluateAccess(actor Actor, society *models.Society, membership *models.UserSociety) error {
	if actor.IsDeveloper() {
		return nil
	}
	if society == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
	}
	if !society.IsApproved() {
		return pkgerrors.New(pkgerrors.CodeNotApproved, "society is pending approval")
	}
	if membership == nil {
		return pkgerrors.New(pkgerrors.CodeNoAccess, "you do not have access to this society")
	}
	switch membership.ApprovalStatus {
	case enums.ApprovalStatusApproved:
		return nil
	case enums.ApprovalStatusRejected:
		return pkgerrors.New(pkgerrors.CodeNotApproved, "your membership request was rejected")
	default:
		return pkgerrors.New(pkgerrors.CodeNotApproved, "your membership is pending approval")
	}
}

// EffectiveRole resolves the society role the actor acts with. Developers are
// implicit admins everywhere; everyone else needs an approved membership.
func EffectiveRole(actor Actor, membership *models.UserSociety) (enums.SocietyRole, bool) {
	if actor.IsDeveloper() {
		return enums.SocietyRoleAdmin, true
	}
	if membership == nil || !membership.IsApproved() {
		return "", false
	}
	return membership.Role, true
}

// HasRole reports whether role is one of allowed.
func HasRole(role enums.SocietyRole, allowed []enums.SocietyRole) bool {
	return role != "" && slices.Contains(allowed, role)
}

// IssueRef carries the ownership fields of an issue.
type IssueRef struct {
	ReportedBy uuid.UUID
	AssignedTo *uuid.UUID
}

func (r IssueRef) isReporter(userID uuid.UUID) bool {
	return r.ReportedBy == userID
}

func (r IssueRef) isAssignee(userID uuid.UUID) bool {
	return r.AssignedTo != nil && *r.AssignedTo == userID
}

// CanUpdateIssue: reporter, assignee, or a society admin/manager.
func CanUpdateIssue(actor Actor, role enums.SocietyRole, issue IssueRef) bool {
	return issue.isReporter(actor.UserID) || issue.isAssignee(actor.UserID) || HasRole(role, issueEditorRole)
}

// CanDeleteIssue: reporter or a society admin.
func CanDeleteIssue(actor Actor, role enums.SocietyRole, issue IssueRef) bool {
	return issue.isReporter(actor.UserID) || role == enums.SocietyRoleAdmin
}
