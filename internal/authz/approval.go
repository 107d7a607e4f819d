package authz

import "github.com/angelmondragon/societyhub-backend/pkg/enums"

// Approver identifies who is deciding a membership request: a developer, or
// a holder of an approved society role.
type Approver string

const ApproverDeveloper Approver = "developer"

// approvalAuthority maps the requested society role to the approvers allowed
// to decide it.
var approvalAuthority = map[enums.SocietyRole][]Approver{
	enums.SocietyRoleAdmin: {
		ApproverDeveloper,
	},
	enums.SocietyRoleManager: {
		ApproverDeveloper,
		Approver(enums.SocietyRoleAdmin),
	},
	enums.SocietyRoleMember: {
		ApproverDeveloper,
		Approver(enums.SocietyRoleAdmin),
		Approver(enums.SocietyRoleManager),
	},
}

// ApproverFor resolves the approver identity of an actor. role/hasRole are the
// actor's approved society role; developers ignore them.
func ApproverFor(actor Actor, role enums.SocietyRole, hasRole bool) (Approver, bool) {
	if actor.IsDeveloper() {
		return ApproverDeveloper, true
	}
	if !hasRole || !role.IsValid() {
		return "", false
	}
	return Approver(role), true
}

// CanApprove reports whether approver may approve or reject a request for requested.
func CanApprove(approver Approver, requested enums.SocietyRole) bool {
	for _, allowed := range approvalAuthority[requested] {
		if allowed == approver {
			return true
		}
	}
	return false
}
