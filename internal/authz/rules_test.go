package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

func society(status enums.ApprovalStatus) *models.Society {
	return &models.Society{ID: uuid.New(), Name: "Green Acres", ApprovalStatus: status}
}

func membership(role enums.SocietyRole, status enums.ApprovalStatus) *models.UserSociety {
	return &models.UserSociety{ID: uuid.New(), Role: role, ApprovalStatus: status}
}

func actor(role enums.GlobalRole) Actor {
	return Actor{UserID: uuid.New(), GlobalRole: role, IsActive: true}
}

func TestEvaluateAccessMatrix(t *testing.T) {
	approved := enums.ApprovalStatusApproved
	pending := enums.ApprovalStatusPending
	rejected := enums.ApprovalStatusRejected

	tests := []struct {
		name       string
		actor      Actor
		society    *models.Society
		membership *models.UserSociety
		want       pkgerrors.Code
	}{
		{name: "developer on missing society", actor: actor(enums.GlobalRoleDeveloper)},
		{name: "developer on pending society", actor: actor(enums.GlobalRoleDeveloper), society: society(pending)},
		{name: "missing society", actor: actor(enums.GlobalRoleMember), want: pkgerrors.CodeNotFound},
		{name: "pending society", actor: actor(enums.GlobalRoleAdmin), society: society(pending), membership: membership(enums.SocietyRoleAdmin, approved), want: pkgerrors.CodeNotApproved},
		{name: "no membership", actor: actor(enums.GlobalRoleMember), society: society(approved), want: pkgerrors.CodeNoAccess},
		{name: "pending membership", actor: actor(enums.GlobalRoleMember), society: society(approved), membership: membership(enums.SocietyRoleMember, pending), want: pkgerrors.CodeNotApproved},
		{name: "rejected membership", actor: actor(enums.GlobalRoleMember), society: society(approved), membership: membership(enums.SocietyRoleMember, rejected), want: pkgerrors.CodeNotApproved},
		{name: "approved membership", actor: actor(enums.GlobalRoleMember), society: society(approved), membership: membership(enums.SocietyRoleMember, approved)},
		{name: "global admin still needs membership", actor: actor(enums.GlobalRoleAdmin), society: society(approved), want: pkgerrors.CodeNoAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EvaluateAccess(tt.actor, tt.society, tt.membership)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("expected access, got %v", err)
				}
				return
			}
			if got := pkgerrors.CodeOf(err); got != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestEffectiveRole(t *testing.T) {
	if role, ok := EffectiveRole(actor(enums.GlobalRoleDeveloper), nil); !ok || role != enums.SocietyRoleAdmin {
		t.Fatalf("developer should act as admin, got %q ok=%v", role, ok)
	}
	if _, ok := EffectiveRole(actor(enums.GlobalRoleAdmin), nil); ok {
		t.Fatalf("global admin without membership should have no role")
	}
	if _, ok := EffectiveRole(actor(enums.GlobalRoleMember), membership(enums.SocietyRoleManager, enums.ApprovalStatusPending)); ok {
		t.Fatalf("pending membership should not grant a role")
	}
	role, ok := EffectiveRole(actor(enums.GlobalRoleMember), membership(enums.SocietyRoleManager, enums.ApprovalStatusApproved))
	if !ok || role != enums.SocietyRoleManager {
		t.Fatalf("expected manager, got %q ok=%v", role, ok)
	}
}

func TestApprovalAuthorityTable(t *testing.T) {
	requested := []enums.SocietyRole{enums.SocietyRoleAdmin, enums.SocietyRoleManager, enums.SocietyRoleMember}
	want := map[Approver]map[enums.SocietyRole]bool{
		ApproverDeveloper:                 {enums.SocietyRoleAdmin: true, enums.SocietyRoleManager: true, enums.SocietyRoleMember: true},
		Approver(enums.SocietyRoleAdmin):   {enums.SocietyRoleManager: true, enums.SocietyRoleMember: true},
		Approver(enums.SocietyRoleManager): {enums.SocietyRoleMember: true},
		Approver(enums.SocietyRoleMember):  {},
	}

	for approver, allowed := range want {
		for _, r := range requested {
			if got := CanApprove(approver, r); got != allowed[r] {
				t.Fatalf("approver %s requested %s: expected %v got %v", approver, r, allowed[r], got)
			}
		}
	}
}

func TestApproverFor(t *testing.T) {
	if a, ok := ApproverFor(actor(enums.GlobalRoleDeveloper), "", false); !ok || a != ApproverDeveloper {
		t.Fatalf("developer should approve as developer, got %q", a)
	}
	if _, ok := ApproverFor(actor(enums.GlobalRoleAdmin), "", false); ok {
		t.Fatalf("global admin without society role cannot approve")
	}
	if a, ok := ApproverFor(actor(enums.GlobalRoleMember), enums.SocietyRoleManager, true); !ok || a != Approver(enums.SocietyRoleManager) {
		t.Fatalf("expected manager approver, got %q", a)
	}
}

func TestIssuePolicy(t *testing.T) {
	reporter := actor(enums.GlobalRoleMember)
	assignee := actor(enums.GlobalRoleMember)
	other := actor(enums.GlobalRoleMember)
	assigneeID := assignee.UserID
	issue := IssueRef{ReportedBy: reporter.UserID, AssignedTo: &assigneeID}

	tests := []struct {
		name       string
		actor      Actor
		role       enums.SocietyRole
		wantUpdate bool
		wantDelete bool
	}{
		{name: "reporter", actor: reporter, role: enums.SocietyRoleMember, wantUpdate: true, wantDelete: true},
		{name: "assignee", actor: assignee, role: enums.SocietyRoleMember, wantUpdate: true},
		{name: "manager", actor: other, role: enums.SocietyRoleManager, wantUpdate: true},
		{name: "admin", actor: other, role: enums.SocietyRoleAdmin, wantUpdate: true, wantDelete: true},
		{name: "plain member", actor: other, role: enums.SocietyRoleMember},
		{name: "no role", actor: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUpdateIssue(tt.actor, tt.role, issue); got != tt.wantUpdate {
				t.Fatalf("update: expected %v got %v", tt.wantUpdate, got)
			}
			if got := CanDeleteIssue(tt.actor, tt.role, issue); got != tt.wantDelete {
				t.Fatalf("delete: expected %v got %v", tt.wantDelete, got)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	if HasRole("", AdminOrManager) {
		t.Fatalf("empty role should never match")
	}
	if HasRole(enums.SocietyRoleManager, AdminOnly) {
		t.Fatalf("manager is not admin")
	}
	if !HasRole(enums.SocietyRoleManager, AdminOrManager) {
		t.Fatalf("manager should pass admin/manager gate")
	}
}
