package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/metrics"
)

const (
	checkAccess     = "check_access"
	checkPermission = "require_permission"
	checkApproval   = "approve_membership"
	checkIssue      = "issue_policy"
)

type societyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error)
}

type membershipReader interface {
	GetMembership(ctx context.Context, userID, societyID uuid.UUID) (*models.UserSociety, error)
}

// Service performs the society and membership lookups behind every
// society-scoped decision.
type Service struct {
	societies   societyReader
	memberships membershipReader
	metrics     *metrics.AuthzMetrics
}

func NewService(societies societyReader, memberships membershipReader, m *metrics.AuthzMetrics) (*Service, error) {
	if societies == nil {
		return nil, fmt.Errorf("society repo required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("membership repo required")
	}
	return &Service{societies: societies, memberships: memberships, metrics: m}, nil
}

// CheckAccess gates every read of society-scoped data.
func (s *Service) CheckAccess(ctx context.Context, actor Actor, societyID uuid.UUID) error {
	_, err := s.access(ctx, actor, societyID)
	return s.record(checkAccess, err)
}

// GetRole returns the actor's effective role in the society. ok is false when
// the actor holds no approved membership.
func (s *Service) GetRole(ctx context.Context, actor Actor, societyID uuid.UUID) (enums.SocietyRole, bool, error) {
	if actor.IsDeveloper() {
		return enums.SocietyRoleAdmin, true, nil
	}
	membership, err := s.loadMembership(ctx, actor.UserID, societyID)
	if err != nil {
		return "", false, err
	}
	role, ok := EffectiveRole(actor, membership)
	return role, ok, nil
}

// CheckWriteAccess is CheckAccess for mutations. Developers still bypass the
// membership rules but the society has to exist.
func (s *Service) CheckWriteAccess(ctx context.Context, actor Actor, societyID uuid.UUID) error {
	_, err := s.writeAccess(ctx, actor, societyID)
	return s.record(checkAccess, err)
}

// RequirePermission enforces write access and then requires the resolved role
// to be one of allowed. action completes the sentence "you don't have
// permission to ...".
func (s *Service) RequirePermission(ctx context.Context, actor Actor, societyID uuid.UUID, allowed []enums.SocietyRole, action string) (enums.SocietyRole, error) {
	membership, err := s.writeAccess(ctx, actor, societyID)
	if err != nil {
		return "", s.record(checkPermission, err)
	}
	role, ok := EffectiveRole(actor, membership)
	if !ok || !HasRole(role, allowed) {
		return "", s.record(checkPermission, pkgerrors.Forbidden(action))
	}
	s.metrics.Allow(checkPermission)
	return role, nil
}

// AuthorizeApproval checks that actor may approve or reject a membership
// request for the requested role in the society.
func (s *Service) AuthorizeApproval(ctx context.Context, actor Actor, societyID uuid.UUID, requested enums.SocietyRole) error {
	membership, err := s.access(ctx, actor, societyID)
	if err != nil {
		return s.record(checkApproval, err)
	}
	role, hasRole := EffectiveRole(actor, membership)
	approver, ok := ApproverFor(actor, role, hasRole)
	if !ok || !CanApprove(approver, requested) {
		return s.record(checkApproval, pkgerrors.Forbidden(fmt.Sprintf("approve %s requests", requested)))
	}
	s.metrics.Allow(checkApproval)
	return nil
}

// AuthorizeIssueUpdate applies the ownership policy for editing an issue.
func (s *Service) AuthorizeIssueUpdate(ctx context.Context, actor Actor, societyID uuid.UUID, issue IssueRef) error {
	return s.issuePolicy(ctx, actor, societyID, issue, CanUpdateIssue, "update this issue")
}

// AuthorizeIssueDelete applies the ownership policy for deleting an issue.
func (s *Service) AuthorizeIssueDelete(ctx context.Context, actor Actor, societyID uuid.UUID, issue IssueRef) error {
	return s.issuePolicy(ctx, actor, societyID, issue, CanDeleteIssue, "delete this issue")
}

func (s *Service) issuePolicy(ctx context.Context, actor Actor, societyID uuid.UUID, issue IssueRef, allow func(Actor, enums.SocietyRole, IssueRef) bool, action string) error {
	membership, err := s.access(ctx, actor, societyID)
	if err != nil {
		return s.record(checkIssue, err)
	}
	role, _ := EffectiveRole(actor, membership)
	if !allow(actor, role, issue) {
		return s.record(checkIssue, pkgerrors.Forbidden(action))
	}
	s.metrics.Allow(checkIssue)
	return nil
}

// access loads the rows needed by EvaluateAccess. Developers skip all lookups.
func (s *Service) access(ctx context.Context, actor Actor, societyID uuid.UUID) (*models.UserSociety, error) {
	if actor.IsDeveloper() {
		return nil, nil
	}

	society, err := s.loadSociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if society == nil || !society.IsApproved() {
		return nil, EvaluateAccess(actor, society, nil)
	}

	membership, err := s.loadMembership(ctx, actor.UserID, societyID)
	if err != nil {
		return nil, err
	}
	if err := EvaluateAccess(actor, society, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// writeAccess is access for mutations.
func (s *Service) writeAccess(ctx context.Context, actor Actor, societyID uuid.UUID) (*models.UserSociety, error) {
	if !actor.IsDeveloper() {
		return s.access(ctx, actor, societyID)
	}
	society, err := s.loadSociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
	}
	return nil, nil
}

// loadSociety returns nil without error when the society does not exist.
func (s *Service) loadSociety(ctx context.Context, societyID uuid.UUID) (*models.Society, error) {
	society, err := s.societies.GetByID(ctx, societyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
	}
	return society, nil
}

func (s *Service) loadMembership(ctx context.Context, userID, societyID uuid.UUID) (*models.UserSociety, error) {
	membership, err := s.memberships.GetMembership(ctx, userID, societyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	return membership, nil
}

func (s *Service) record(check string, err error) error {
	if err == nil {
		s.metrics.Allow(check)
		return nil
	}
	s.metrics.Deny(check, string(pkgerrors.CodeOf(err)))
	return err
}
