package memberships

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type societyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error)
}

type membershipStore interface {
	GetMembership(ctx context.Context, userID, societyID uuid.UUID) (*models.UserSociety, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserSociety, error)
	Create(ctx context.Context, membership *models.UserSociety) error
	Rerequest(ctx context.Context, id uuid.UUID, in JoinInput) (bool, error)
	Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error)
	Reject(ctx context.Context, id, approverID uuid.UUID, reason *string, at time.Time) (bool, error)
	ListBySociety(ctx context.Context, societyID uuid.UUID, status *enums.ApprovalStatus) ([]MemberDTO, error)
}

type authorizer interface {
	CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	AuthorizeApproval(ctx context.Context, actor authz.Actor, societyID uuid.UUID, requested enums.SocietyRole) error
}

// Service runs the join and approval workflow for society memberships.
type Service struct {
	tx        txRunner
	repo      membershipStore
	withTx    func(tx *gorm.DB) membershipStore
	societies societyReader
	authz     authorizer
	metrics   *metrics.AuthzMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the workflow against the concrete repository.
func NewService(tx txRunner, repo *Repository, societies societyReader, az authorizer, m *metrics.AuthzMetrics, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("membership repo required")
	}
	return newService(tx, repo, func(t *gorm.DB) membershipStore { return repo.WithTx(t) }, societies, az, m, logg)
}

func newService(tx txRunner, store membershipStore, withTx func(tx *gorm.DB) membershipStore, societies societyReader, az authorizer, m *metrics.AuthzMetrics, logg *logger.Logger) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("membership repo required")
	}
	if societies == nil {
		return nil, fmt.Errorf("society repo required")
	}
	if az == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &Service{
		tx:        tx,
		repo:      store,
		withTx:    withTx,
		societies: societies,
		authz:     az,
		metrics:   m,
		logg:      logg,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Join files a membership request, or re-opens a rejected one in place.
func (s *Service) Join(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in JoinInput) (*MembershipDTO, error) {
	if in.Role == "" {
		in.Role = enums.SocietyRoleMember
	}
	if !in.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", in.Role))
	}

	society, err := s.societies.GetByID(ctx, societyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
	}
	if !society.IsApproved() && !actor.IsDeveloper() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot join a society that is pending approval")
	}

	var out *models.UserSociety
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.withTx(tx)
		existing, err := repo.GetMembership(ctx, actor.UserID, societyID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
		}

		if existing != nil {
			switch existing.ApprovalStatus {
			case enums.ApprovalStatusApproved:
				return pkgerrors.New(pkgerrors.CodeConflict, "you are already a member of this society")
			case enums.ApprovalStatusPending:
				return pkgerrors.New(pkgerrors.CodeConflict, "you already have a pending request for this society")
			}
			ok, err := repo.Rerequest(ctx, existing.ID, in)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reopen membership request")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "membership request changed concurrently")
			}
			out, err = repo.GetByID(ctx, existing.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload membership")
			}
			return nil
		}

		membership := &models.UserSociety{
			UserID:         actor.UserID,
			SocietyID:      societyID,
			Role:           in.Role,
			ApprovalStatus: enums.ApprovalStatusPending,
			FlatNo:         in.FlatNo,
			Wing:           in.Wing,
		}
		if err := repo.Create(ctx, membership); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "you already have a pending request for this society")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
		}
		out = membership
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition("membership", string(enums.ApprovalStatusPending))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"membership_id": out.ID.String(), "requested_role": string(out.Role)})
		s.logg.Info(logCtx, "membership.requested")
	}
	return ToDTO(out), nil
}

// Decide approves or rejects a pending membership of the society.
func (s *Service) Decide(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in DecisionInput) (*MembershipDTO, error) {
	if in.MembershipID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "membership id required")
	}

	var out *models.UserSociety
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.withTx(tx)
		membership, err := repo.GetByID(ctx, in.MembershipID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "membership request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
		}
		if membership.SocietyID != societyID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership request not found")
		}

		if err := s.authz.AuthorizeApproval(ctx, actor, societyID, membership.Role); err != nil {
			return err
		}
		if membership.ApprovalStatus != enums.ApprovalStatusPending {
			return invalidState(membership.ApprovalStatus)
		}

		now := s.now()
		var ok bool
		if in.Approved {
			ok, err = repo.Approve(ctx, membership.ID, actor.UserID, now)
		} else {
			ok, err = repo.Reject(ctx, membership.ID, actor.UserID, in.RejectionReason, now)
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update membership")
		}
		if !ok {
			current, err := repo.GetByID(ctx, membership.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload membership")
			}
			return invalidState(current.ApprovalStatus)
		}

		out, err = repo.GetByID(ctx, membership.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload membership")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition("membership", string(out.ApprovalStatus))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"membership_id": out.ID.String(), "approval_status": string(out.ApprovalStatus)})
		s.logg.Info(logCtx, "membership.decided")
	}
	return ToDTO(out), nil
}

// ListMembers returns members and pending requests of a society.
func (s *Service) ListMembers(ctx context.Context, actor authz.Actor, societyID uuid.UUID, status *enums.ApprovalStatus) ([]MemberDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid approval status %q", *status))
	}
	if err := s.authz.CheckAccess(ctx, actor, societyID); err != nil {
		return nil, err
	}
	members, err := s.repo.ListBySociety(ctx, societyID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	return members, nil
}

func invalidState(current enums.ApprovalStatus) error {
	return pkgerrors.New(pkgerrors.CodeInvalidState, fmt.Sprintf("membership request is %s, not pending", current)).
		WithDetails(map[string]any{"approval_status": current})
}
