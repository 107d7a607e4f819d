package societies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/memberships"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type societyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error)
	Create(ctx context.Context, society *models.Society) error
	Update(ctx context.Context, society *models.Society) error
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Society, error)
}

type membershipCreator interface {
	Create(ctx context.Context, membership *models.UserSociety) error
}

type membershipLister interface {
	ListApprovedSocietyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type authorizer interface {
	CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	RequirePermission(ctx context.Context, actor authz.Actor, societyID uuid.UUID, allowed []enums.SocietyRole, action string) (enums.SocietyRole, error)
}

// Service owns society registration, approval and maintenance.
type Service struct {
	tx          txRunner
	repo        societyStore
	withTx      func(tx *gorm.DB) (societyStore, membershipCreator)
	memberships membershipLister
	authz       authorizer
	metrics     *metrics.AuthzMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// NewService wires the society workflow against the concrete repositories.
func NewService(tx txRunner, repo *Repository, members *memberships.Repository, az authorizer, m *metrics.AuthzMetrics, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("society repo required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership repo required")
	}
	withTx := func(t *gorm.DB) (societyStore, membershipCreator) {
		return repo.WithTx(t), members.WithTx(t)
	}
	return newService(tx, repo, withTx, members, az, m, logg)
}

func newService(tx txRunner, store societyStore, withTx func(tx *gorm.DB) (societyStore, membershipCreator), members membershipLister, az authorizer, m *metrics.AuthzMetrics, logg *logger.Logger) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("society repo required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership repo required")
	}
	if az == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &Service{
		tx:          tx,
		repo:        store,
		withTx:      withTx,
		memberships: members,
		authz:       az,
		metrics:     m,
		logg:        logg,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create registers a society and enrols the creator as its approved admin.
// Societies created by a developer skip the approval queue.
func (s *Service) Create(ctx context.Context, actor authz.Actor, in CreateSocietyInput) (*SocietyDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "society name is required")
	}

	now := s.now()
	creator := actor.UserID
	society := &models.Society{
		Name:           name,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
		ContactPerson:  in.ContactPerson,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		LogoURL:        in.LogoURL,
		ApprovalStatus: enums.ApprovalStatusPending,
		CreatedBy:      &creator,
	}
	if actor.IsDeveloper() {
		society.ApprovalStatus = enums.ApprovalStatusApproved
		society.ApprovedBy = &creator
		society.ApprovedAt = &now
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		societies, members := s.withTx(tx)
		if err := societies.Create(ctx, society); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create society")
		}
		membership := &models.UserSociety{
			UserID:         actor.UserID,
			SocietyID:      society.ID,
			Role:           enums.SocietyRoleAdmin,
			ApprovalStatus: enums.ApprovalStatusApproved,
			ApprovedBy:     &creator,
			ApprovedAt:     &now,
			IsPrimary:      true,
			JoinedAt:       now,
		}
		if err := members.Create(ctx, membership); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create creator membership")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition("society", string(society.ApprovalStatus))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"society_id": society.ID.String(), "approval_status": string(society.ApprovalStatus)})
		s.logg.Info(logCtx, "society.created")
	}
	return FromModel(society), nil
}

// Get returns a society the actor can access.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*SocietyDTO, error) {
	if err := s.authz.CheckAccess(ctx, actor, id); err != nil {
		return nil, err
	}
	society, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(society), nil
}

// List returns every society for developers, otherwise the approved
// societies where the actor holds an approved membership.
func (s *Service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]SocietyDTO, error) {
	filter.SocietyIDs = nil
	filter.ApprovedOnly = false
	if !actor.IsDeveloper() {
		ids, err := s.memberships.ListApprovedSocietyIDs(ctx, actor.UserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list memberships")
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		filter.SocietyIDs = ids
		filter.ApprovedOnly = true
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list societies")
	}
	return fromModels(rows), nil
}

// Update applies a partial update. Requires society admin.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in UpdateSocietyInput) (*SocietyDTO, error) {
	if _, err := s.authz.RequirePermission(ctx, actor, id, authz.AdminOnly, "update societies"); err != nil {
		return nil, err
	}

	var out *models.Society
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		societies, _ := s.withTx(tx)
		society, err := societies.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
		}
		if err := applyUpdate(society, in); err != nil {
			return err
		}
		society.UpdatedAt = s.now()
		if err := societies.Update(ctx, society); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update society")
		}
		out = society
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(out), nil
}

// Delete removes a society and everything scoped to it. Requires society admin.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if _, err := s.authz.RequirePermission(ctx, actor, id, authz.AdminOnly, "delete societies"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete society")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithSocietyID(ctx, id.String()), "society.deleted")
	}
	return nil
}

// Approve moves a pending society to approved. Only developers may approve
// and rejection is not supported.
func (s *Service) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID, approved bool) (*SocietyDTO, error) {
	if !actor.IsDeveloper() {
		return nil, pkgerrors.Forbidden("approve societies")
	}
	if !approved {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "society rejection is not supported")
	}

	var out *models.Society
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		societies, _ := s.withTx(tx)
		society, err := societies.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
		}
		if society.IsApproved() {
			return pkgerrors.New(pkgerrors.CodeAlreadyApproved, "society is already approved")
		}
		ok, err := societies.Approve(ctx, id, actor.UserID, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve society")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeAlreadyApproved, "society is already approved")
		}
		out, err = societies.GetByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload society")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition("society", string(enums.ApprovalStatusApproved))
	if s.logg != nil {
		s.logg.Info(s.logg.WithSocietyID(ctx, id.String()), "society.approved")
	}
	return FromModel(out), nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Society, error) {
	society, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
	}
	return society, nil
}

func applyUpdate(society *models.Society, in UpdateSocietyInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "society name cannot be empty")
		}
		society.Name = name
	}
	if in.Address != nil {
		society.Address = in.Address
	}
	if in.City != nil {
		society.City = in.City
	}
	if in.State != nil {
		society.State = in.State
	}
	if in.Pincode != nil {
		society.Pincode = in.Pincode
	}
	if in.ContactPerson != nil {
		society.ContactPerson = in.ContactPerson
	}
	if in.ContactEmail != nil {
		society.ContactEmail = in.ContactEmail
	}
	if in.ContactPhone != nil {
		society.ContactPhone = in.ContactPhone
	}
	if in.LogoURL != nil {
		society.LogoURL = in.LogoURL
	}
	return nil
}
