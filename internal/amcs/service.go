package amcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type amcStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AMC, error)
	Create(ctx context.Context, amc *models.AMC) error
	Update(ctx context.Context, amc *models.AMC) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.AMC, error)
	CreateServiceHistory(ctx context.Context, entry *models.AMCServiceHistory) error
	RecordService(ctx context.Context, id uuid.UUID, serviced time.Time, next *time.Time) error
	ListServiceHistory(ctx context.Context, amcID uuid.UUID) ([]models.AMCServiceHistory, error)
}

type authorizer interface {
	CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	RequirePermission(ctx context.Context, actor authz.Actor, societyID uuid.UUID, allowed []enums.SocietyRole, action string) (enums.SocietyRole, error)
}

// Service manages annual maintenance contracts and their service log.
type Service struct {
	tx     txRunner
	repo   amcStore
	withTx func(tx *gorm.DB) amcStore
	authz  authorizer
	logg   *logger.Logger
}

func NewService(tx txRunner, repo *Repository, az authorizer, logg *logger.Logger) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("amc repo required")
	}
	if az == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &Service{
		tx:     tx,
		repo:   repo,
		withTx: func(t *gorm.DB) amcStore { return repo.WithTx(t) },
		authz:  az,
		logg:   logg,
	}, nil
}

func (s *Service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]AMCDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *filter.Status))
	}
	filter.VisibleTo = nil
	if filter.SocietyID != nil {
		if err := s.authz.CheckAccess(ctx, actor, *filter.SocietyID); err != nil {
			return nil, err
		}
	} else if !actor.IsDeveloper() {
		userID := actor.UserID
		filter.VisibleTo = &userID
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list amcs")
	}
	return fromModels(rows), nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*AMCDTO, error) {
	amc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CheckAccess(ctx, actor, amc.SocietyID); err != nil {
		return nil, err
	}
	return FromModel(amc), nil
}

// Create records a new contract. Requires society admin or manager.
func (s *Service) Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in AMCInput) (*AMCDTO, error) {
	if in.VendorName == nil || strings.TrimSpace(*in.VendorName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor_name is required")
	}
	if in.ServiceType == nil || strings.TrimSpace(*in.ServiceType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_type is required")
	}
	if in.ContractStartDate == nil || in.ContractEndDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract_start_date and contract_end_date are required")
	}
	if _, err := s.authz.RequirePermission(ctx, actor, societyID, authz.AdminOrManager, "create AMCs"); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	amc := &models.AMC{
		SocietyID:           societyID,
		Currency:            DefaultCurrency,
		ServiceReminderDays: 7,
		RenewalReminderDays: 30,
		Status:              enums.AMCStatusActive,
		CreatedBy:           &createdBy,
	}
	if err := apply(amc, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, amc); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create amc")
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"amc_id": amc.ID.String(), "society_id": societyID.String()})
		s.logg.Info(logCtx, "amc.created")
	}
	return FromModel(amc), nil
}

// Update edits a contract. Requires society admin or manager.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in AMCInput) (*AMCDTO, error) {
	amc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.RequirePermission(ctx, actor, amc.SocietyID, authz.AdminOrManager, "update AMCs"); err != nil {
		return nil, err
	}
	if err := apply(amc, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, amc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update amc")
	}
	return FromModel(amc), nil
}

// Delete removes a contract. Requires society admin.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	amc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authz.RequirePermission(ctx, actor, amc.SocietyID, authz.AdminOnly, "delete AMCs"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "amc not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete amc")
	}
	return nil
}

// AddServiceHistory logs a service visit and advances the contract's service
// dates in the same transaction. Counts as an AMC update for permissions.
func (s *Service) AddServiceHistory(ctx context.Context, actor authz.Actor, amcID uuid.UUID, in ServiceHistoryInput) (*ServiceHistoryDTO, error) {
	if in.ServiceDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_date is required")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if in.ServiceCost != nil && in.ServiceCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_cost must not be negative")
	}

	amc, err := s.load(ctx, amcID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.RequirePermission(ctx, actor, amc.SocietyID, authz.AdminOrManager, "update AMCs"); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	entry := &models.AMCServiceHistory{
		AMCID:           amcID,
		ServiceDate:     in.ServiceDate,
		ServiceType:     in.ServiceType,
		TechnicianName:  in.TechnicianName,
		WorkPerformed:   in.WorkPerformed,
		IssuesFound:     in.IssuesFound,
		PartsReplaced:   in.PartsReplaced,
		InvoiceNumber:   in.InvoiceNumber,
		NextServiceDate: in.NextServiceDate,
		Rating:          in.Rating,
		Feedback:        in.Feedback,
		Notes:           in.Notes,
		CreatedBy:       &createdBy,
	}
	if in.ServiceCost != nil {
		entry.ServiceCost = decimal.NewNullDecimal(*in.ServiceCost)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.withTx(tx)
		if err := repo.CreateServiceHistory(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service history")
		}
		if err := repo.RecordService(ctx, amcID, in.ServiceDate, in.NextServiceDate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update amc service dates")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := historyFromModel(entry)
	return &out, nil
}

func (s *Service) ListServiceHistory(ctx context.Context, actor authz.Actor, amcID uuid.UUID) ([]ServiceHistoryDTO, error) {
	amc, err := s.load(ctx, amcID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CheckAccess(ctx, actor, amc.SocietyID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListServiceHistory(ctx, amcID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service history")
	}
	out := make([]ServiceHistoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, historyFromModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.AMC, error) {
	amc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "amc not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load amc")
	}
	return amc, nil
}

func apply(amc *models.AMC, in AMCInput) error {
	if in.VendorName != nil {
		name := strings.TrimSpace(*in.VendorName)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "vendor_name cannot be empty")
		}
		amc.VendorName = name
	}
	if in.ServiceType != nil {
		serviceType := strings.TrimSpace(*in.ServiceType)
		if serviceType == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "service_type cannot be empty")
		}
		amc.ServiceType = serviceType
	}
	if in.ContractStartDate != nil {
		amc.ContractStartDate = *in.ContractStartDate
	}
	if in.ContractEndDate != nil {
		amc.ContractEndDate = *in.ContractEndDate
	}
	if amc.ContractEndDate.Before(amc.ContractStartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "contract_end_date must not be before contract_start_date")
	}
	if in.AnnualCost != nil {
		if in.AnnualCost.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "annual_cost must not be negative")
		}
		amc.AnnualCost = decimal.NewNullDecimal(*in.AnnualCost)
	}
	if in.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if len(currency) != 3 {
			return pkgerrors.New(pkgerrors.CodeValidation, "currency must be a 3-letter code")
		}
		amc.Currency = currency
	}
	if in.MaintenanceFrequency != nil {
		if !in.MaintenanceFrequency.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid maintenance frequency %q", *in.MaintenanceFrequency))
		}
		amc.MaintenanceFrequency = in.MaintenanceFrequency
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *in.Status))
		}
		amc.Status = *in.Status
	}
	if in.ServiceReminderDays != nil {
		if *in.ServiceReminderDays < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "service_reminder_days must not be negative")
		}
		amc.ServiceReminderDays = *in.ServiceReminderDays
	}
	if in.RenewalReminderDays != nil {
		if *in.RenewalReminderDays < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "renewal_reminder_days must not be negative")
		}
		amc.RenewalReminderDays = *in.RenewalReminderDays
	}
	if in.VendorCode != nil {
		amc.VendorCode = in.VendorCode
	}
	if in.ContactPerson != nil {
		amc.ContactPerson = in.ContactPerson
	}
	if in.ContactPhone != nil {
		amc.ContactPhone = in.ContactPhone
	}
	if in.Email != nil {
		amc.Email = in.Email
	}
	if in.VendorAddress != nil {
		amc.VendorAddress = in.VendorAddress
	}
	if in.Notes != nil {
		amc.Notes = in.Notes
	}
	return nil
}
