package memberships

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubSocieties struct {
	society *models.Society
}

func (s stubSocieties) GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error) {
	if s.society == nil || s.society.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.society, nil
}

type stubStore struct {
	rows      map[uuid.UUID]*models.UserSociety
	createErr error
	// raced forces conditional updates to report no affected row.
	raced bool
}

func newStubStore() *stubStore {
	return &stubStore{rows: map[uuid.UUID]*models.UserSociety{}}
}

func (s *stubStore) GetMembership(ctx context.Context, userID, societyID uuid.UUID) (*models.UserSociety, error) {
	for _, m := range s.rows {
		if m.UserID == userID && m.SocietyID == societyID {
			copy := *m
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) GetByID(ctx context.Context, id uuid.UUID) (*models.UserSociety, error) {
	if m, ok := s.rows[id]; ok {
		copy := *m
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) Create(ctx context.Context, m *models.UserSociety) error {
	if s.createErr != nil {
		return s.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copy := *m
	s.rows[m.ID] = &copy
	return nil
}

func (s *stubStore) Rerequest(ctx context.Context, id uuid.UUID, in JoinInput) (bool, error) {
	m := s.rows[id]
	if s.raced || m == nil || m.ApprovalStatus != enums.ApprovalStatusRejected {
		return false, nil
	}
	m.ApprovalStatus = enums.ApprovalStatusPending
	m.Role = in.Role
	m.RejectedAt, m.RejectedBy, m.RejectionReason = nil, nil, nil
	return true, nil
}

func (s *stubStore) Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error) {
	m := s.rows[id]
	if s.raced || m == nil || m.ApprovalStatus != enums.ApprovalStatusPending {
		return false, nil
	}
	m.ApprovalStatus = enums.ApprovalStatusApproved
	m.ApprovedBy, m.ApprovedAt = &approverID, &at
	return true, nil
}

func (s *stubStore) Reject(ctx context.Context, id, approverID uuid.UUID, reason *string, at time.Time) (bool, error) {
	m := s.rows[id]
	if s.raced || m == nil || m.ApprovalStatus != enums.ApprovalStatusPending {
		return false, nil
	}
	m.ApprovalStatus = enums.ApprovalStatusRejected
	m.RejectedBy, m.RejectedAt, m.RejectionReason = &approverID, &at, reason
	return true, nil
}

func (s *stubStore) ListBySociety(ctx context.Context, societyID uuid.UUID, status *enums.ApprovalStatus) ([]MemberDTO, error) {
	var out []MemberDTO
	for _, m := range s.rows {
		if m.SocietyID == societyID && (status == nil || m.ApprovalStatus == *status) {
			out = append(out, MemberDTO{MembershipDTO: *ToDTO(m)})
		}
	}
	return out, nil
}

type stubAuthorizer struct {
	accessErr   error
	approvalErr error
	requested   enums.SocietyRole
}

func (s *stubAuthorizer) CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error {
	return s.accessErr
}

func (s *stubAuthorizer) AuthorizeApproval(ctx context.Context, actor authz.Actor, societyID uuid.UUID, requested enums.SocietyRole) error {
	s.requested = requested
	return s.approvalErr
}

func newTestService(t *testing.T, society *models.Society, store *stubStore, az *stubAuthorizer) *Service {
	t.Helper()
	svc, err := newService(stubTx{}, store, func(*gorm.DB) membershipStore { return store }, stubSocieties{society: society}, az, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func member() authz.Actor {
	return authz.Actor{UserID: uuid.New(), GlobalRole: enums.GlobalRoleMember, IsActive: true}
}

func expectCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil || pkgerrors.CodeOf(err) != want {
		t.Fatalf("expected %s, got %v", want, err)
	}
}

func TestJoinCreatesPendingMembership(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	svc := newTestService(t, society, store, &stubAuthorizer{})

	dto, err := svc.Join(context.Background(), member(), society.ID, JoinInput{})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if dto.ApprovalStatus != enums.ApprovalStatusPending || dto.Role != enums.SocietyRoleMember {
		t.Fatalf("expected pending member, got %s/%s", dto.ApprovalStatus, dto.Role)
	}
}

func TestJoinRejectsDuplicates(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	svc := newTestService(t, society, store, &stubAuthorizer{})
	actor := member()
	ctx := context.Background()

	if _, err := svc.Join(ctx, actor, society.ID, JoinInput{}); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := svc.Join(ctx, actor, society.ID, JoinInput{})
	expectCode(t, err, pkgerrors.CodeConflict)

	for _, m := range store.rows {
		m.ApprovalStatus = enums.ApprovalStatusApproved
	}
	_, err = svc.Join(ctx, actor, society.ID, JoinInput{})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestJoinUniqueViolationIsConflict(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	store.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "ux_user_societies_user_society"`)
	svc := newTestService(t, society, store, &stubAuthorizer{})

	_, err := svc.Join(context.Background(), member(), society.ID, JoinInput{})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestJoinAfterRejectionReusesRow(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	svc := newTestService(t, society, store, &stubAuthorizer{})
	actor := member()
	ctx := context.Background()

	first, err := svc.Join(ctx, actor, society.ID, JoinInput{})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	reason := "unknown resident"
	if _, err := svc.Decide(ctx, member(), society.ID, DecisionInput{MembershipID: first.ID, RejectionReason: &reason}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	again, err := svc.Join(ctx, actor, society.ID, JoinInput{Role: enums.SocietyRoleManager})
	if err != nil {
		t.Fatalf("re-request: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected row %s to be reused, got %s", first.ID, again.ID)
	}
	if again.ApprovalStatus != enums.ApprovalStatusPending || again.RejectedAt != nil || again.RejectionReason != nil {
		t.Fatalf("expected rejection to be cleared, got %+v", again)
	}
	if again.Role != enums.SocietyRoleManager {
		t.Fatalf("expected requested role to be updated, got %s", again.Role)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(store.rows))
	}
}

func TestJoinPendingSociety(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusPending}
	svc := newTestService(t, society, newStubStore(), &stubAuthorizer{})
	ctx := context.Background()

	_, err := svc.Join(ctx, member(), society.ID, JoinInput{})
	expectCode(t, err, pkgerrors.CodeForbidden)

	dev := authz.Actor{UserID: uuid.New(), GlobalRole: enums.GlobalRoleDeveloper, IsActive: true}
	if _, err := svc.Join(ctx, dev, society.ID, JoinInput{}); err != nil {
		t.Fatalf("developer should join pending society: %v", err)
	}
}

func TestJoinValidation(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	svc := newTestService(t, society, newStubStore(), &stubAuthorizer{})

	_, err := svc.Join(context.Background(), member(), society.ID, JoinInput{Role: "developer"})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Join(context.Background(), member(), uuid.New(), JoinInput{})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestDecideApprovesAndRecordsApprover(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	az := &stubAuthorizer{}
	svc := newTestService(t, society, store, az)
	ctx := context.Background()

	req, err := svc.Join(ctx, member(), society.ID, JoinInput{Role: enums.SocietyRoleManager})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	approver := member()
	dto, err := svc.Decide(ctx, approver, society.ID, DecisionInput{MembershipID: req.ID, Approved: true})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if az.requested != enums.SocietyRoleManager {
		t.Fatalf("expected authority check for manager, got %s", az.requested)
	}
	if dto.ApprovalStatus != enums.ApprovalStatusApproved || dto.ApprovedBy == nil || *dto.ApprovedBy != approver.UserID {
		t.Fatalf("unexpected approval result %+v", dto)
	}

	_, err = svc.Decide(ctx, approver, society.ID, DecisionInput{MembershipID: req.ID, Approved: false})
	expectCode(t, err, pkgerrors.CodeInvalidState)
}

func TestDecideRespectsAuthority(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	az := &stubAuthorizer{}
	svc := newTestService(t, society, store, az)
	ctx := context.Background()

	req, err := svc.Join(ctx, member(), society.ID, JoinInput{Role: enums.SocietyRoleAdmin})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	az.approvalErr = pkgerrors.Forbidden("approve admin requests")
	_, err = svc.Decide(ctx, member(), society.ID, DecisionInput{MembershipID: req.ID, Approved: true})
	expectCode(t, err, pkgerrors.CodeForbidden)
	if store.rows[req.ID].ApprovalStatus != enums.ApprovalStatusPending {
		t.Fatalf("membership should remain pending")
	}
}

func TestDecideWrongSocietyIsNotFound(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	svc := newTestService(t, society, store, &stubAuthorizer{})
	ctx := context.Background()

	req, err := svc.Join(ctx, member(), society.ID, JoinInput{})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	_, err = svc.Decide(ctx, member(), uuid.New(), DecisionInput{MembershipID: req.ID, Approved: true})
	expectCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.Decide(ctx, member(), society.ID, DecisionInput{MembershipID: uuid.New(), Approved: true})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestDecideLosingRaceIsInvalidState(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	store := newStubStore()
	svc := newTestService(t, society, store, &stubAuthorizer{})
	ctx := context.Background()

	req, err := svc.Join(ctx, member(), society.ID, JoinInput{})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	store.raced = true
	_, err = svc.Decide(ctx, member(), society.ID, DecisionInput{MembershipID: req.ID, Approved: true})
	expectCode(t, err, pkgerrors.CodeInvalidState)
}

func TestListMembersRequiresAccess(t *testing.T) {
	society := &models.Society{ID: uuid.New(), ApprovalStatus: enums.ApprovalStatusApproved}
	az := &stubAuthorizer{accessErr: pkgerrors.New(pkgerrors.CodeNoAccess, "no access")}
	svc := newTestService(t, society, newStubStore(), az)

	_, err := svc.ListMembers(context.Background(), member(), society.ID, nil)
	expectCode(t, err, pkgerrors.CodeNoAccess)

	bad := enums.ApprovalStatus("revoked")
	_, err = svc.ListMembers(context.Background(), member(), society.ID, &bad)
	expectCode(t, err, pkgerrors.CodeValidation)
}
