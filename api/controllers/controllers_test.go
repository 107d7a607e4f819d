package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/api/middleware"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/memberships"
	"github.com/angelmondragon/societyhub-backend/internal/societies"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReadyReportsFailingDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	handler := HealthReady(cfg, nil, map[string]Pinger{
		"database": stubPinger{},
		"redis":    stubPinger{err: errors.New("connection refused")},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"dependency":"redis"`) {
		t.Fatalf("expected failing dependency in details, got %s", rec.Body.String())
	}
}

type stubSocietyService struct {
	SocietyService
	approved *bool
}

func (s *stubSocietyService) Approve(_ context.Context, _ authz.Actor, id uuid.UUID, approved bool) (*societies.SocietyDTO, error) {
	s.approved = &approved
	return &societies.SocietyDTO{ID: id, ApprovalStatus: enums.ApprovalStatusApproved}, nil
}

type stubMembershipService struct {
	MembershipService
	joined memberships.JoinInput
}

func (s *stubMembershipService) Join(_ context.Context, actor authz.Actor, societyID uuid.UUID, in memberships.JoinInput) (*memberships.MembershipDTO, error) {
	s.joined = in
	return &memberships.MembershipDTO{UserID: actor.UserID, SocietyID: societyID, Role: in.Role}, nil
}

func withRoute(r *http.Request, key, value string, actor *authz.Actor) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if actor != nil {
		ctx = middleware.WithActor(ctx, *actor)
	}
	return r.WithContext(ctx)
}

func TestSocietyApproveBody(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), GlobalRole: enums.GlobalRoleDeveloper, IsActive: true}
	id := uuid.NewString()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "empty body approves", body: "", want: true},
		{name: "explicit approve", body: `{"approved":true}`, want: true},
		{name: "explicit reject", body: `{"approved":false}`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSocietyService{}
			req := withRoute(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), "societyId", id, &actor)
			rec := httptest.NewRecorder()
			SocietyApprove(svc, nil).ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
			}
			if svc.approved == nil || *svc.approved != tt.want {
				t.Fatalf("expected approved=%v, got %v", tt.want, svc.approved)
			}
		})
	}
}

func TestSocietyJoinDefaultsToMemberRole(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), GlobalRole: enums.GlobalRoleMember, IsActive: true}
	svc := &stubMembershipService{}

	req := withRoute(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"wing":"B"}`)), "societyId", uuid.NewString(), &actor)
	rec := httptest.NewRecorder()
	SocietyJoin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.joined.Role != enums.SocietyRoleMember {
		t.Fatalf("expected member role, got %q", svc.joined.Role)
	}
	if svc.joined.Wing == nil || *svc.joined.Wing != "B" {
		t.Fatalf("expected wing to be forwarded")
	}
}

func TestHandlersRequireActor(t *testing.T) {
	req := withRoute(httptest.NewRequest(http.MethodPost, "/", nil), "societyId", uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	SocietyJoin(&stubMembershipService{}, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), GlobalRole: enums.GlobalRoleMember, IsActive: true}
	req := withRoute(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"role":"member","approval_status":"approved"}`)), "societyId", uuid.NewString(), &actor)
	rec := httptest.NewRecorder()
	SocietyJoin(&stubMembershipService{}, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
