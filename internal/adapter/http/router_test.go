package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sesi-membership/internal/adapter/middleware"
	"sesi-membership/internal/adapter/storage"
	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/member"
	"sesi-membership/internal/domain/region"
	"sesi-membership/internal/domain/uow"
	"sesi-membership/internal/domain/user"
	"sesi-membership/internal/testutil/applicationmock"
	"sesi-membership/internal/testutil/membermock"
	"sesi-membership/internal/testutil/uowmock"
	"sesi-membership/internal/testutil/usermock"
	"sesi-membership/internal/usecase/auth"
	"sesi-membership/internal/usecase/intake"
	memberuc "sesi-membership/internal/usecase/member"
	"sesi-membership/internal/usecase/reference"
	"sesi-membership/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

type server struct {
	e       *echo.Echo
	admin   *user.User
	members *membermock.Repo
	apps    *applicationmock.Repo
}

func newServer(t *testing.T) *server {
	t.Helper()
	hash, err := auth.HashPassword("Admin@SESI2025")
	if err != nil {
		t.Fatal(err)
	}
	s := &server{
		admin:   &user.User{ID: "u1", Email: "admin@sesi.co.in", FullName: "SESI Admin", PasswordHash: hash, Role: user.RoleAdmin, IsActive: true},
		members: &membermock.Repo{},
		apps:    &applicationmock.Repo{},
	}
	users := &usermock.Repo{GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
		if email == s.admin.Email {
			return s.admin, nil
		}
		return nil, user.ErrNotFound
	}}
	regions := regionRepo()
	regions.ListStatesFn = func(context.Context) ([]region.State, error) {
		return []region.State{{ID: "TN", Name: "Tamil Nadu"}, {ID: "KA", Name: "Karnataka"}}, nil
	}
	regions.ListDistrictsFn = func(_ context.Context, stateID string) ([]region.District, error) {
		return []region.District{{ID: "KA-MYS", Name: "Mysuru", StateID: stateID}}, nil
	}

	uploads := t.TempDir()
	store, err := storage.NewLocal(uploads)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(uploads, "hello.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	history := &applicationmock.History{}
	tx := uowmock.Passthrough(uow.Repos{Applications: s.apps, History: history, Members: s.members}, nil)
	ref := reference.NewUsecase(regions, nil)
	authUC := auth.NewUsecase(users, "test-secret", time.Hour)

	s.e = newEchoWithValidator()
	Register(s.e, Routes{
		Health:       NewHandler(),
		Auth:         NewAuthHandler(authUC),
		Reference:    NewReferenceHandler(ref),
		Membership:   NewMembershipHandler(intake.NewUsecase(s.apps, tx, ref, store, nil)),
		Applications: NewApplicationHandler(review.NewUsecase(s.apps, history, s.members, tx, nil, nil)),
		Members:      NewMemberHandler(memberuc.NewUsecase(s.members, s.apps)),
		RequireAdmin: middleware.BearerAuth(authUC, auth.ErrInactive),
		UploadDir:    uploads,
	})
	return s
}

func (s *server) request(method, target, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *server) login(t *testing.T) string {
	t.Helper()
	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@sesi.co.in", "password": "Admin@SESI2025"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	var res auth.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.TokenType != "bearer" || res.User.Role != user.RoleAdmin {
		t.Fatalf("login result = %+v", res)
	}
	return res.AccessToken
}

func TestLoginAndVerify(t *testing.T) {
	s := newServer(t)
	token := s.login(t)

	rec := s.request(http.MethodGet, "/api/auth/verify", token, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"valid":true`) {
		t.Fatalf("verify: %d %s", rec.Code, rec.Body.String())
	}

	s.admin.IsActive = false
	if rec := s.request(http.MethodGet, "/api/auth/verify", token, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("disabled admin: status = %d", rec.Code)
	}
}

func TestLogin_Failures(t *testing.T) {
	s := newServer(t)
	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{name: "wrong password", body: map[string]string{"email": "admin@sesi.co.in", "password": "nope"}, code: http.StatusUnauthorized},
		{name: "unknown email", body: map[string]string{"email": "who@sesi.co.in", "password": "Admin@SESI2025"}, code: http.StatusUnauthorized},
		{name: "malformed email", body: map[string]string{"email": "admin", "password": "x"}, code: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if rec := s.request(http.MethodPost, "/api/auth/login", "", tc.body); rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}

	s.admin.IsActive = false
	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@sesi.co.in", "password": "Admin@SESI2025"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("disabled login: status = %d", rec.Code)
	}
}

func TestPublicReferenceRoutes(t *testing.T) {
	s := newServer(t)

	rec := s.request(http.MethodGet, "/api/public/states", "", nil)
	var states []region.State
	if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &states) != nil {
		t.Fatalf("states: %d %s", rec.Code, rec.Body.String())
	}
	if len(states) != 2 || states[0].Name != "Karnataka" {
		t.Fatalf("states not sorted by name: %+v", states)
	}

	if rec := s.request(http.MethodGet, "/api/public/districts/KA", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("districts: %d", rec.Code)
	}
	if rec := s.request(http.MethodGet, "/api/public/districts/XX", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown state: %d", rec.Code)
	}
}

func TestMemberRoutes(t *testing.T) {
	s := newServer(t)
	var gotFilter member.DirectoryFilter
	s.members.ListFn = func(_ context.Context, f member.DirectoryFilter) ([]member.Member, error) {
		gotFilter = f
		return []member.Member{{ID: "m1", FullName: "Dr. Asha Rao", Mobile: "9876543210", MembershipNumber: "SESI-2026-0001"}}, nil
	}
	s.members.CountFn = func(_ context.Context, activeOnly bool) (int64, error) {
		if activeOnly {
			return 1, nil
		}
		return 2, nil
	}
	s.apps.CountByStatusFn = func(context.Context) (map[application.Status]int64, error) {
		return map[application.Status]int64{application.StatusSubmitted: 3, application.StatusApproved: 2}, nil
	}

	rec := s.request(http.MethodGet, "/api/public/members?city=+Mysuru+", "", nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "9876543210") {
		t.Fatalf("directory: %d %s", rec.Code, rec.Body.String())
	}
	if !gotFilter.ActiveOnly || gotFilter.City != "Mysuru" {
		t.Fatalf("directory filter = %+v", gotFilter)
	}

	if rec := s.request(http.MethodGet, "/api/admin/members", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin members without token: %d", rec.Code)
	}
	token := s.login(t)
	if rec := s.request(http.MethodGet, "/api/admin/members", token, nil); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "9876543210") {
		t.Fatalf("admin members: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.request(http.MethodGet, "/api/admin/dashboard/stats", token, nil)
	var st memberuc.Stats
	if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &st) != nil {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}
	if st.TotalApplications != 5 || st.PendingApplications != 3 || st.ActiveMembers != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestRegister_HealthAndUploads(t *testing.T) {
	s := newServer(t)
	if rec := s.request(http.MethodGet, "/api/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}
	rec := s.request(http.MethodGet, "/api/uploads/hello.txt", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Fatalf("uploads: %d %q", rec.Code, rec.Body.String())
	}
	if rec := s.request(http.MethodGet, "/api/admin/applications", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin queue without token: %d", rec.Code)
	}
}
