package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sesi-membership/internal/adapter/storage"
	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/region"
	"sesi-membership/internal/domain/uow"
	"sesi-membership/internal/testutil/applicationmock"
	"sesi-membership/internal/testutil/regionmock"
	"sesi-membership/internal/testutil/uowmock"
	"sesi-membership/internal/usecase/intake"
	"sesi-membership/internal/usecase/reference"

	"github.com/labstack/echo/v4"
)

func regionRepo() *regionmock.Repo {
	return &regionmock.Repo{
		GetStateFn: func(_ context.Context, id string) (*region.State, error) {
			if id != "KA" {
				return nil, region.ErrStateNotFound
			}
			return &region.State{ID: "KA", Name: "Karnataka"}, nil
		},
		GetDistrictFn: func(_ context.Context, id string) (*region.District, error) {
			switch id {
			case "KA-MYS":
				return &region.District{ID: id, Name: "Mysuru", StateID: "KA"}, nil
			case "TN-CHN":
				return &region.District{ID: id, Name: "Chennai", StateID: "TN"}, nil
			}
			return nil, region.ErrDistrictNotFound
		},
	}
}

func applyFields() map[string]string {
	return map[string]string{
		"region_membership":      "National",
		"membership_type":        "Life Member",
		"title":                  "Dr.",
		"first_name":             "Asha",
		"last_name":              "Rao",
		"mobile":                 "9876543210",
		"email":                  "asha@example.com",
		"gender":                 "Female",
		"medical_council_reg_no": "KMC-12345",
		"qualification":          "MS Ortho",
		"current_appointments":   "Consultant",
		"specialised_practice":   "Arthroscopy",
		"years_experience":       "8",
		"proposal_name_1":        "Dr. A",
		"proposal_name_2":        "Dr. B",
		"comm_address":           "12 MG Road",
		"comm_state_id":          "KA",
		"comm_district_id":       "KA-MYS",
		"comm_pincode":           "570001",
		"work_address":           "City Hospital",
		"work_state_id":          "KA",
		"work_district_id":       "KA-MYS",
		"work_pincode":           "570002",
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = io.WriteString(fw, "%PDF-1.4 test")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func requiredFiles() map[string]string {
	return map[string]string{
		"mbbs_certificate":               "mbbs.pdf",
		"orthopedic_certificate":         "ortho.pdf",
		"state_registration_certificate": "reg.png",
	}
}

type membershipFixture struct {
	handler *MembershipHandler
	apps    *applicationmock.Repo
	created *application.MembershipApplication
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	f := &membershipFixture{apps: &applicationmock.Repo{}}
	f.apps.CreateFn = func(_ context.Context, a *application.MembershipApplication) error {
		f.created = a
		return nil
	}
	store, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: f.apps, History: &applicationmock.History{}}, nil)
	uc := intake.NewUsecase(f.apps, tx, reference.NewUsecase(regionRepo(), nil), store, nil)
	f.handler = NewMembershipHandler(uc)
	return f
}

func doApply(t *testing.T, h *MembershipHandler, fields, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	body, ct := multipartBody(t, fields, files)
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/membership/apply", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	return rec
}

func TestApply_Success(t *testing.T) {
	f := newMembershipFixture(t)
	files := requiredFiles()
	files["aadhar"] = "aadhar.jpg"

	rec := doApply(t, f.handler, applyFields(), files)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var r intake.Receipt
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !r.Success || r.Email != "asha@example.com" || r.ApplicationID != f.created.ID {
		t.Fatalf("receipt = %+v", r)
	}
	if len(f.created.Documents) != 4 || f.created.Documents[3].Type != application.DocAadhar {
		t.Fatalf("documents = %+v", f.created.Documents)
	}
	if f.created.CommAddress.DistrictName != "Mysuru" || f.created.YearsExperience != 8 {
		t.Fatalf("created = %+v", f.created)
	}
}

func TestApply_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		msg   string
	}{
		{name: "nine digit mobile", field: "mobile", value: "987654321", msg: "exactly 10 digits"},
		{name: "short pincode", field: "work_pincode", value: "57000", msg: "exactly 6 digits"},
		{name: "bad email", field: "email", value: "asha", msg: "valid email"},
		{name: "bad region", field: "region_membership", value: "Local", msg: "one of"},
		{name: "missing first name", field: "first_name", value: "", msg: "is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newMembershipFixture(t)
			fields := applyFields()
			fields[tc.field] = tc.value
			rec := doApply(t, f.handler, fields, requiredFiles())
			if rec.Code != stdhttp.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
			}
			if er := decodeError(t, rec); !containsFieldMsg(er.Details, tc.field, tc.msg) {
				t.Fatalf("details = %+v", er.Details)
			}
			if f.created != nil {
				t.Fatalf("nothing may be stored")
			}
		})
	}
}

func TestApply_BusinessErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fields, files map[string]string, f *membershipFixture)
		code   int
		msg    string
	}{
		{
			name:   "missing required document",
			mutate: func(_, files map[string]string, _ *membershipFixture) { delete(files, "orthopedic_certificate") },
			code:   stdhttp.StatusBadRequest,
			msg:    "orthopedic_certificate",
		},
		{
			name:   "file type",
			mutate: func(_, files map[string]string, _ *membershipFixture) { files["mbbs_certificate"] = "mbbs.exe" },
			code:   stdhttp.StatusBadRequest,
			msg:    "file type not allowed",
		},
		{
			name:   "district of other state",
			mutate: func(fields, _ map[string]string, _ *membershipFixture) { fields["work_district_id"] = "TN-CHN" },
			code:   stdhttp.StatusUnprocessableEntity,
			msg:    "does not belong",
		},
		{
			name: "duplicate registration",
			mutate: func(_, _ map[string]string, f *membershipFixture) {
				f.apps.GetOpenByRegNoFn = func(context.Context, string) (*application.MembershipApplication, error) {
					return &application.MembershipApplication{ID: "old"}, nil
				}
			},
			code: stdhttp.StatusConflict,
			msg:  "already exists",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newMembershipFixture(t)
			fields, files := applyFields(), requiredFiles()
			tc.mutate(fields, files, f)
			rec := doApply(t, f.handler, fields, files)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d, body=%s", rec.Code, tc.code, rec.Body.String())
			}
			if er := decodeError(t, rec); !strings.Contains(er.Error, tc.msg) {
				t.Fatalf("error = %q, want it to contain %q", er.Error, tc.msg)
			}
		})
	}
}

func TestApply_NotMultipart(t *testing.T) {
	f := newMembershipFixture(t)
	e := newEchoWithValidator()
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/membership/apply", mustJSON(map[string]string{"email": "x"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := f.handler.Apply(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetApplication_Public(t *testing.T) {
	f := newMembershipFixture(t)
	f.apps.GetByIDFn = func(_ context.Context, id string) (*application.MembershipApplication, error) {
		if id != "app-1" {
			return nil, application.ErrNotFound
		}
		return &application.MembershipApplication{ID: id, FullName: "Dr. Asha Rao", Mobile: "9876543210", Status: application.StatusSubmitted}, nil
	}
	e := newEchoWithValidator()

	for _, tc := range []struct {
		id   string
		code int
	}{{"app-1", stdhttp.StatusOK}, {"nope", stdhttp.StatusNotFound}} {
		req := httptest.NewRequest(stdhttp.MethodGet, "/api/membership/applications/"+tc.id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(tc.id)
		if err := f.handler.GetApplication(c); err != nil {
			t.Fatalf("GetApplication error: %v", err)
		}
		if rec.Code != tc.code {
			t.Fatalf("%s: status = %d", tc.id, rec.Code)
		}
		if tc.code == stdhttp.StatusOK && strings.Contains(rec.Body.String(), "9876543210") {
			t.Fatalf("public view must not expose the mobile number")
		}
	}
}
