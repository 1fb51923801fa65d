package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *MemorySession, *int) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	sess := NewMemorySession()
	hooked := new(int)
	c := New(Options{BaseURL: srv.URL + "/", Session: sess, OnUnauthorized: func() { *hooked++ }})
	return c, sess, hooked
}

func TestLogin_StoresSessionWithoutSendingToken(t *testing.T) {
	c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@sesi.co.in", body["email"])
		writeJSON(w, http.StatusOK, LoginResult{AccessToken: "tok-1", TokenType: "bearer", User: User{Email: body["email"], Role: "admin"}})
	})
	require.NoError(t, sess.Save("stale", nil))

	res, err := c.Login(context.Background(), "admin@sesi.co.in", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.AccessToken)
	assert.Equal(t, "tok-1", sess.Token())
	assert.Equal(t, "admin", sess.User().Role)
}

func TestLogin_BadCredentialsIsNotASessionExpiry(t *testing.T) {
	c, sess, hooked := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	})
	require.NoError(t, sess.Save("keep", nil))

	_, err := c.Login(context.Background(), "a@b.c", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.Zero(t, *hooked)
	assert.Equal(t, "keep", sess.Token())
}

func TestBearerTokenAttached(t *testing.T) {
	c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "submitted", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, []Application{{ID: "a1", Status: "submitted"}})
	})
	require.NoError(t, sess.Save("tok-1", nil))

	apps, err := c.ListApplications(context.Background(), "submitted")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "a1", apps[0].ID)
}

func TestUnauthorized_ClearsSessionAndRunsHook(t *testing.T) {
	calls := []func(*Client) error{
		func(c *Client) error { _, err := c.ListApplications(context.Background(), "all"); return err },
		func(c *Client) error { _, err := c.GetApplication(context.Background(), "a1"); return err },
		func(c *Client) error { _, err := c.UpdateStatus(context.Background(), "a1", "approved", nil); return err },
		func(c *Client) error { _, err := c.Stats(context.Background()); return err },
	}
	for i, call := range calls {
		c, sess, hooked := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
		})
		require.NoError(t, sess.Save("expired", &User{Email: "admin@sesi.co.in"}))

		err := call(c)
		assert.ErrorIs(t, err, ErrUnauthorized, "call %d", i)
		assert.Equal(t, 1, *hooked, "call %d", i)
		assert.Empty(t, sess.Token(), "call %d", i)
		assert.Nil(t, sess.User(), "call %d", i)
	}
}

func TestAPIError_Messages(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{name: "error field", code: 409, body: `{"error":"status transition not allowed"}`, want: "status transition not allowed"},
		{name: "detail string", code: 400, body: `{"detail":"File size exceeds 5MB limit"}`, want: "File size exceeds 5MB limit"},
		{name: "detail list", code: 422, body: `{"detail":[{"loc":["body"]}]}`, want: "Unprocessable Entity"},
		{name: "not json", code: 502, body: `bad gateway`, want: "Bad Gateway"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, hooked := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := c.GetApplication(context.Background(), "a1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.code, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
			assert.Equal(t, tc.want, Message(err, "fallback"))
			assert.Zero(t, *hooked)
		})
	}
	assert.Equal(t, "fallback", Message(errors.New("dial tcp: refused"), "fallback"))
}

func TestUpdateStatus_NotesParam(t *testing.T) {
	var got []string
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/applications/a1/status", r.URL.Path)
		q := r.URL.Query()
		if q.Has("admin_notes") {
			got = append(got, "notes="+q.Get("admin_notes"))
		} else {
			got = append(got, "no notes")
		}
		writeJSON(w, http.StatusOK, UpdateResult{Success: true, MembershipNumber: "SESI-2026-0001"})
	})
	empty, text := "", "ok to approve"

	res, err := c.UpdateStatus(context.Background(), "a1", "approved", &text)
	require.NoError(t, err)
	assert.Equal(t, "SESI-2026-0001", res.MembershipNumber)
	_, err = c.UpdateStatus(context.Background(), "a1", "approved", &empty)
	require.NoError(t, err)
	_, err = c.UpdateStatus(context.Background(), "a1", "approved", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"notes=ok to approve", "notes=", "no notes"}, got)
}

func TestApply_Multipart(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "9876543210", r.FormValue("mobile"))
		assert.Equal(t, "key-1", r.Header.Get(HeaderIdempotencyKey))
		f, fh, err := r.FormFile("mbbs_certificate")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "mbbs.pdf", fh.Filename)
		assert.Equal(t, "pdf-bytes", string(b))
		writeJSON(w, http.StatusCreated, Receipt{Success: true, ApplicationID: "a1", Email: r.FormValue("email")})
	})

	rec, err := c.Apply(context.Background(), ApplyRequest{
		Fields:         map[string]string{"mobile": "9876543210", "email": "asha@example.com"},
		Files:          []File{{Field: "mbbs_certificate", Name: "mbbs.pdf", Reader: strings.NewReader("pdf-bytes")}},
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, Receipt{Success: true, ApplicationID: "a1", Email: "asha@example.com"}, *rec)
}

func TestReferenceAndDirectory(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/public/states":
			writeJSON(w, http.StatusOK, []State{{ID: "KA", Name: "Karnataka"}})
		case "/api/public/districts/KA":
			writeJSON(w, http.StatusOK, []District{{ID: "KA-mysuru", Name: "Mysuru", StateID: "KA"}})
		case "/api/public/members":
			assert.Equal(t, "Mysuru", r.URL.Query().Get("city"))
			assert.False(t, r.URL.Query().Has("state"))
			writeJSON(w, http.StatusOK, []Member{{ID: "m1"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	states, err := c.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Karnataka", states[0].Name)

	ds, err := c.Districts(ctx, "KA")
	require.NoError(t, err)
	assert.Equal(t, "KA", ds[0].StateID)

	ms, err := c.Directory(ctx, DirectoryQuery{City: "Mysuru"})
	require.NoError(t, err)
	assert.Len(t, ms, 1)

	_, err = c.Districts(ctx, "XX")
	assert.Error(t, err)
}

func TestFileURL(t *testing.T) {
	c := New(Options{BaseURL: "http://sesi.test:8080/"})
	assert.Equal(t, "http://sesi.test:8080/api/uploads/certificates/SESI_Certificate_SESI-2026-0001.pdf",
		c.FileURL("/uploads/certificates/SESI_Certificate_SESI-2026-0001.pdf"))
	assert.Equal(t, "", c.FileURL(""))
	assert.Equal(t, "https://cdn.test/x.pdf", c.FileURL("https://cdn.test/x.pdf"))
}
