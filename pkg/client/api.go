package client

import (
	"context"
	"net/http"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	r := c.rc.R().SetBody(map[string]string{"email": email, "password": password})
	if _, err := c.do(anonymous(ctx), r, http.MethodPost, "/api/auth/login", &out); err != nil {
		return nil, err
	}
	if err := c.session.Save(out.AccessToken, &out.User); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout() error { return c.session.Clear() }

// Verify checks the stored token with the server.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	var out User
	if _, err := c.do(ctx, c.rc.R(), http.MethodGet, "/api/auth/verify", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) States(ctx context.Context) ([]State, error) {
	var out []State
	if _, err := c.do(ctx, c.rc.R(), http.MethodGet, "/api/public/states", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Districts(ctx context.Context, stateID string) ([]District, error) {
	var out []District
	r := c.rc.R().SetPathParam("state_id", stateID)
	if _, err := c.do(ctx, r, http.MethodGet, "/api/public/districts/{state_id}", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply submits the intake form as one multipart request.
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (*Receipt, error) {
	r := c.rc.R().SetFormData(req.Fields)
	for _, f := range req.Files {
		r.SetFileReader(f.Field, f.Name, f.Reader)
	}
	if req.IdempotencyKey != "" {
		r.SetHeader(HeaderIdempotencyKey, req.IdempotencyKey)
	}
	var out Receipt
	if _, err := c.do(ctx, r, http.MethodPost, "/api/membership/apply", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PublicApplication(ctx context.Context, id string) (*PublicApplication, error) {
	var out PublicApplication
	r := c.rc.R().SetPathParam("id", id)
	if _, err := c.do(ctx, r, http.MethodGet, "/api/membership/applications/{id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApplications returns the review queue; status "" or "all" lists everything.
func (c *Client) ListApplications(ctx context.Context, status string) ([]Application, error) {
	var out []Application
	r := c.rc.R()
	if status != "" && status != "all" {
		r.SetQueryParam("status", status)
	}
	if _, err := c.do(ctx, r, http.MethodGet, "/api/admin/applications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*ApplicationDetail, error) {
	var out ApplicationDetail
	r := c.rc.R().SetPathParam("id", id)
	if _, err := c.do(ctx, r, http.MethodGet, "/api/admin/applications/{id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves an application to status. A nil notes leaves the stored
// notes untouched; a pointer to "" clears them.
func (c *Client) UpdateStatus(ctx context.Context, id, status string, notes *string) (*UpdateResult, error) {
	r := c.rc.R().SetPathParam("id", id).SetQueryParam("status", status)
	if notes != nil {
		r.SetQueryParam("admin_notes", *notes)
	}
	var out UpdateResult
	if _, err := c.do(ctx, r, http.MethodPut, "/api/admin/applications/{id}/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportApplications downloads the queue as an xlsx workbook.
func (c *Client) ExportApplications(ctx context.Context, status string) ([]byte, error) {
	r := c.rc.R()
	if status != "" && status != "all" {
		r.SetQueryParam("status", status)
	}
	resp, err := c.do(ctx, r, http.MethodGet, "/api/admin/applications/export", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) Members(ctx context.Context) ([]Member, error) {
	var out []Member
	if _, err := c.do(ctx, c.rc.R(), http.MethodGet, "/api/admin/members", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Directory(ctx context.Context, q DirectoryQuery) ([]Member, error) {
	r := c.rc.R()
	for k, v := range map[string]string{"state": q.State, "city": q.City, "search": q.Search} {
		if v != "" {
			r.SetQueryParam(k, v)
		}
	}
	var out []Member
	if _, err := c.do(ctx, r, http.MethodGet, "/api/public/members", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if _, err := c.do(ctx, c.rc.R(), http.MethodGet, "/api/admin/dashboard/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
