// Package queue is the reviewer's list of applications with status and
// text filters applied on the client.
package queue

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sesi-membership/internal/domain/application"
	"sesi-membership/pkg/client"
)

// StatusAll disables the status filter.
const StatusAll = "all"

type API interface {
	ListApplications(ctx context.Context, status string) ([]client.Application, error)
}

// Filter keeps applications matching status (or StatusAll) and whose full
// name, email or mobile contains search, ignoring case.
func Filter(apps []client.Application, status, search string) []client.Application {
	needle := strings.ToLower(search)
	out := make([]client.Application, 0, len(apps))
	for _, a := range apps {
		if status != "" && status != StatusAll && a.Status != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.FullName), needle) &&
			!strings.Contains(strings.ToLower(a.Email), needle) &&
			!strings.Contains(a.Mobile, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

type Counts struct {
	Total    int
	ByStatus map[string]int
}

// Count tallies apps by status. Every known status is present.
func Count(apps []client.Application) Counts {
	c := Counts{Total: len(apps), ByStatus: make(map[string]int, len(application.Statuses))}
	for _, s := range application.Statuses {
		c.ByStatus[string(s)] = 0
	}
	for _, a := range apps {
		c.ByStatus[a.Status]++
	}
	return c
}

type Queue struct {
	api API

	all     []client.Application
	visible []client.Application
	status  string
	search  string
	loaded  bool
}

func New(api API) *Queue {
	return &Queue{api: api, status: StatusAll}
}

// Load fetches the full list once. An unauthorized error is returned; the
// client has already cleared the session. Other failures are logged and
// leave an empty list.
func (q *Queue) Load(ctx context.Context) error {
	apps, err := q.api.ListApplications(ctx, StatusAll)
	q.loaded = true
	if err != nil {
		q.all = nil
		q.refresh()
		if errors.Is(err, client.ErrUnauthorized) {
			return err
		}
		slog.ErrorContext(ctx, "load applications failed", "err", err)
		return nil
	}
	q.all = apps
	q.refresh()
	return nil
}

func (q *Queue) SetStatus(s string) {
	if s == "" {
		s = StatusAll
	}
	q.status = s
	q.refresh()
}

func (q *Queue) SetSearch(s string) {
	q.search = s
	q.refresh()
}

func (q *Queue) refresh() { q.visible = Filter(q.all, q.status, q.search) }

func (q *Queue) Visible() []client.Application { return q.visible }

// Counts covers the whole list, not the filtered view.
func (q *Queue) Counts() Counts { return Count(q.all) }

func (q *Queue) Loaded() bool { return q.loaded }

// Empty is true once loaded with nothing to show.
func (q *Queue) Empty() bool { return q.loaded && len(q.visible) == 0 }

func (q *Queue) Status() string { return q.status }
func (q *Queue) Search() string { return q.search }
