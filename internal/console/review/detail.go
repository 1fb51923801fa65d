// Package review is the reviewer's view of one application and the
// actions that move it through the workflow.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"sesi-membership/internal/domain/application"
	"sesi-membership/pkg/client"
)

var (
	ErrDeclined  = errors.New("action cancelled")
	ErrBusy      = errors.New("an update is already in progress")
	ErrNotLoaded = errors.New("no application loaded")
)

type API interface {
	GetApplication(ctx context.Context, id string) (*client.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) (*client.UpdateResult, error)
}

// Confirmer asks the reviewer a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// ActionError is a failed update; Message is safe to show.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }
func (e *ActionError) Unwrap() error { return e.Err }

type Detail struct {
	api     API
	confirm Confirmer

	mu       sync.Mutex
	inFlight bool
	app      *client.ApplicationDetail
	notes    string
}

func New(api API, confirm Confirmer) *Detail {
	return &Detail{api: api, confirm: confirm}
}

// Load fetches the application and resets the notes draft to the stored notes.
func (d *Detail) Load(ctx context.Context, id string) error {
	app, err := d.api.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.app = app
	d.notes = app.Notes()
	d.mu.Unlock()
	return nil
}

func (d *Detail) Application() *client.ApplicationDetail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.app
}

func (d *Detail) Notes() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notes
}

func (d *Detail) SetNotes(s string) {
	d.mu.Lock()
	d.notes = s
	d.mu.Unlock()
}

// Actions lists the quick-action targets. A terminal application has none.
func (d *Detail) Actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.app == nil {
		return nil
	}
	cur := application.Status(d.app.Status)
	var out []string
	for _, s := range cur.Next() {
		if s != cur {
			out = append(out, string(s))
		}
	}
	return out
}

// CanEditNotes is true in every status, terminal ones included.
func (d *Detail) CanEditNotes() bool { return true }

func (d *Detail) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

// Transition asks for confirmation and moves the application to target with
// the current notes draft. The server decides whether the move is legal.
func (d *Detail) Transition(ctx context.Context, target string) (string, error) {
	if d.Application() == nil {
		return "", ErrNotLoaded
	}
	if d.Busy() {
		return "", ErrBusy
	}
	if !d.confirm.Confirm(fmt.Sprintf("Are you sure you want to %s this application?", target)) {
		return "", ErrDeclined
	}
	res, err := d.update(ctx, target, "failed to update status")
	if err != nil {
		return "", err
	}
	if res.MembershipNumber != "" {
		return fmt.Sprintf("Application Approved! Membership Number: %s. Certificate generated and sent to member via email.", res.MembershipNumber), nil
	}
	return fmt.Sprintf("Application %s successfully!", target), nil
}

// SaveNotes stores notes without changing the status.
func (d *Detail) SaveNotes(ctx context.Context, notes string) error {
	d.mu.Lock()
	if d.app == nil {
		d.mu.Unlock()
		return ErrNotLoaded
	}
	status := d.app.Status
	d.notes = notes
	d.mu.Unlock()

	_, err := d.update(ctx, status, "failed to save notes")
	return err
}

func (d *Detail) update(ctx context.Context, status, failure string) (*client.UpdateResult, error) {
	d.mu.Lock()
	if d.app == nil {
		d.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if d.inFlight {
		d.mu.Unlock()
		return nil, ErrBusy
	}
	d.inFlight = true
	id, notes := d.app.ID, d.notes
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	res, err := d.api.UpdateStatus(ctx, id, status, &notes)
	if err != nil {
		slog.DebugContext(ctx, "status update failed", "id", id, "status", status, "err", err)
		return nil, &ActionError{Message: failure, Err: err}
	}
	if err := d.Load(ctx, id); err != nil {
		slog.WarnContext(ctx, "reload after update failed", "id", id, "err", err)
	}
	return res, nil
}
