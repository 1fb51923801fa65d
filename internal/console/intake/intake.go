package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"sesi-membership/internal/domain/application"
	"sesi-membership/pkg/client"

	"github.com/google/uuid"
)

const fallbackMessage = "submission failed"

var ErrUnknownDistrict = errors.New("district is not in the list for the selected state")

type API interface {
	States(ctx context.Context) ([]client.State, error)
	Districts(ctx context.Context, stateID string) ([]client.District, error)
	Apply(ctx context.Context, req client.ApplyRequest) (*client.Receipt, error)
}

// AddressPicker keeps an address's district list in step with its state.
type AddressPicker struct {
	api       API
	addr      *Address
	districts []client.District
}

// SelectState picks the state, reloads its districts and clears the district.
func (p *AddressPicker) SelectState(ctx context.Context, stateID string) error {
	p.addr.StateID = stateID
	p.addr.DistrictID = ""
	p.districts = nil
	if stateID == "" {
		return nil
	}
	ds, err := p.api.Districts(ctx, stateID)
	if err != nil {
		return fmt.Errorf("load districts: %w", err)
	}
	p.districts = ds
	return nil
}

func (p *AddressPicker) SelectDistrict(id string) error {
	for _, d := range p.districts {
		if d.ID == id {
			p.addr.DistrictID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDistrict, id)
}

func (p *AddressPicker) Districts() []client.District { return p.districts }

func (p *AddressPicker) reset() { p.districts = nil }

// SubmitError carries the message to show when a submission is refused.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

type Receipt struct {
	ApplicationID string
	Email         string
	Message       string
}

// Intake is one applicant's form session.
type Intake struct {
	api  API
	Form Form
	Comm *AddressPicker
	Work *AddressPicker

	// key is reused across retries of the same form.
	key string
}

func New(api API) *Intake {
	in := &Intake{api: api}
	in.Comm = &AddressPicker{api: api, addr: &in.Form.CommAddress}
	in.Work = &AddressPicker{api: api, addr: &in.Form.WorkAddress}
	return in
}

func (in *Intake) States(ctx context.Context) ([]client.State, error) {
	return in.api.States(ctx)
}

// Reset clears the form and both district lists.
func (in *Intake) Reset() {
	in.Form = Form{}
	in.Comm.reset()
	in.Work.reset()
	in.key = ""
}

// Submit validates the form and sends it with its documents as a single
// request. On success the form is reset. On failure the form is kept and the
// error's message is the server's, or a generic one.
func (in *Intake) Submit(ctx context.Context) (*Receipt, error) {
	if err := in.Form.Validate(); err != nil {
		return nil, err
	}

	files, closeAll, err := openFiles(in.Form.Files)
	if err != nil {
		return nil, &SubmitError{Message: err.Error(), Err: err}
	}
	defer closeAll()

	if in.key == "" {
		in.key = uuid.NewString()
	}
	rec, err := in.api.Apply(ctx, client.ApplyRequest{
		Fields:         in.Form.fields(),
		Files:          files,
		IdempotencyKey: in.key,
	})
	if err != nil {
		slog.DebugContext(ctx, "application submit failed", "err", err)
		if rejected(err) {
			// the server stored this answer under the key; an edited form needs a fresh one
			in.key = ""
		}
		return nil, &SubmitError{Message: client.Message(err, fallbackMessage), Err: err}
	}

	in.Reset()
	return &Receipt{ApplicationID: rec.ApplicationID, Email: rec.Email, Message: rec.Message}, nil
}

// rejected reports a definitive 4xx answer. Transport errors and 5xx leave
// nothing stored, so a retry may keep the key.
func rejected(err error) bool {
	var ae *client.APIError
	return errors.As(err, &ae) && ae.StatusCode >= 400 && ae.StatusCode < 500
}

// openFiles opens every attached document in upload order.
func openFiles(paths map[string]string) ([]client.File, func(), error) {
	var (
		files   []client.File
		closers []io.Closer
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	order := append(append([]application.DocumentType{}, application.RequiredDocuments...), application.OptionalDocuments...)
	for _, t := range order {
		p := paths[string(t)]
		if p == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", t, err)
		}
		closers = append(closers, f)
		files = append(files, client.File{Field: string(t), Name: filepath.Base(p), Reader: f})
	}
	return files, closeAll, nil
}
