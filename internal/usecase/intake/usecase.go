package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/region"
	"sesi-membership/internal/domain/uow"

	"github.com/google/uuid"
)

const submittedMessage = "Application submitted successfully"

var ErrUnknownDocument = errors.New("unknown document type")

type DocumentStore interface {
	Validate(name string, size int64) error
	SaveUpload(ctx context.Context, folder, originalName string, size int64, r io.Reader) (string, error)
	RemoveFolder(ctx context.Context, folder string) error
}

type Notifier interface {
	ApplicationReceived(ctx context.Context, a *application.MembershipApplication) error
}

type Resolver interface {
	Resolve(ctx context.Context, stateID, districtID string) (*region.State, *region.District, error)
}

type Usecase struct {
	apps   application.Repository
	uow    uow.UnitOfWork
	ref    Resolver
	docs   DocumentStore
	notify Notifier
	now    func() time.Time
}

func NewUsecase(apps application.Repository, tx uow.UnitOfWork, ref Resolver, docs DocumentStore, n Notifier) *Usecase {
	return &Usecase{apps: apps, uow: tx, ref: ref, docs: docs, notify: n, now: time.Now}
}

// Submit stores the documents, records a submitted application with its
// first history row and notifies applicant and admin.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*Receipt, error) {
	files, err := orderUploads(in.Files)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := u.docs.Validate(f.FileName, f.Size); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Type, err)
		}
	}

	regNo := strings.TrimSpace(in.MedicalCouncilRegNo)
	switch _, err := u.apps.GetOpenByRegNo(ctx, regNo); {
	case err == nil:
		return nil, application.ErrDuplicateRegistration
	case !errors.Is(err, application.ErrNotFound):
		return nil, err
	}

	comm, err := u.address(ctx, in.CommAddress)
	if err != nil {
		return nil, fmt.Errorf("communication address: %w", err)
	}
	work, err := u.address(ctx, in.WorkAddress)
	if err != nil {
		return nil, fmt.Errorf("work address: %w", err)
	}

	a := &application.MembershipApplication{
		ID:                  uuid.NewString(),
		RegionMembership:    in.RegionMembership,
		MembershipType:      application.MembershipTypeLife,
		Title:               in.Title,
		FirstName:           strings.TrimSpace(in.FirstName),
		MiddleName:          strings.TrimSpace(in.MiddleName),
		LastName:            strings.TrimSpace(in.LastName),
		FullName:            application.ComposeFullName(in.Title, in.FirstName, in.MiddleName, in.LastName),
		Gender:              in.Gender,
		Mobile:              in.Mobile,
		Email:               strings.TrimSpace(in.Email),
		MedicalCouncilRegNo: regNo,
		Qualification:       in.Qualification,
		YearsExperience:     in.YearsExperience,
		CurrentAppointments: in.CurrentAppointments,
		SpecialisedPractice: in.SpecialisedPractice,
		ProposalName1:       in.ProposalName1,
		ProposalName2:       in.ProposalName2,
		CommAddress:         comm,
		WorkAddress:         work,
		WorkHospital:        in.WorkHospital,
		Status:              application.StatusSubmitted,
		SubmittedAt:         u.now().UTC(),
	}

	folder := "membership_applications/" + a.ID
	for _, f := range files {
		p, err := u.save(ctx, folder, f)
		if err != nil {
			u.discard(ctx, folder)
			return nil, fmt.Errorf("store %s: %w", f.Type, err)
		}
		a.Documents = append(a.Documents, application.Document{Type: f.Type, Path: p})
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return r.History.Append(ctx, &application.StatusChange{
			ApplicationID: a.ID,
			FromStatus:    application.StatusSubmitted,
			ToStatus:      application.StatusSubmitted,
			ChangedBy:     a.Email,
		})
	})
	if err != nil {
		u.discard(ctx, folder)
		return nil, err
	}
	slog.InfoContext(ctx, "membership application submitted", "application_id", a.ID, "documents", len(a.Documents))

	if u.notify != nil {
		if err := u.notify.ApplicationReceived(ctx, a); err != nil {
			slog.WarnContext(ctx, "application emails failed", "application_id", a.ID, "err", err)
		}
	}

	return &Receipt{Success: true, Message: submittedMessage, ApplicationID: a.ID, Email: a.Email}, nil
}

func (u *Usecase) GetPublic(ctx context.Context, id string) (*PublicView, error) {
	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PublicView{ID: a.ID, FullName: a.FullName, Email: a.Email, Status: a.Status, SubmittedAt: a.SubmittedAt}, nil
}

func (u *Usecase) address(ctx context.Context, in AddressInput) (application.Address, error) {
	s, d, err := u.ref.Resolve(ctx, in.StateID, in.DistrictID)
	if err != nil {
		return application.Address{}, err
	}
	return application.Address{
		Line:         strings.TrimSpace(in.Line),
		Country:      application.CountryIndia,
		StateID:      s.ID,
		StateName:    s.Name,
		DistrictID:   d.ID,
		DistrictName: d.Name,
		Pincode:      in.Pincode,
	}, nil
}

// discard drops the documents of an application that was not recorded.
func (u *Usecase) discard(ctx context.Context, folder string) {
	if err := u.docs.RemoveFolder(context.WithoutCancel(ctx), folder); err != nil {
		slog.WarnContext(ctx, "orphan documents left behind", "folder", folder, "err", err)
	}
}

func (u *Usecase) save(ctx context.Context, folder string, f Upload) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return u.docs.SaveUpload(ctx, folder, f.FileName, f.Size, rc)
}

// orderUploads checks that every required document is present once and
// returns required documents first, then optional ones.
func orderUploads(in []Upload) ([]Upload, error) {
	byType := make(map[application.DocumentType]Upload, len(in))
	for _, f := range in {
		if f.Open == nil || f.FileName == "" {
			continue
		}
		if !f.Type.Required() && !isOptional(f.Type) {
			return nil, fmt.Errorf("%w %q", ErrUnknownDocument, f.Type)
		}
		byType[f.Type] = f
	}
	out := make([]Upload, 0, len(byType))
	for _, t := range application.RequiredDocuments {
		f, ok := byType[t]
		if !ok {
			return nil, fmt.Errorf("%w: %s", application.ErrMissingDocument, t)
		}
		out = append(out, f)
	}
	for _, t := range application.OptionalDocuments {
		if f, ok := byType[t]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func isOptional(t application.DocumentType) bool {
	for _, o := range application.OptionalDocuments {
		if o == t {
			return true
		}
	}
	return false
}
