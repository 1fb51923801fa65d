package review

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"sesi-membership/internal/certificate"
	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/member"
	"sesi-membership/internal/domain/uow"

	"github.com/google/uuid"
)

const certificateFolder = "certificates"

type CertificateStore interface {
	Save(ctx context.Context, folder, name string, r io.Reader) (string, error)
}

type Notifier interface {
	Approved(ctx context.Context, a *application.MembershipApplication, certName string, cert []byte) error
}

type Usecase struct {
	apps    application.Repository
	history application.HistoryRepository
	members member.Repository
	uow     uow.UnitOfWork
	certs   CertificateStore
	notify  Notifier
	now     func() time.Time
}

func NewUsecase(apps application.Repository, history application.HistoryRepository, members member.Repository,
	tx uow.UnitOfWork, certs CertificateStore, n Notifier) *Usecase {
	return &Usecase{apps: apps, history: history, members: members, uow: tx, certs: certs, notify: n, now: time.Now}
}

// List returns applications newest first; "" and "all" mean no filter.
func (u *Usecase) List(ctx context.Context, status string) ([]application.MembershipApplication, error) {
	f := application.ListFilter{}
	if status != "" && !strings.EqualFold(status, "all") {
		s, err := application.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = s
	}
	return u.apps.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id string) (*Detail, error) {
	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h, err := u.history.ListByApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{MembershipApplication: a, History: h}, nil
}

// UpdateStatus applies a reviewer decision. Re-submitting the current status
// only updates the notes, which is how notes are saved on terminal records.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*UpdateResult, error) {
	target, err := application.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var (
		snapshot  application.MembershipApplication
		created   *member.Member
		firstTime bool
	)
	err = u.uow.WithinApplicationTx(ctx, in.ID, func(r uow.Repos, a *application.MembershipApplication) error {
		from := a.Status
		if !from.CanTransition(target) {
			return fmt.Errorf("%w: %s -> %s", application.ErrInvalidTransition, from, target)
		}

		now := u.now().UTC()
		if in.Notes != nil {
			n := *in.Notes
			a.AdminNotes = &n
		}
		if target != application.StatusSubmitted && a.ReviewedAt == nil {
			a.ReviewedAt = &now
			a.ReviewedBy = in.Reviewer
		}

		if target == application.StatusApproved && from != application.StatusApproved {
			last, err := r.Applications.MaxMembershipNumber(ctx, certificate.NumberPrefix(now.Year()))
			if err != nil {
				return err
			}
			num, err := certificate.NextNumber(now.Year(), last)
			if err != nil {
				return err
			}
			a.MembershipNumber = &num
			a.ApprovedAt = &now

			created = memberFrom(a, now)
			if err := r.Members.Create(ctx, created); err != nil {
				return err
			}
			firstTime = true
		}

		a.Status = target
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &application.StatusChange{
			ApplicationID: a.ID,
			FromStatus:    from,
			ToStatus:      target,
			ChangedBy:     in.Reviewer,
			Notes:         in.Notes,
		}); err != nil {
			return err
		}
		snapshot = *a
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "application status updated",
		"application_id", snapshot.ID,
		"status", snapshot.Status,
		"reviewer", in.Reviewer,
	)

	res := &UpdateResult{
		Success:     true,
		Message:     fmt.Sprintf("Application status updated to %s", snapshot.Status),
		Application: &snapshot,
	}
	if firstTime {
		u.issueCertificate(ctx, &snapshot, created)
		res.Message = fmt.Sprintf("Application approved! Membership number %s generated. Member profile created.", snapshot.Number())
		res.MembershipNumber = snapshot.Number()
		res.CertificatePath = snapshot.CertificatePath
		res.MemberID = created.ID
	}
	return res, nil
}

// issueCertificate runs after the approval committed; failures are logged
// and leave the approval in place.
func (u *Usecase) issueCertificate(ctx context.Context, a *application.MembershipApplication, m *member.Member) {
	log := slog.With("application_id", a.ID, "membership_number", a.Number())

	var buf bytes.Buffer
	err := certificate.Render(&buf, certificate.Data{
		FullName:         a.FullName,
		Qualification:    a.Qualification,
		Hospital:         a.WorkHospital,
		MembershipType:   a.MembershipType,
		MembershipNumber: a.Number(),
		ApprovedAt:       *a.ApprovedAt,
	})
	if err != nil {
		log.ErrorContext(ctx, "certificate render failed", "err", err)
		return
	}
	name := certificate.FileName(a.Number())

	if u.certs != nil {
		p, err := u.certs.Save(ctx, certificateFolder, name, bytes.NewReader(buf.Bytes()))
		if err != nil {
			log.ErrorContext(ctx, "certificate store failed", "err", err)
		} else {
			a.CertificatePath = p
			m.CertificatePath = p
			if err := u.apps.SetCertificatePath(ctx, a.ID, p); err != nil {
				log.ErrorContext(ctx, "certificate path update failed", "table", "membership_applications", "err", err)
			}
			if err := u.members.SetCertificatePath(ctx, m.ID, p); err != nil {
				log.ErrorContext(ctx, "certificate path update failed", "table", "members", "err", err)
			}
		}
	}

	if u.notify != nil {
		if err := u.notify.Approved(ctx, a, name, buf.Bytes()); err != nil {
			log.WarnContext(ctx, "approval email failed", "err", err)
		}
	}
}

func memberFrom(a *application.MembershipApplication, joined time.Time) *member.Member {
	return &member.Member{
		ID:                  uuid.NewString(),
		FullName:            a.FullName,
		Email:               a.Email,
		Mobile:              a.Mobile,
		Qualification:       a.Qualification,
		Specialization:      a.SpecialisedPractice,
		Hospital:            a.WorkHospital,
		City:                a.WorkAddress.DistrictName,
		State:               a.WorkAddress.StateName,
		MembershipType:      a.MembershipType,
		MembershipNumber:    a.Number(),
		JoinedDate:          joined,
		Status:              member.StatusActive,
		ApplicationID:       a.ID,
		YearsExperience:     a.YearsExperience,
		MedicalCouncilRegNo: a.MedicalCouncilRegNo,
	}
}
