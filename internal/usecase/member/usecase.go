package member

import (
	"context"
	"strings"
	"time"

	"sesi-membership/internal/domain/application"
	domain "sesi-membership/internal/domain/member"
)

// PublicMember is the directory entry shown to visitors.
type PublicMember struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Qualification    string    `json:"qualification"`
	Specialization   string    `json:"specialization"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Hospital         string    `json:"hospital"`
	MembershipNumber string    `json:"membership_number"`
	MembershipType   string    `json:"membership_type"`
	JoinedDate       time.Time `json:"joined_date"`
	CertificatePath  string    `json:"certificate_path,omitempty"`
	YearsExperience  int       `json:"years_experience"`
}

type DirectoryQuery struct {
	State  string
	City   string
	Search string
}

type Stats struct {
	TotalMembers        int64                        `json:"total_members"`
	ActiveMembers       int64                        `json:"active_members"`
	TotalApplications   int64                        `json:"total_applications"`
	PendingApplications int64                        `json:"pending_applications"`
	ByStatus            map[application.Status]int64 `json:"applications_by_status"`
}

type Usecase struct {
	members domain.Repository
	apps    application.Repository
}

func NewUsecase(members domain.Repository, apps application.Repository) *Usecase {
	return &Usecase{members: members, apps: apps}
}

// Directory lists active members for the public site.
func (u *Usecase) Directory(ctx context.Context, q DirectoryQuery) ([]PublicMember, error) {
	ms, err := u.members.List(ctx, domain.DirectoryFilter{
		State:      strings.TrimSpace(q.State),
		City:       strings.TrimSpace(q.City),
		Search:     strings.TrimSpace(q.Search),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]PublicMember, 0, len(ms))
	for _, m := range ms {
		out = append(out, PublicMember{
			ID:               m.ID,
			FullName:         m.FullName,
			Qualification:    m.Qualification,
			Specialization:   m.Specialization,
			City:             m.City,
			State:            m.State,
			Hospital:         m.Hospital,
			MembershipNumber: m.MembershipNumber,
			MembershipType:   m.MembershipType,
			JoinedDate:       m.JoinedDate,
			CertificatePath:  m.CertificatePath,
			YearsExperience:  m.YearsExperience,
		})
	}
	return out, nil
}

// List returns every member with contact details, for administrators.
func (u *Usecase) List(ctx context.Context) ([]domain.Member, error) {
	return u.members.List(ctx, domain.DirectoryFilter{})
}

// Stats backs the admin dashboard. Pending counts submitted applications only.
func (u *Usecase) Stats(ctx context.Context) (*Stats, error) {
	total, err := u.members.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	active, err := u.members.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	counts, err := u.apps.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	s := &Stats{TotalMembers: total, ActiveMembers: active, ByStatus: make(map[application.Status]int64, len(application.Statuses))}
	for _, st := range application.Statuses {
		s.ByStatus[st] = counts[st]
		s.TotalApplications += counts[st]
	}
	s.PendingApplications = counts[application.StatusSubmitted]
	return s, nil
}
