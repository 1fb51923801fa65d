package applicationmock

import (
	"context"

	domain "sesi-membership/internal/domain/application"
)

var (
	_ domain.Repository        = (*Repo)(nil)
	_ domain.HistoryRepository = (*History)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn              func(ctx context.Context, a *domain.MembershipApplication) error
	GetByIDFn             func(ctx context.Context, id string) (*domain.MembershipApplication, error)
	GetByIDForUpdateFn    func(ctx context.Context, id string) (*domain.MembershipApplication, error)
	GetOpenByRegNoFn      func(ctx context.Context, regNo string) (*domain.MembershipApplication, error)
	ListFn                func(ctx context.Context, f domain.ListFilter) ([]domain.MembershipApplication, error)
	CountByStatusFn       func(ctx context.Context) (map[domain.Status]int64, error)
	MaxMembershipNumberFn func(ctx context.Context, prefix string) (string, error)
	SaveFn                func(ctx context.Context, a *domain.MembershipApplication) error
	SetCertificatePathFn  func(ctx context.Context, id, path string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.MembershipApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.MembershipApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.MembershipApplication, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenByRegNo(ctx context.Context, regNo string) (*domain.MembershipApplication, error) {
	if m.GetOpenByRegNoFn != nil {
		return m.GetOpenByRegNoFn(ctx, regNo)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.MembershipApplication, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) MaxMembershipNumber(ctx context.Context, prefix string) (string, error) {
	if m.MaxMembershipNumberFn != nil {
		return m.MaxMembershipNumberFn(ctx, prefix)
	}
	return "", nil
}

func (m *Repo) Save(ctx context.Context, a *domain.MembershipApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) SetCertificatePath(ctx context.Context, id, path string) error {
	if m.SetCertificatePathFn != nil {
		return m.SetCertificatePathFn(ctx, id, path)
	}
	return nil
}

// History is a function-backed mock of domain.HistoryRepository.
type History struct {
	AppendFn            func(ctx context.Context, c *domain.StatusChange) error
	ListByApplicationFn func(ctx context.Context, applicationID string) ([]domain.StatusChange, error)
}

func (m *History) Append(ctx context.Context, c *domain.StatusChange) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, c)
	}
	return nil
}

func (m *History) ListByApplication(ctx context.Context, applicationID string) ([]domain.StatusChange, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}
