package membermock

import (
	"context"

	domain "sesi-membership/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, m *domain.Member) error
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Member, error)
	ListFn               func(ctx context.Context, f domain.DirectoryFilter) ([]domain.Member, error)
	CountFn              func(ctx context.Context, activeOnly bool) (int64, error)
	SetCertificatePathFn func(ctx context.Context, id, path string) error
}

func (r *Repo) Create(ctx context.Context, m *domain.Member) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, m)
	}
	return nil
}

func (r *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Member, error) {
	if r.GetByApplicationIDFn != nil {
		return r.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (r *Repo) List(ctx context.Context, f domain.DirectoryFilter) ([]domain.Member, error) {
	if r.ListFn != nil {
		return r.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (r *Repo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if r.CountFn != nil {
		return r.CountFn(ctx, activeOnly)
	}
	return 0, context.Canceled
}

func (r *Repo) SetCertificatePath(ctx context.Context, id, path string) error {
	if r.SetCertificatePathFn != nil {
		return r.SetCertificatePathFn(ctx, id, path)
	}
	return nil
}
