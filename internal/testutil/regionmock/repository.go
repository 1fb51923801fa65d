package regionmock

import (
	"context"

	domain "sesi-membership/internal/domain/region"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListStatesFn     func(ctx context.Context) ([]domain.State, error)
	GetStateFn       func(ctx context.Context, id string) (*domain.State, error)
	ListDistrictsFn  func(ctx context.Context, stateID string) ([]domain.District, error)
	GetDistrictFn    func(ctx context.Context, id string) (*domain.District, error)
	UpsertStateFn    func(ctx context.Context, s *domain.State) error
	UpsertDistrictFn func(ctx context.Context, d *domain.District) error
}

func (m *Repo) ListStates(ctx context.Context) ([]domain.State, error) {
	if m.ListStatesFn != nil {
		return m.ListStatesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetState(ctx context.Context, id string) (*domain.State, error) {
	if m.GetStateFn != nil {
		return m.GetStateFn(ctx, id)
	}
	return nil, domain.ErrStateNotFound
}

func (m *Repo) ListDistricts(ctx context.Context, stateID string) ([]domain.District, error) {
	if m.ListDistrictsFn != nil {
		return m.ListDistrictsFn(ctx, stateID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetDistrict(ctx context.Context, id string) (*domain.District, error) {
	if m.GetDistrictFn != nil {
		return m.GetDistrictFn(ctx, id)
	}
	return nil, domain.ErrDistrictNotFound
}

func (m *Repo) UpsertState(ctx context.Context, s *domain.State) error {
	if m.UpsertStateFn != nil {
		return m.UpsertStateFn(ctx, s)
	}
	return nil
}

func (m *Repo) UpsertDistrict(ctx context.Context, d *domain.District) error {
	if m.UpsertDistrictFn != nil {
		return m.UpsertDistrictFn(ctx, d)
	}
	return nil
}
