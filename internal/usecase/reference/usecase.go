package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/region"
)

// Cache is the read-through store in front of the region repository.
type Cache interface {
	GetStates(ctx context.Context) ([]region.State, bool, error)
	SetStates(ctx context.Context, states []region.State) error
	GetDistricts(ctx context.Context, stateID string) ([]region.District, bool, error)
	SetDistricts(ctx context.Context, stateID string, districts []region.District) error
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	repo  region.Repository
	cache Cache
}

// NewUsecase accepts a nil cache; lookups then always hit the repository.
func NewUsecase(r region.Repository, c Cache) *Usecase { return &Usecase{repo: r, cache: c} }

func (u *Usecase) States(ctx context.Context) ([]region.State, error) {
	if u.cache != nil {
		states, ok, err := u.cache.GetStates(ctx)
		if err != nil {
			slog.WarnContext(ctx, "reference cache read failed", "key", "states", "err", err)
		} else if ok {
			return states, nil
		}
	}
	states, err := u.repo.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	if u.cache != nil {
		if err := u.cache.SetStates(ctx, states); err != nil {
			slog.WarnContext(ctx, "reference cache write failed", "key", "states", "err", err)
		}
	}
	return states, nil
}

// Districts returns the districts of a state, or region.ErrStateNotFound.
func (u *Usecase) Districts(ctx context.Context, stateID string) ([]region.District, error) {
	if u.cache != nil {
		ds, ok, err := u.cache.GetDistricts(ctx, stateID)
		if err != nil {
			slog.WarnContext(ctx, "reference cache read failed", "key", "districts", "state_id", stateID, "err", err)
		} else if ok {
			return ds, nil
		}
	}
	if _, err := u.repo.GetState(ctx, stateID); err != nil {
		return nil, err
	}
	ds, err := u.repo.ListDistricts(ctx, stateID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	if u.cache != nil {
		if err := u.cache.SetDistricts(ctx, stateID, ds); err != nil {
			slog.WarnContext(ctx, "reference cache write failed", "key", "districts", "state_id", stateID, "err", err)
		}
	}
	return ds, nil
}

// Resolve looks up a state/district pair and checks that the district
// belongs to the state.
func (u *Usecase) Resolve(ctx context.Context, stateID, districtID string) (*region.State, *region.District, error) {
	s, err := u.repo.GetState(ctx, stateID)
	if err != nil {
		if errors.Is(err, region.ErrStateNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown state %q", application.ErrDistrictMismatch, stateID)
		}
		return nil, nil, err
	}
	d, err := u.repo.GetDistrict(ctx, districtID)
	if err != nil {
		if errors.Is(err, region.ErrDistrictNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown district %q", application.ErrDistrictMismatch, districtID)
		}
		return nil, nil, err
	}
	if d.StateID != s.ID {
		return nil, nil, fmt.Errorf("%w: district %q is not in state %q", application.ErrDistrictMismatch, d.Name, s.Name)
	}
	return s, d, nil
}

// Refresh drops cached lists after reference data changes.
func (u *Usecase) Refresh(ctx context.Context) error {
	if u.cache == nil {
		return nil
	}
	return u.cache.Invalidate(ctx)
}
