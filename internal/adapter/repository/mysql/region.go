package mysql

import (
	"context"

	regionDomain "sesi-membership/internal/domain/region"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionRepository struct{ db *gorm.DB }

func NewRegionRepository(db *gorm.DB) *RegionRepository { return &RegionRepository{db: db} }

func (r *RegionRepository) ListStates(ctx context.Context) ([]regionDomain.State, error) {
	var out []regionDomain.State
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *RegionRepository) GetState(ctx context.Context, id string) (*regionDomain.State, error) {
	var out regionDomain.State
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, regionDomain.ErrStateNotFound)
	}
	return &out, nil
}

func (r *RegionRepository) ListDistricts(ctx context.Context, stateID string) ([]regionDomain.District, error) {
	var out []regionDomain.District
	err := r.db.WithContext(ctx).Where("state_id = ?", stateID).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *RegionRepository) GetDistrict(ctx context.Context, id string) (*regionDomain.District, error) {
	var out regionDomain.District
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, regionDomain.ErrDistrictNotFound)
	}
	return &out, nil
}

func (r *RegionRepository) UpsertState(ctx context.Context, s *regionDomain.State) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(s).Error
}

func (r *RegionRepository) UpsertDistrict(ctx context.Context, d *regionDomain.District) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(d).Error
}
