package mysql

import (
	"context"
	"database/sql"
	"errors"

	appDomain "sesi-membership/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.MembershipApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.MembershipApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*appDomain.MembershipApplication, error) {
	var out appDomain.MembershipApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*appDomain.MembershipApplication, error) {
	var out appDomain.MembershipApplication
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetOpenByRegNo(ctx context.Context, regNo string) (*appDomain.MembershipApplication, error) {
	var out appDomain.MembershipApplication
	err := r.db.WithContext(ctx).
		Where("medical_council_reg_no = ? AND status <> ?", regNo, appDomain.StatusRejected).
		Order("submitted_at DESC").
		First(&out).Error
	if err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.ListFilter) ([]appDomain.MembershipApplication, error) {
	q := r.db.WithContext(ctx).Order("submitted_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []appDomain.MembershipApplication
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[appDomain.Status]int64, error) {
	var rows []struct {
		Status appDomain.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&appDomain.MembershipApplication{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[appDomain.Status]int64, len(appDomain.Statuses))
	for _, s := range appDomain.Statuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *ApplicationRepository) MaxMembershipNumber(ctx context.Context, prefix string) (string, error) {
	var last []sql.NullString
	// longer suffixes sort after shorter ones once the sequence passes 9999
	err := r.db.WithContext(ctx).
		Model(&appDomain.MembershipApplication{}).
		Where("membership_number LIKE ?", prefix+"%").
		Order("LENGTH(membership_number) DESC, membership_number DESC").
		Limit(1).
		Pluck("membership_number", &last).Error
	if err != nil || len(last) == 0 {
		return "", err
	}
	return last[0].String, nil
}

func (r *ApplicationRepository) SetCertificatePath(ctx context.Context, id, path string) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.MembershipApplication{}).
		Where("id = ?", id).
		Update("certificate_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrNotFound
	}
	return nil
}

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, c *appDomain.StatusChange) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *HistoryRepository) ListByApplication(ctx context.Context, applicationID string) ([]appDomain.StatusChange, error) {
	var out []appDomain.StatusChange
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
