package mysql

import (
	"context"
	"strings"

	memberDomain "sesi-membership/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) Create(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) GetByApplicationID(ctx context.Context, applicationID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, notFound(err, memberDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *MemberRepository) List(ctx context.Context, f memberDomain.DirectoryFilter) ([]memberDomain.Member, error) {
	q := r.db.WithContext(ctx).Order("full_name ASC")
	if f.ActiveOnly {
		q = q.Where("status = ?", memberDomain.StatusActive)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(hospital) LIKE ? OR LOWER(membership_number) LIKE ?",
			like, like, like, like, like,
		)
	}
	var out []memberDomain.Member
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MemberRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&memberDomain.Member{})
	if activeOnly {
		q = q.Where("status = ?", memberDomain.StatusActive)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *MemberRepository) SetCertificatePath(ctx context.Context, id, path string) error {
	res := r.db.WithContext(ctx).
		Model(&memberDomain.Member{}).
		Where("id = ?", id).
		Update("certificate_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return memberDomain.ErrNotFound
	}
	return nil
}
