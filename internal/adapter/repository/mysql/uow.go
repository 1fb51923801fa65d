package mysql

import (
	"context"

	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/member"
	"sesi-membership/internal/domain/region"
	"sesi-membership/internal/domain/uow"
	"sesi-membership/internal/domain/user"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		History:      &HistoryRepository{db: tx},
		Members:      &MemberRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, id string, fn func(r uow.Repos, a *application.MembershipApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front
		a, err := r.Applications.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

// Models lists every table owned by this adapter, in migration order.
func Models() []any {
	return []any{
		&region.State{},
		&region.District{},
		&user.User{},
		&application.MembershipApplication{},
		&application.StatusChange{},
		&member.Member{},
	}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
