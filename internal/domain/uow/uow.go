package uow

import (
	"context"

	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/member"
)

type Repos struct {
	Applications application.Repository
	History      application.HistoryRepository
	Members      member.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, id string, fn func(r Repos, a *application.MembershipApplication) error) error
}
