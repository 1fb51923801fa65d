package application

import "context"

type ListFilter struct {
	// Status restricts the result when non-empty.
	Status Status
}

type Repository interface {
	Create(ctx context.Context, a *MembershipApplication) error
	GetByID(ctx context.Context, id string) (*MembershipApplication, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*MembershipApplication, error)
	// GetOpenByRegNo returns the newest non-rejected application for a registration number.
	GetOpenByRegNo(ctx context.Context, regNo string) (*MembershipApplication, error)
	// List orders by submitted_at, newest first.
	List(ctx context.Context, f ListFilter) ([]MembershipApplication, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	// MaxMembershipNumber returns the highest number with the given prefix, or "".
	MaxMembershipNumber(ctx context.Context, prefix string) (string, error)
	Save(ctx context.Context, a *MembershipApplication) error
	SetCertificatePath(ctx context.Context, id, path string) error
}

type HistoryRepository interface {
	Append(ctx context.Context, c *StatusChange) error
	ListByApplication(ctx context.Context, applicationID string) ([]StatusChange, error)
}
