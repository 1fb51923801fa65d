package member

import "context"

type DirectoryFilter struct {
	State  string
	City   string
	Search string
	// ActiveOnly hides lapsed members, as the public directory does.
	ActiveOnly bool
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Member, error)
	List(ctx context.Context, f DirectoryFilter) ([]Member, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	SetCertificatePath(ctx context.Context, id, path string) error
}
