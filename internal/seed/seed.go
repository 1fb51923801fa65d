// Package seed loads the reference data and the default administrator.
// Every step is an upsert, so running it twice leaves the database unchanged.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"sesi-membership/internal/domain/region"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

type stateDoc struct {
	Name      string   `yaml:"name"`
	Code      string   `yaml:"code"`
	Districts []string `yaml:"districts"`
}

type regionsDoc struct {
	States []stateDoc `yaml:"states"`
}

// AdminEnsurer creates the administrator account when it is missing.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error)
}

// Refresher drops cached reference lists after they change.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Admin struct {
	Email    string
	Password string
	FullName string
}

type Result struct {
	States       int
	Districts    int
	AdminCreated bool
}

type Seeder struct {
	regions region.Repository
	admins  AdminEnsurer
	cache   Refresher
	data    []byte
}

// New returns a Seeder over the embedded region list. cache may be nil.
func New(regions region.Repository, admins AdminEnsurer, cache Refresher) *Seeder {
	return &Seeder{regions: regions, admins: admins, cache: cache, data: regionsYAML}
}

// WithData replaces the embedded region list.
func (s *Seeder) WithData(data []byte) *Seeder {
	s.data = data
	return s
}

func (s *Seeder) Run(ctx context.Context, admin Admin) (*Result, error) {
	var doc regionsDoc
	if err := yaml.Unmarshal(s.data, &doc); err != nil {
		return nil, fmt.Errorf("parse regions: %w", err)
	}

	res := &Result{}
	for _, sd := range doc.States {
		st := region.State{ID: stateID(sd), Name: strings.TrimSpace(sd.Name), Code: strings.ToUpper(sd.Code)}
		if st.ID == "" || st.Name == "" {
			return nil, fmt.Errorf("state %q: name and code are required", sd.Name)
		}
		if err := s.regions.UpsertState(ctx, &st); err != nil {
			return nil, fmt.Errorf("upsert state %s: %w", st.Name, err)
		}
		res.States++

		for _, name := range sd.Districts {
			d := region.District{ID: st.ID + "-" + slug(name), Name: strings.TrimSpace(name), StateID: st.ID}
			if err := s.regions.UpsertDistrict(ctx, &d); err != nil {
				return nil, fmt.Errorf("upsert district %s/%s: %w", st.Name, d.Name, err)
			}
			res.Districts++
		}
	}

	if admin.Email != "" {
		created, err := s.admins.EnsureAdmin(ctx, admin.Email, admin.Password, admin.FullName)
		if err != nil {
			return nil, fmt.Errorf("ensure admin: %w", err)
		}
		res.AdminCreated = created
	}

	if s.cache != nil {
		if err := s.cache.Refresh(ctx); err != nil {
			slog.WarnContext(ctx, "reference cache refresh failed", "err", err)
		}
	}
	slog.InfoContext(ctx, "seed complete",
		"states", res.States,
		"districts", res.Districts,
		"admin_created", res.AdminCreated,
	)
	return res, nil
}

func stateID(sd stateDoc) string {
	if c := strings.TrimSpace(sd.Code); c != "" {
		return strings.ToUpper(c)
	}
	return strings.ToUpper(slug(sd.Name))
}

// slug keeps ASCII letters and digits and turns every other run into "_".
func slug(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
