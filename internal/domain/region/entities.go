package region

import (
	"context"
	"errors"
)

var (
	ErrStateNotFound    = errors.New("state not found")
	ErrDistrictNotFound = errors.New("district not found")
)

// Table: states
type State struct {
	ID   string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name string `gorm:"column:name;size:128;not null;uniqueIndex" json:"name"`
	Code string `gorm:"column:code;size:8" json:"code"`
}

func (State) TableName() string { return "states" }

// Table: districts
type District struct {
	ID      string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name    string `gorm:"column:name;size:128;not null" json:"name"`
	StateID string `gorm:"column:state_id;size:64;not null;index" json:"state_id"`
}

func (District) TableName() string { return "districts" }

type Repository interface {
	ListStates(ctx context.Context) ([]State, error)
	GetState(ctx context.Context, id string) (*State, error)
	ListDistricts(ctx context.Context, stateID string) ([]District, error)
	GetDistrict(ctx context.Context, id string) (*District, error)
	// UpsertState and UpsertDistrict are used by seeding.
	UpsertState(ctx context.Context, s *State) error
	UpsertDistrict(ctx context.Context, d *District) error
}
