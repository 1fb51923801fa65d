package user

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

const RoleAdmin = "admin"

// Table: users
type User struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	FullName     string    `gorm:"column:full_name;size:255" json:"full_name"`
	Role         string    `gorm:"column:role;size:32;not null" json:"role"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (User) TableName() string { return "users" }

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}
