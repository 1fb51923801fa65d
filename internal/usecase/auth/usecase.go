package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sesi-membership/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("user account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const TokenType = "bearer"

// Claims carries the admin identity: sub is the email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type UserView struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginResult struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserView `json:"user"`
}

type Usecase struct {
	users  user.Repository
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewUsecase(users user.Repository, secret string, expiry time.Duration) *Usecase {
	return &Usecase{users: users, secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return nil, ErrInactive
	}

	tok, err := u.issue(usr)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: tok,
		TokenType:   TokenType,
		User:        UserView{Email: usr.Email, FullName: usr.FullName, Role: usr.Role},
	}, nil
}

func (u *Usecase) issue(usr *user.User) (string, error) {
	now := u.now()
	claims := Claims{
		Role: usr.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

// Verify checks signature and expiry of a bearer token.
func (u *Usecase) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate verifies the token and loads the active user it names.
func (u *Usecase) Authenticate(ctx context.Context, token string) (*user.User, error) {
	claims, err := u.Verify(token)
	if err != nil {
		return nil, err
	}
	usr, err := u.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !usr.IsActive {
		return nil, ErrInactive
	}
	return usr, nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EnsureAdmin creates the administrator account unless the email exists.
// It reports whether a user was created.
func (u *Usecase) EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, user.ErrNotFound):
		return false, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	err = u.users.Create(ctx, &user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         user.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
