package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/modu-soho/buzz_dashboard/internal/conf"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the role required for report creation endpoints.
const RoleAdmin = "admin"

// Principal is the authenticated identity extracted from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

type principalKey struct{}

// WithPrincipal attaches a principal to a request context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth filter.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// User is an authenticated dashboard principal.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
}

type UserRepo interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserUseCase handles registration and JWT login.
type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
}

func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
	}
}

// Register creates a user with a bcrypt-hashed password and the "user" role.
func (uc *UserUseCase) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.BadRequest("USER_INVALID", "name, email and password are required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "user",
	})
}

// Login verifies credentials and issues a 24h HS256 token carrying the
// user's email and role.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil, errors.Unauthorized("AUTH_FAILED", "invalid email or password")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.Unauthorized("AUTH_FAILED", "invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(uc.jwtKey))
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}

// Profile returns the user behind an authenticated principal.
func (uc *UserUseCase) Profile(ctx context.Context, email string) (*User, error) {
	return uc.repo.GetByEmail(ctx, email)
}
