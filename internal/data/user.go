package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{data: data, log: log.NewHelper(logger)}
}

const uniqueViolation = pq.ErrorCode("23505")

func (r *userRepo) Create(ctx context.Context, u *biz.User) (*biz.User, error) {
	id := uuid.NewString()
	now := time.Now()
	_, err := r.data.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, u.Name, u.Email, u.PasswordHash, u.Role, now,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, errors.Conflict("USER_EXISTS", "email is already registered")
		}
		return nil, err
	}

	out := *u
	out.ID = id
	out.CreatedAt = now.Format(timestampLayout)
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*biz.User, error) {
	var (
		u         biz.User
		createdAt time.Time
	)
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, err
	}
	u.CreatedAt = createdAt.Format(timestampLayout)
	return &u, nil
}
