package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, confirmed, banned, avatar_url, refresh_token_hash, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Confirmed,
		&user.Banned,
		&user.AvatarURL,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, username, email, password_hash, role, confirmed, banned, avatar_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Confirmed,
		user.Banned,
		user.AvatarURL,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// HasAdmin reports whether any admin exists. The first registered user
// becomes the admin.
func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`
	var exists bool
	if err := r.pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) UpdateRefreshTokenHash(ctx context.Context, id string, hash []byte) error {
	const query = `UPDATE users SET refresh_token_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetConfirmed(ctx context.Context, email string) error {
	const query = `UPDATE users SET confirmed = TRUE, updated_at = NOW() WHERE email = $1`
	cmd, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetBanned(ctx context.Context, email string, banned bool) error {
	const query = `UPDATE users SET banned = $2, updated_at = NOW() WHERE email = $1`
	cmd, err := r.pool.Exec(ctx, query, email, banned)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearExpiredRefreshTokens drops stored refresh hashes for users whose
// tokens cannot still be valid. Run by the scheduler, not request paths.
func (r *UserRepository) ClearExpiredRefreshTokens(ctx context.Context, olderThan int) (int64, error) {
	const query = `
		UPDATE users
		SET refresh_token_hash = NULL
		WHERE refresh_token_hash IS NOT NULL
		  AND updated_at < NOW() - ($1 * INTERVAL '1 hour')
	`
	cmd, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
