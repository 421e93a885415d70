package repo

import (
	"context"
	"errors"
	"fmt"

	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserPgRepository is the Postgres implementation of out.UserRepository.
type UserPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewUserPgRepository(pool *pgxpool.Pool, log *logger.Logger) *UserPgRepository {
	return &UserPgRepository{pool: pool, log: log}
}

func (r *UserPgRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, display_name, home_address, home_latitude, home_longitude, notifications_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.DisplayName,
		user.HomeAddress,
		user.HomeLatitude,
		user.HomeLongitude,
		user.NotificationsEnabled,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserPgRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, display_name, home_address, home_latitude, home_longitude, notifications_enabled, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID,
		&u.DisplayName,
		&u.HomeAddress,
		&u.HomeLatitude,
		&u.HomeLongitude,
		&u.NotificationsEnabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (r *UserPgRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET display_name = $2,
		    home_address = $3,
		    home_latitude = $4,
		    home_longitude = $5,
		    notifications_enabled = $6,
		    updated_at = $7
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.DisplayName,
		user.HomeAddress,
		user.HomeLatitude,
		user.HomeLongitude,
		user.NotificationsEnabled,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func (r *UserPgRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserPgRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, display_name, home_address, home_latitude, home_longitude, notifications_enabled, created_at, updated_at
		FROM users
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.DisplayName,
			&u.HomeAddress,
			&u.HomeLatitude,
			&u.HomeLongitude,
			&u.NotificationsEnabled,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
