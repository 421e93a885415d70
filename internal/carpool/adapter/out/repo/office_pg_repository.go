package repo

import (
	"context"
	"errors"
	"fmt"

	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OfficePgRepository is the Postgres implementation of out.OfficeRepository.
type OfficePgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewOfficePgRepository(pool *pgxpool.Pool, log *logger.Logger) *OfficePgRepository {
	return &OfficePgRepository{pool: pool, log: log}
}

func (r *OfficePgRepository) Create(ctx context.Context, office *domain.OfficeLocation) error {
	query := `
		INSERT INTO offices (id, name, address, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		office.ID,
		office.Name,
		office.Address,
		office.Latitude,
		office.Longitude,
		office.CreatedAt,
		office.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateOffice
		}
		return fmt.Errorf("insert office: %w", err)
	}
	return nil
}

func (r *OfficePgRepository) FindByID(ctx context.Context, officeID string) (*domain.OfficeLocation, error) {
	return r.findOne(ctx, `WHERE id = $1`, officeID)
}

func (r *OfficePgRepository) FindByName(ctx context.Context, name string) (*domain.OfficeLocation, error) {
	return r.findOne(ctx, `WHERE name = $1`, name)
}

func (r *OfficePgRepository) findOne(ctx context.Context, where string, arg any) (*domain.OfficeLocation, error) {
	query := `
		SELECT id, name, address, latitude, longitude, created_at, updated_at
		FROM offices
	` + where
	var o domain.OfficeLocation
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&o.ID,
		&o.Name,
		&o.Address,
		&o.Latitude,
		&o.Longitude,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfficeNotFound
		}
		return nil, fmt.Errorf("select office: %w", err)
	}
	return &o, nil
}

func (r *OfficePgRepository) FindAll(ctx context.Context) ([]*domain.OfficeLocation, error) {
	query := `
		SELECT id, name, address, latitude, longitude, created_at, updated_at
		FROM offices
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select offices: %w", err)
	}
	defer rows.Close()

	var offices []*domain.OfficeLocation
	for rows.Next() {
		var o domain.OfficeLocation
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Address,
			&o.Latitude,
			&o.Longitude,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan office: %w", err)
		}
		offices = append(offices, &o)
	}
	return offices, rows.Err()
}
