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

// GroupPgRepository is the Postgres implementation of out.GroupRepository.
type GroupPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewGroupPgRepository(pool *pgxpool.Pool, log *logger.Logger) *GroupPgRepository {
	return &GroupPgRepository{pool: pool, log: log}
}

func (r *GroupPgRepository) Create(ctx context.Context, group *domain.CarpoolGroup) error {
	query := `
		INSERT INTO carpool_groups (id, name, office_id, max_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.OfficeID,
		group.MaxSize,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *GroupPgRepository) FindByID(ctx context.Context, groupID string) (*domain.CarpoolGroup, error) {
	query := `
		SELECT id, name, office_id, max_size, created_at, updated_at
		FROM carpool_groups
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, groupID))
}

// FindByName returns the oldest group carrying the name. Names are not
// unique; ties resolve to the earliest created row so repeat commands hit
// the same group.
func (r *GroupPgRepository) FindByName(ctx context.Context, name string) (*domain.CarpoolGroup, error) {
	query := `
		SELECT id, name, office_id, max_size, created_at, updated_at
		FROM carpool_groups
		WHERE name = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *GroupPgRepository) scanOne(row pgx.Row) (*domain.CarpoolGroup, error) {
	var g domain.CarpoolGroup
	err := row.Scan(&g.ID, &g.Name, &g.OfficeID, &g.MaxSize, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("select group: %w", err)
	}
	return &g, nil
}

func (r *GroupPgRepository) FindByOfficeIDs(ctx context.Context, officeIDs []string) ([]*domain.CarpoolGroup, error) {
	if len(officeIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, office_id, max_size, created_at, updated_at
		FROM carpool_groups
		WHERE office_id = ANY($1)
		ORDER BY created_at, id
	`
	return r.scanMany(ctx, query, officeIDs)
}

func (r *GroupPgRepository) FindAll(ctx context.Context) ([]*domain.CarpoolGroup, error) {
	query := `
		SELECT id, name, office_id, max_size, created_at, updated_at
		FROM carpool_groups
		ORDER BY created_at, id
	`
	return r.scanMany(ctx, query)
}

func (r *GroupPgRepository) scanMany(ctx context.Context, query string, args ...any) ([]*domain.CarpoolGroup, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}
	defer rows.Close()

	var groups []*domain.CarpoolGroup
	for rows.Next() {
		var g domain.CarpoolGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.OfficeID, &g.MaxSize, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *GroupPgRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM carpool_groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count groups: %w", err)
	}
	return n, nil
}
