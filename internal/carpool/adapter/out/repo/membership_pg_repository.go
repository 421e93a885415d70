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

// MembershipPgRepository is the Postgres implementation of
// out.MembershipRepository.
type MembershipPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewMembershipPgRepository(pool *pgxpool.Pool, log *logger.Logger) *MembershipPgRepository {
	return &MembershipPgRepository{pool: pool, log: log}
}

// CreateIfCapacity counts and inserts inside one transaction. The row lock
// on the group serializes concurrent joins, so a group with one seat left
// admits exactly one of two racing callers. The capacity check runs before
// the duplicate check on purpose: a full group reports full even to a user
// who is already in it.
func (r *MembershipPgRepository) CreateIfCapacity(ctx context.Context, membership *domain.Membership, maxSize int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM carpool_groups WHERE id = $1 FOR UPDATE`,
		membership.GroupID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGroupNotFound
		}
		return fmt.Errorf("lock group: %w", err)
	}

	var current int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM carpool_members WHERE carpool_group_id = $1`,
		membership.GroupID,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if current >= maxSize {
		return domain.ErrGroupFull
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO carpool_members (id, user_id, carpool_group_id, is_organizer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		membership.ID,
		membership.UserID,
		membership.GroupID,
		membership.IsOrganizer,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("insert membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit membership: %w", err)
	}
	return nil
}

func (r *MembershipPgRepository) FindByUserAndGroup(ctx context.Context, userID, groupID string) (*domain.Membership, error) {
	query := `
		SELECT id, user_id, carpool_group_id, is_organizer, created_at, updated_at
		FROM carpool_members
		WHERE user_id = $1 AND carpool_group_id = $2
	`
	var m domain.Membership
	err := r.pool.QueryRow(ctx, query, userID, groupID).Scan(
		&m.ID, &m.UserID, &m.GroupID, &m.IsOrganizer, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotAMember
		}
		return nil, fmt.Errorf("select membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipPgRepository) FindByGroupID(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	return r.findMany(ctx, `WHERE carpool_group_id = $1`, groupID)
}

func (r *MembershipPgRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.findMany(ctx, `WHERE user_id = $1`, userID)
}

func (r *MembershipPgRepository) findMany(ctx context.Context, where string, arg any) ([]*domain.Membership, error) {
	query := `
		SELECT id, user_id, carpool_group_id, is_organizer, created_at, updated_at
		FROM carpool_members
	` + where + `
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsOrganizer, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}

func (r *MembershipPgRepository) SetOrganizer(ctx context.Context, membershipID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE carpool_members SET is_organizer = TRUE, updated_at = NOW() WHERE id = $1`,
		membershipID,
	)
	if err != nil {
		return fmt.Errorf("set organizer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotAMember
	}
	return nil
}

func (r *MembershipPgRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM carpool_members`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count memberships: %w", err)
	}
	return n, nil
}
