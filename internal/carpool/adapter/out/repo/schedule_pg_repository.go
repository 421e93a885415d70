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

// SchedulePgRepository is the Postgres implementation of
// out.ScheduleRepository.
type SchedulePgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewSchedulePgRepository(pool *pgxpool.Pool, log *logger.Logger) *SchedulePgRepository {
	return &SchedulePgRepository{pool: pool, log: log}
}

func (r *SchedulePgRepository) Create(ctx context.Context, schedule *domain.WorkSchedule) error {
	query := `
		INSERT INTO work_schedules (id, user_id, office_id, start_time, end_time, days_of_week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		schedule.ID,
		schedule.UserID,
		schedule.OfficeID,
		schedule.StartTime,
		schedule.EndTime,
		schedule.DaysOfWeek,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *SchedulePgRepository) Update(ctx context.Context, schedule *domain.WorkSchedule) error {
	query := `
		UPDATE work_schedules
		SET office_id = $2,
		    start_time = $3,
		    end_time = $4,
		    days_of_week = $5,
		    updated_at = $6
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		schedule.ID,
		schedule.OfficeID,
		schedule.StartTime,
		schedule.EndTime,
		schedule.DaysOfWeek,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func (r *SchedulePgRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.WorkSchedule, error) {
	return r.findMany(ctx, `WHERE user_id = $1`, userID)
}

func (r *SchedulePgRepository) FindByOfficeID(ctx context.Context, officeID string) ([]*domain.WorkSchedule, error) {
	return r.findMany(ctx, `WHERE office_id = $1`, officeID)
}

func (r *SchedulePgRepository) findMany(ctx context.Context, where string, arg any) ([]*domain.WorkSchedule, error) {
	query := `
		SELECT id, user_id, office_id, start_time, end_time, days_of_week, created_at, updated_at
		FROM work_schedules
	` + where + `
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*domain.WorkSchedule
	for rows.Next() {
		var s domain.WorkSchedule
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.OfficeID,
			&s.StartTime,
			&s.EndTime,
			&s.DaysOfWeek,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

func (r *SchedulePgRepository) FindOneByUserID(ctx context.Context, userID string) (*domain.WorkSchedule, error) {
	query := `
		SELECT id, user_id, office_id, start_time, end_time, days_of_week, created_at, updated_at
		FROM work_schedules
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	var s domain.WorkSchedule
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.OfficeID,
		&s.StartTime,
		&s.EndTime,
		&s.DaysOfWeek,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("select schedule: %w", err)
	}
	return &s, nil
}

func (r *SchedulePgRepository) DeleteByIDAndUser(ctx context.Context, scheduleID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM work_schedules WHERE id = $1 AND user_id = $2`,
		scheduleID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}
