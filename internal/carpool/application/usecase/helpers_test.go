package usecase

import (
	"context"
	"time"

	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

func seedUser(repo *fakeUserRepo, id, name string, notifications bool) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:                   id,
		DisplayName:          name,
		NotificationsEnabled: notifications,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	_ = repo.Create(context.Background(), u)
	return u
}

func seedOffice(repo *fakeOfficeRepo, name string, lat, lng float64) *domain.OfficeLocation {
	now := time.Now().UTC()
	o := &domain.OfficeLocation{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   name + " street 1",
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(context.Background(), o)
	return o
}

func seedGroup(repo *fakeGroupRepo, name, officeID string, maxSize int) *domain.CarpoolGroup {
	now := time.Now().UTC()
	g := &domain.CarpoolGroup{
		ID:        uuid.New().String(),
		Name:      name,
		OfficeID:  officeID,
		MaxSize:   maxSize,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(context.Background(), g)
	return g
}

func seedMembership(repo *fakeMembershipRepo, userID, groupID string, organizer bool) *domain.Membership {
	now := time.Now().UTC()
	m := &domain.Membership{
		ID:          uuid.New().String(),
		UserID:      userID,
		GroupID:     groupID,
		IsOrganizer: organizer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_ = repo.CreateIfCapacity(context.Background(), m, 1<<30)
	return m
}

func seedSchedule(repo *fakeScheduleRepo, userID, officeID string) *domain.WorkSchedule {
	now := time.Now().UTC()
	s := &domain.WorkSchedule{
		ID:         uuid.New().String(),
		UserID:     userID,
		OfficeID:   officeID,
		StartTime:  domain.DefaultStartTime,
		EndTime:    domain.DefaultEndTime,
		DaysOfWeek: domain.DefaultDaysOfWeek,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_ = repo.Create(context.Background(), s)
	return s
}
