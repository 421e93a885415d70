package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSchedule_AlwaysInsertsNewRow(t *testing.T) {
	offices := newFakeOfficeRepo()
	schedules := newFakeScheduleRepo()
	seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewSetScheduleService(offices, schedules, testLogger())

	input := in.SetScheduleInput{
		UserID:     "u-1",
		OfficeName: "HQ",
		StartTime:  "08:30",
		EndTime:    "16:30",
		DaysOfWeek: "3,1",
	}
	first, err := svc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "1,3", first.Schedule.DaysOfWeek, "days are canonicalized")

	second, err := svc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NotEqual(t, first.Schedule.ID, second.Schedule.ID, "set-schedule never upserts")

	all, _ := schedules.FindByUserID(context.Background(), "u-1")
	assert.Len(t, all, 2)
}

func TestSetSchedule_NoRegistrationRequired(t *testing.T) {
	offices := newFakeOfficeRepo()
	seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewSetScheduleService(offices, newFakeScheduleRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.SetScheduleInput{
		UserID:     "unregistered",
		OfficeName: "HQ",
		StartTime:  "09:00",
		EndTime:    "17:00",
		DaysOfWeek: "1,2,3,4,5",
	})
	require.NoError(t, err)
}

func TestSetSchedule_Validation(t *testing.T) {
	offices := newFakeOfficeRepo()
	seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewSetScheduleService(offices, newFakeScheduleRepo(), testLogger())

	base := in.SetScheduleInput{UserID: "u-1", OfficeName: "HQ", StartTime: "09:00", EndTime: "17:00", DaysOfWeek: "1,2"}

	t.Run("bad start time", func(t *testing.T) {
		input := base
		input.StartTime = "25:00"
		_, err := svc.Execute(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
	})

	t.Run("bad end time", func(t *testing.T) {
		input := base
		input.EndTime = "17:70"
		_, err := svc.Execute(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
	})

	t.Run("bad days", func(t *testing.T) {
		input := base
		input.DaysOfWeek = "1,2,9"
		_, err := svc.Execute(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrInvalidDays)
	})

	t.Run("inverted window is accepted", func(t *testing.T) {
		input := base
		input.StartTime = "22:00"
		input.EndTime = "06:00"
		_, err := svc.Execute(context.Background(), input)
		require.NoError(t, err)
	})

	t.Run("unknown office checked first", func(t *testing.T) {
		input := base
		input.OfficeName = "nowhere"
		input.StartTime = "25:00"
		_, err := svc.Execute(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrOfficeNotFound)
	})
}
