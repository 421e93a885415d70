package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOffice_CreatesDefaultSchedule(t *testing.T) {
	users := newFakeUserRepo()
	offices := newFakeOfficeRepo()
	schedules := newFakeScheduleRepo()
	seedUser(users, "u-1", "Dana", true)
	seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewSetOfficeService(users, offices, schedules, testLogger())

	res, err := svc.Execute(context.Background(), in.SetOfficeInput{UserID: "u-1", OfficeName: "HQ"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, domain.DefaultStartTime, res.Schedule.StartTime)
	assert.Equal(t, domain.DefaultEndTime, res.Schedule.EndTime)
	assert.Equal(t, domain.DefaultDaysOfWeek, res.Schedule.DaysOfWeek)
}

func TestSetOffice_RepeatUpdatesSameRow(t *testing.T) {
	users := newFakeUserRepo()
	offices := newFakeOfficeRepo()
	schedules := newFakeScheduleRepo()
	seedUser(users, "u-1", "Dana", true)
	seedOffice(offices, "HQ", 52.52, 13.405)
	seedOffice(offices, "Annex", 52.53, 13.41)
	svc := NewSetOfficeService(users, offices, schedules, testLogger())

	first, err := svc.Execute(context.Background(), in.SetOfficeInput{UserID: "u-1", OfficeName: "HQ"})
	require.NoError(t, err)
	second, err := svc.Execute(context.Background(), in.SetOfficeInput{UserID: "u-1", OfficeName: "Annex"})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Schedule.ID, second.Schedule.ID, "set-office upserts one row")

	all, _ := schedules.FindByUserID(context.Background(), "u-1")
	assert.Len(t, all, 1)
}

func TestSetOffice_RequiresRegistration(t *testing.T) {
	offices := newFakeOfficeRepo()
	seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewSetOfficeService(newFakeUserRepo(), offices, newFakeScheduleRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.SetOfficeInput{UserID: "ghost", OfficeName: "HQ"})
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestSetOffice_UnknownOffice(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "u-1", "Dana", true)
	svc := NewSetOfficeService(users, newFakeOfficeRepo(), newFakeScheduleRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.SetOfficeInput{UserID: "u-1", OfficeName: "HQ"})
	require.ErrorIs(t, err, domain.ErrOfficeNotFound)
}
