package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteSchedule(t *testing.T) {
	schedules := newFakeScheduleRepo()
	own := seedSchedule(schedules, "u-1", "office-1")
	other := seedSchedule(schedules, "u-2", "office-1")
	svc := NewDeleteScheduleService(schedules, testLogger())

	t.Run("deletes own schedule", func(t *testing.T) {
		err := svc.Execute(context.Background(), in.DeleteScheduleInput{UserID: "u-1", ScheduleID: own.ID})
		require.NoError(t, err)
		remaining, _ := schedules.FindByUserID(context.Background(), "u-1")
		assert.Empty(t, remaining)
	})

	t.Run("cannot delete someone else's schedule", func(t *testing.T) {
		err := svc.Execute(context.Background(), in.DeleteScheduleInput{UserID: "u-1", ScheduleID: other.ID})
		require.ErrorIs(t, err, domain.ErrScheduleNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.Execute(context.Background(), in.DeleteScheduleInput{UserID: "u-1", ScheduleID: "missing"})
		require.ErrorIs(t, err, domain.ErrScheduleNotFound)
	})
}
