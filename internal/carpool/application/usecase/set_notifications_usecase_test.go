package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNotifications_Toggle(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "u-1", "Dana", true)
	svc := NewSetNotificationsService(users, testLogger())

	require.NoError(t, svc.Execute(context.Background(), in.SetNotificationsInput{UserID: "u-1", Enabled: false}))
	stored, _ := users.FindByID(context.Background(), "u-1")
	assert.False(t, stored.NotificationsEnabled)

	require.NoError(t, svc.Execute(context.Background(), in.SetNotificationsInput{UserID: "u-1", Enabled: true}))
	stored, _ = users.FindByID(context.Background(), "u-1")
	assert.True(t, stored.NotificationsEnabled)
}

func TestSetNotifications_RequiresRegistration(t *testing.T) {
	svc := NewSetNotificationsService(newFakeUserRepo(), testLogger())

	err := svc.Execute(context.Background(), in.SetNotificationsInput{UserID: "ghost", Enabled: false})
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}
