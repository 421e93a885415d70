package usecase

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/carpool/application/ports/in"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounce_ReachesAllEnabledUsers(t *testing.T) {
	users := newFakeUserRepo()
	notifier := newFakeNotifier()
	svc := NewAnnounceService(users, notifier, newFakeActivity(), testLogger())

	seedUser(users, "u-1", "Dana", true)
	seedUser(users, "u-2", "Sam", false)
	seedUser(users, "u-3", "Kim", true)

	res, err := svc.Execute(context.Background(), in.AnnounceInput{Text: "parking closed friday"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.UsersNotified)
	assert.Equal(t, []string{"u-1", "u-3"}, notifier.sentTo())
	assert.Equal(t, "announcement", notifier.sent[0].N.Kind)
}

func TestAnnounce_ContinuesPastFailures(t *testing.T) {
	users := newFakeUserRepo()
	notifier := newFakeNotifier()
	svc := NewAnnounceService(users, notifier, newFakeActivity(), testLogger())

	seedUser(users, "u-1", "Dana", true)
	seedUser(users, "u-2", "Sam", true)
	notifier.failFor["u-1"] = errors.New("gateway down")

	res, err := svc.Execute(context.Background(), in.AnnounceInput{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.UsersNotified)
	assert.Equal(t, []string{"u-2"}, notifier.sentTo())
}
