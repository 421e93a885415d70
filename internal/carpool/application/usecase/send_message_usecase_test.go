package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_RelaysToAllGroups(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMembershipRepo()
	notifier := &recordingGroupNotifier{}
	svc := NewSendMessageService(users, members, notifier, testLogger())

	seedUser(users, "u-1", "Dana", true)
	seedMembership(members, "u-1", "g-1", false)
	seedMembership(members, "u-1", "g-2", false)
	seedMembership(members, "u-1", "g-3", false)

	res, err := svc.Execute(context.Background(), in.SendMessageInput{UserID: "u-1", Text: "leaving at 8 today"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.GroupsNotified)

	require.Len(t, notifier.calls, 3)
	assert.Equal(t, "message", notifier.calls[0].Kind)
	assert.Equal(t, "Dana: leaving at 8 today", notifier.calls[0].Text)
}

func TestSendMessage_NotInAnyGroup(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "u-1", "Dana", true)
	svc := NewSendMessageService(users, newFakeMembershipRepo(), &recordingGroupNotifier{}, testLogger())

	_, err := svc.Execute(context.Background(), in.SendMessageInput{UserID: "u-1", Text: "hello"})
	require.ErrorIs(t, err, domain.ErrNotInAnyGroup)
}
