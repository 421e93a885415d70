package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAbsence_NotifiesEveryGroup(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMembershipRepo()
	notifier := &recordingGroupNotifier{}
	svc := NewReportAbsenceService(users, members, notifier, testLogger())

	seedUser(users, "u-1", "Dana", true)
	seedMembership(members, "u-1", "g-1", false)
	seedMembership(members, "u-1", "g-2", false)

	res, err := svc.Execute(context.Background(), in.ReportAbsenceInput{
		UserID: "u-1",
		Date:   "2026-09-01",
		Reason: "doctor",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.GroupsNotified)

	require.Len(t, notifier.calls, 2)
	assert.Equal(t, "absence", notifier.calls[0].Kind)
	assert.Contains(t, notifier.calls[0].Text, "2026-09-01")
	assert.Contains(t, notifier.calls[0].Text, "doctor")
}

func TestReportAbsence_NoReason(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMembershipRepo()
	notifier := &recordingGroupNotifier{}
	svc := NewReportAbsenceService(users, members, notifier, testLogger())

	seedUser(users, "u-1", "Dana", true)
	seedMembership(members, "u-1", "g-1", false)

	_, err := svc.Execute(context.Background(), in.ReportAbsenceInput{UserID: "u-1", Date: "2026-09-01"})
	require.NoError(t, err)
	require.Len(t, notifier.calls, 1)
	assert.NotContains(t, notifier.calls[0].Text, "(")
}

func TestReportAbsence_NotInAnyGroup(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "u-1", "Dana", true)
	svc := NewReportAbsenceService(users, newFakeMembershipRepo(), &recordingGroupNotifier{}, testLogger())

	_, err := svc.Execute(context.Background(), in.ReportAbsenceInput{UserID: "u-1", Date: "2026-09-01"})
	require.ErrorIs(t, err, domain.ErrNotInAnyGroup)
}

func TestReportAbsence_RequiresRegistration(t *testing.T) {
	svc := NewReportAbsenceService(newFakeUserRepo(), newFakeMembershipRepo(), &recordingGroupNotifier{}, testLogger())

	_, err := svc.Execute(context.Background(), in.ReportAbsenceInput{UserID: "ghost", Date: "2026-09-01"})
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}
