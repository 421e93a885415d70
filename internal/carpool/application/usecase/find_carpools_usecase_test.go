package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFindCarpoolsFixture() (*fakeUserRepo, *fakeScheduleRepo, *fakeGroupRepo, *fakeOfficeRepo, *fakeMembershipRepo, *FindCarpoolsService) {
	users := newFakeUserRepo()
	schedules := newFakeScheduleRepo()
	groups := newFakeGroupRepo()
	offices := newFakeOfficeRepo()
	members := newFakeMembershipRepo()
	svc := NewFindCarpoolsService(users, schedules, groups, offices, members, testLogger())
	return users, schedules, groups, offices, members, svc
}

func TestFindCarpools_RequiresRegistration(t *testing.T) {
	_, _, _, _, _, svc := newFindCarpoolsFixture()

	_, err := svc.Execute(context.Background(), in.FindCarpoolsInput{UserID: "ghost"})
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestFindCarpools_RequiresSchedule(t *testing.T) {
	users, _, _, _, _, svc := newFindCarpoolsFixture()
	seedUser(users, "u-1", "Dana", true)

	_, err := svc.Execute(context.Background(), in.FindCarpoolsInput{UserID: "u-1"})
	require.ErrorIs(t, err, domain.ErrNoSchedule)
}

func TestFindCarpools_UnionAcrossOffices(t *testing.T) {
	users, schedules, groups, offices, members, svc := newFindCarpoolsFixture()
	seedUser(users, "u-1", "Dana", true)
	member := seedUser(users, "u-2", "Sam", true)

	hq := seedOffice(offices, "HQ", 52.52, 13.405)
	annex := seedOffice(offices, "Annex", 52.53, 13.41)
	elsewhere := seedOffice(offices, "Elsewhere", 48.85, 2.35)

	// Two schedules at HQ: the office must still appear once in the union.
	seedSchedule(schedules, "u-1", hq.ID)
	seedSchedule(schedules, "u-1", hq.ID)
	seedSchedule(schedules, "u-1", annex.ID)

	g1 := seedGroup(groups, "early birds", hq.ID, 3)
	g2 := seedGroup(groups, "night owls", annex.ID, 2)
	seedGroup(groups, "strangers", elsewhere.ID, 4)

	seedMembership(members, member.ID, g1.ID, false)

	res, err := svc.Execute(context.Background(), in.FindCarpoolsInput{UserID: "u-1"})
	require.NoError(t, err)
	require.Len(t, res.Groups, 2, "only groups at the user's offices")

	assert.Equal(t, g1.ID, res.Groups[0].Group.Group.ID)
	assert.Equal(t, 2, res.Groups[0].RemainingCapacity)
	require.Len(t, res.Groups[0].Group.Members, 1)
	assert.Equal(t, "Sam", res.Groups[0].Group.Members[0].User.DisplayName)

	assert.Equal(t, g2.ID, res.Groups[1].Group.Group.ID)
	assert.Equal(t, 2, res.Groups[1].RemainingCapacity)
}

func TestFindCarpools_DeterministicOrder(t *testing.T) {
	users, schedules, groups, offices, _, svc := newFindCarpoolsFixture()
	seedUser(users, "u-1", "Dana", true)
	hq := seedOffice(offices, "HQ", 52.52, 13.405)
	seedSchedule(schedules, "u-1", hq.ID)

	a := seedGroup(groups, "a", hq.ID, 2)
	b := seedGroup(groups, "b", hq.ID, 2)
	c := seedGroup(groups, "c", hq.ID, 2)

	for range 3 {
		res, err := svc.Execute(context.Background(), in.FindCarpoolsInput{UserID: "u-1"})
		require.NoError(t, err)
		require.Len(t, res.Groups, 3)
		assert.Equal(t, a.ID, res.Groups[0].Group.Group.ID)
		assert.Equal(t, b.ID, res.Groups[1].Group.Group.ID)
		assert.Equal(t, c.ID, res.Groups[2].Group.Group.ID)
	}
}
