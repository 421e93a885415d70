package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJoinFixture() (*fakeUserRepo, *fakeGroupRepo, *fakeMembershipRepo, *recordingGroupNotifier, *JoinGroupService) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	members := newFakeMembershipRepo()
	notifier := &recordingGroupNotifier{}
	svc := NewJoinGroupService(users, groups, members, notifier, testLogger())
	return users, groups, members, notifier, svc
}

func TestJoinGroup_Success(t *testing.T) {
	users, groups, members, notifier, svc := newJoinFixture()
	seedUser(users, "u-1", "Dana", true)
	g := seedGroup(groups, "early birds", "office-1", 3)

	res, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "u-1", GroupName: "early birds"})
	require.NoError(t, err)
	assert.Equal(t, g.ID, res.Group.ID)
	assert.False(t, res.Membership.IsOrganizer)

	stored, err := members.FindByUserAndGroup(context.Background(), "u-1", g.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Membership.ID, stored.ID)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "member_joined", notifier.calls[0].Kind)
	assert.Equal(t, g.ID, notifier.calls[0].GroupID)
}

func TestJoinGroup_RequiresRegistration(t *testing.T) {
	_, groups, _, _, svc := newJoinFixture()
	seedGroup(groups, "early birds", "office-1", 3)

	_, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "ghost", GroupName: "early birds"})
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestJoinGroup_UnknownGroup(t *testing.T) {
	users, _, _, _, svc := newJoinFixture()
	seedUser(users, "u-1", "Dana", true)

	_, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "u-1", GroupName: "missing"})
	require.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestJoinGroup_FullGroup(t *testing.T) {
	users, groups, members, notifier, svc := newJoinFixture()
	seedUser(users, "u-1", "Dana", true)
	g := seedGroup(groups, "tiny", "office-1", 1)
	seedMembership(members, "u-0", g.ID, false)

	_, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "u-1", GroupName: "tiny"})
	require.ErrorIs(t, err, domain.ErrGroupFull)
	assert.Empty(t, notifier.calls, "no fanout on rejected join")
}

func TestJoinGroup_FullGroupReportsFullEvenToExistingMember(t *testing.T) {
	users, groups, members, _, svc := newJoinFixture()
	seedUser(users, "u-1", "Dana", true)
	g := seedGroup(groups, "tiny", "office-1", 1)
	seedMembership(members, "u-1", g.ID, false)

	// Capacity is checked before uniqueness, so a member of a full group
	// sees full, not already-member.
	_, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "u-1", GroupName: "tiny"})
	require.ErrorIs(t, err, domain.ErrGroupFull)
}

func TestJoinGroup_AlreadyMember(t *testing.T) {
	users, groups, members, _, svc := newJoinFixture()
	seedUser(users, "u-1", "Dana", true)
	g := seedGroup(groups, "roomy", "office-1", 5)
	seedMembership(members, "u-1", g.ID, false)

	_, err := svc.Execute(context.Background(), in.JoinGroupInput{UserID: "u-1", GroupName: "roomy"})
	require.ErrorIs(t, err, domain.ErrAlreadyMember)
}

func TestJoinGroup_ConcurrentJoinsNeverOverfill(t *testing.T) {
	users, groups, members, _, svc := newJoinFixture()
	const maxSize = 4
	const contenders = maxSize + 1
	g := seedGroup(groups, "commuters", "office-1", maxSize)
	for i := 0; i < contenders; i++ {
		seedUser(users, fmt.Sprintf("u-%d", i), fmt.Sprintf("user %d", i), true)
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Execute(context.Background(), in.JoinGroupInput{
				UserID:    fmt.Sprintf("u-%d", i),
				GroupName: "commuters",
			})
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			require.ErrorIs(t, err, domain.ErrGroupFull)
		}
	}
	assert.Equal(t, maxSize, admitted, "exactly maxSize joins succeed")

	rows, _ := members.FindByGroupID(context.Background(), g.ID)
	assert.Len(t, rows, maxSize)
}
