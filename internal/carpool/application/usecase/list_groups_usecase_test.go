package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGroups(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	offices := newFakeOfficeRepo()
	members := newFakeMembershipRepo()
	svc := NewListGroupsService(groups, offices, members, users, testLogger())

	t.Run("empty", func(t *testing.T) {
		res, err := svc.Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res.Groups)
	})

	t.Run("composes office and members", func(t *testing.T) {
		hq := seedOffice(offices, "HQ", 52.52, 13.405)
		seedUser(users, "u-1", "Dana", true)
		g := seedGroup(groups, "early birds", hq.ID, 3)
		seedMembership(members, "u-1", g.ID, true)

		res, err := svc.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Groups, 1)
		assert.Equal(t, "HQ", res.Groups[0].Office.Name)
		require.Len(t, res.Groups[0].Members, 1)
		assert.Equal(t, "Dana", res.Groups[0].Members[0].User.DisplayName)
		assert.True(t, res.Groups[0].Members[0].Membership.IsOrganizer)
		assert.Equal(t, 2, res.Groups[0].RemainingCapacity())
	})
}
