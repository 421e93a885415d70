package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	offices := newFakeOfficeRepo()
	groups := newFakeGroupRepo()
	hq := seedOffice(offices, "HQ", 52.52, 13.405)
	svc := NewCreateGroupService(offices, groups, newFakeActivity(), testLogger())

	t.Run("creates group at office", func(t *testing.T) {
		res, err := svc.Execute(context.Background(), in.CreateGroupInput{
			Name:       "early birds",
			OfficeName: "HQ",
			MaxSize:    4,
		})
		require.NoError(t, err)
		assert.Equal(t, hq.ID, res.Group.OfficeID)
		assert.Equal(t, 4, res.Group.MaxSize)
		assert.NotEmpty(t, res.Group.ID)
	})

	t.Run("duplicate names are allowed", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), in.CreateGroupInput{
			Name:       "early birds",
			OfficeName: "HQ",
			MaxSize:    2,
		})
		require.NoError(t, err)
		n, _ := groups.Count(context.Background())
		assert.Equal(t, 2, n)
	})

	t.Run("name lookup resolves to oldest", func(t *testing.T) {
		g, err := groups.FindByName(context.Background(), "early birds")
		require.NoError(t, err)
		assert.Equal(t, 4, g.MaxSize)
	})

	t.Run("zero capacity rejected", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), in.CreateGroupInput{Name: "x", OfficeName: "HQ", MaxSize: 0})
		require.ErrorIs(t, err, domain.ErrInvalidCapacity)
	})

	t.Run("negative capacity rejected", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), in.CreateGroupInput{Name: "x", OfficeName: "HQ", MaxSize: -3})
		require.ErrorIs(t, err, domain.ErrInvalidCapacity)
	})

	t.Run("unknown office", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), in.CreateGroupInput{Name: "x", OfficeName: "nowhere", MaxSize: 2})
		require.ErrorIs(t, err, domain.ErrOfficeNotFound)
	})
}
