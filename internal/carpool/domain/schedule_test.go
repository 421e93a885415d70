package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:00", "17:30", "23:59"}
	for _, v := range valid {
		t.Run(v, func(t *testing.T) {
			require.NoError(t, ValidateTimeOfDay(v))
		})
	}

	invalid := []string{"", "9:00", "24:00", "25:00", "12:60", "12-30", "12:3", "noon", "09:00:00"}
	for _, v := range invalid {
		t.Run("invalid "+v, func(t *testing.T) {
			require.ErrorIs(t, ValidateTimeOfDay(v), ErrInvalidTimeFormat)
		})
	}
}

func TestParseDaysOfWeek(t *testing.T) {
	t.Run("canonicalizes order and duplicates", func(t *testing.T) {
		got, err := ParseDaysOfWeek("5,1,3,1")
		require.NoError(t, err)
		assert.Equal(t, "1,3,5", got)
	})

	t.Run("tolerates spaces", func(t *testing.T) {
		got, err := ParseDaysOfWeek(" 1, 2 ,3 ")
		require.NoError(t, err)
		assert.Equal(t, "1,2,3", got)
	})

	t.Run("full work week", func(t *testing.T) {
		got, err := ParseDaysOfWeek("1,2,3,4,5")
		require.NoError(t, err)
		assert.Equal(t, DefaultDaysOfWeek, got)
	})

	invalid := []string{"", "0", "8", "1,2,9", "mon", "1,,2"}
	for _, v := range invalid {
		t.Run("invalid "+v, func(t *testing.T) {
			_, err := ParseDaysOfWeek(v)
			require.ErrorIs(t, err, ErrInvalidDays)
		})
	}
}
