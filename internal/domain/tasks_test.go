package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDueDate("05/03/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDueDate("March 5")
	assert.Error(t, err)
}

func TestComputeCountdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		due    string
		days   int
		status CountdownStatus
		urgent bool
	}{
		{"2026-03-08", -2, CountdownOverdue, true},
		{"10/03/2026", 0, CountdownToday, true},
		{"2026-03-17", 7, CountdownUrgent, true},
		{"2026-03-18", 8, CountdownUpcoming, false},
		{"2026-04-09", 30, CountdownUpcoming, false},
		{"2026-04-10", 31, CountdownScheduled, false},
		{"bogus", UnknownDays, CountdownInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			got := ComputeCountdown(tt.due, now)
			assert.Equal(t, tt.days, got.Days)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.urgent, got.Urgent)
		})
	}
}

func TestParseTaskType(t *testing.T) {
	got, ok := ParseTaskType(" Vacinação ")
	require.True(t, ok)
	assert.Equal(t, TaskVaccination, got)
	got, ok = ParseTaskType("Check-Up")
	require.True(t, ok)
	assert.Equal(t, TaskCheckup, got)
	_, ok = ParseTaskType("dance")
	assert.False(t, ok)
}

func TestErrorSentinels(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, ErrNotFound, ErrConflict)
	assert.Equal(t, "rate limited", ErrRateLimited.Error())
}
