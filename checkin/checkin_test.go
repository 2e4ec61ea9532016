package checkin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCheckInItemizesOutcomes(t *testing.T) {
	fn := func(id string) error {
		if id == "B" {
			return ErrAlreadyCheckedIn
		}
		return nil
	}

	results, succeeded := BulkCheckIn([]string{"A", "B", "C"}, fn)

	assert.Equal(t, 2, succeeded)
	require.Len(t, results, 3)

	assert.True(t, results[0].Succeeded)
	assert.Equal(t, "A", results[0].AttendeeID)

	assert.False(t, results[1].Succeeded)
	assert.Equal(t, "B", results[1].AttendeeID)
	assert.Equal(t, ErrAlreadyCheckedIn.Error(), results[1].Reason)

	assert.True(t, results[2].Succeeded)
}

func TestBulkCheckInContinuesPastFailures(t *testing.T) {
	calls := []string{}
	fn := func(id string) error {
		calls = append(calls, id)
		return errors.New("boom")
	}

	results, succeeded := BulkCheckIn([]string{"A", "B"}, fn)

	assert.Equal(t, 0, succeeded)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"A", "B"}, calls, "a failure must not abort the batch")
}

func TestBulkCheckInEmpty(t *testing.T) {
	results, succeeded := BulkCheckIn(nil, func(string) error { return nil })
	assert.Empty(t, results)
	assert.Zero(t, succeeded)
}
