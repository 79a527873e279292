package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YetundeAlabi/E-voting/models"
	"github.com/YetundeAlabi/E-voting/testutil"
)

func TestCreatePollDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := CreatePoll(db, "P1", "", baseTime, baseTime.Add(time.Hour))
	require.NoError(t, err)

	_, err = CreatePoll(db, "P1", "", baseTime, baseTime.Add(time.Hour))
	assert.ErrorIs(t, err, models.ErrDuplicateName)
}

func TestUpdatePollBeforeStart(t *testing.T) {
	db := testutil.SetupTestDB(t)

	poll := testutil.CreatePoll(t, db, "P1", baseTime, baseTime.Add(8*time.Hour))

	name := "Renamed"
	newStart := baseTime.Add(time.Hour)
	newEnd := baseTime.Add(10 * time.Hour)
	updated, err := UpdatePoll(db, poll.ID, PollUpdate{
		Name:      &name,
		StartTime: &newStart,
		EndTime:   &newEnd,
	}, baseTime.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.StartTime.Equal(newStart))
	assert.True(t, updated.EndTime.Equal(newEnd))
}

func TestUpdatePollWhileActive(t *testing.T) {
	db := testutil.SetupTestDB(t)

	poll := testutil.CreatePoll(t, db, "P1", baseTime, baseTime.Add(8*time.Hour))
	now := baseTime.Add(time.Hour)

	// Start time is frozen once the poll runs.
	newStart := baseTime.Add(2 * time.Hour)
	_, err := UpdatePoll(db, poll.ID, PollUpdate{StartTime: &newStart}, now)
	assert.ErrorIs(t, err, models.ErrPollActive)

	// Extending the end is allowed.
	newEnd := baseTime.Add(12 * time.Hour)
	updated, err := UpdatePoll(db, poll.ID, PollUpdate{EndTime: &newEnd}, now)
	require.NoError(t, err)
	assert.True(t, updated.EndTime.Equal(newEnd))
}

func TestUpdatePollAfterEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)

	poll := testutil.CreatePoll(t, db, "P1", baseTime, baseTime.Add(8*time.Hour))

	desc := "too late"
	_, err := UpdatePoll(db, poll.ID, PollUpdate{Description: &desc}, baseTime.Add(9*time.Hour))
	assert.ErrorIs(t, err, models.ErrPollClosed)
}

func TestSoftDeletePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)

	poll := testutil.CreatePoll(t, db, "P1", baseTime, baseTime.Add(8*time.Hour))
	candidate := testutil.AddCandidate(t, db, poll, "A")
	user := testutil.CreateUser(t, db, "voter@example.com", false)
	testutil.RegisterVoter(t, db, poll, user)
	_, err := CastVote(db, &testutil.TestKey, poll.ID, candidate.ID, user.ID, baseTime.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, SoftDeletePoll(db, poll.ID))

	// Gone from the active listing.
	polls, err := ActivePolls(db, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, polls)

	_, err = GetPoll(db, poll.ID)
	assert.ErrorIs(t, err, models.ErrPollNotFound)

	// Historical votes stay queryable.
	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("poll_id = ?", poll.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestActivePolls(t *testing.T) {
	db := testutil.SetupTestDB(t)

	running := testutil.CreatePoll(t, db, "running", baseTime, baseTime.Add(8*time.Hour))
	testutil.CreatePoll(t, db, "upcoming", baseTime.Add(24*time.Hour), baseTime.Add(32*time.Hour))
	testutil.CreatePoll(t, db, "finished", baseTime.Add(-24*time.Hour), baseTime.Add(-16*time.Hour))

	polls, err := ActivePolls(db, baseTime.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, running.ID, polls[0].ID)

	all, err := AllPolls(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
