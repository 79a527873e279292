package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YetundeAlabi/E-voting/models"
	"github.com/YetundeAlabi/E-voting/testutil"
)

type fakeSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSender) Send(to, subject, body string) error {
	if f.failFor[to] {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestSendPollOpenEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)

	open := testutil.CreatePoll(t, db, "open", baseTime, baseTime.Add(8*time.Hour))
	pending := testutil.CreatePoll(t, db, "pending", baseTime.Add(24*time.Hour), baseTime.Add(32*time.Hour))

	for i := 0; i < 3; i++ {
		user := testutil.CreateUser(t, db, fmt.Sprintf("open%d@example.com", i), false)
		testutil.RegisterVoter(t, db, open, user)
	}
	notYet := testutil.CreateUser(t, db, "pending@example.com", false)
	testutil.RegisterVoter(t, db, pending, notYet)

	sender := &fakeSender{}
	sent, failed, err := SendPollOpenEmails(db, sender, "http://test.local", baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Zero(t, failed)
	assert.Len(t, sender.sent, 3)
	assert.NotContains(t, sender.sent, "pending@example.com")

	// All flagged, so a second run sends nothing.
	sent, failed, err = SendPollOpenEmails(db, sender, "http://test.local", baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
}

func TestSendPollOpenEmailsRetriesFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	poll := testutil.CreatePoll(t, db, "open", baseTime, baseTime.Add(8*time.Hour))
	ok := testutil.CreateUser(t, db, "ok@example.com", false)
	bad := testutil.CreateUser(t, db, "bad@example.com", false)
	testutil.RegisterVoter(t, db, poll, ok)
	testutil.RegisterVoter(t, db, poll, bad)

	sender := &fakeSender{failFor: map[string]bool{"bad@example.com": true}}
	sent, failed, err := SendPollOpenEmails(db, sender, "http://test.local", baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)

	// The failed voter keeps email_sent false and is retried next run.
	var voters []models.Voter
	require.NoError(t, db.Where("poll_id = ? AND email_sent = ?", poll.ID, false).Find(&voters).Error)
	require.Len(t, voters, 1)
	assert.Equal(t, bad.ID, voters[0].UserID)

	sender.failFor = nil
	sent, failed, err = SendPollOpenEmails(db, sender, "http://test.local", baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
}

func TestSendVerificationEmailSwallowsFailure(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"new@example.com": true}}
	user := &models.User{Email: "new@example.com", FirstName: "New"}

	// Must not panic or surface the delivery error.
	SendVerificationEmail(sender, user, "token", "http://test.local")
	assert.Empty(t, sender.sent)

	SendVerificationEmail(nil, user, "token", "http://test.local")
}
