// Package testutil provides shared helpers for setting up test databases
// and seeding entities.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/models"
)

// TestPassword is the plaintext password of every seeded user.
const TestPassword = "password123"

// TestKey is a fixed 32-byte encryption key for sealing receipts in tests.
var TestKey = [32]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// SetupTestDB opens a fresh in-memory sqlite database with the full schema
// migrated. The pool is pinned to one connection so the in-memory database
// is shared and concurrent transactions serialize instead of failing.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// CreateUser seeds a verified, active user with TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, email string, staff bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:      email,
		Password:   string(hash),
		FirstName:  "Test",
		LastName:   "User",
		IsActive:   true,
		IsVerified: true,
		IsStaff:    staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePoll seeds a poll with the given window.
func CreatePoll(t *testing.T, db *gorm.DB, name string, start, end time.Time) *models.Poll {
	t.Helper()

	poll := &models.Poll{Name: name, Description: "test poll", StartTime: start, EndTime: end}
	require.NoError(t, db.Create(poll).Error)
	return poll
}

// AddCandidate seeds a candidate in a poll.
func AddCandidate(t *testing.T, db *gorm.DB, poll *models.Poll, name string) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{Name: name, PollID: poll.ID}
	require.NoError(t, db.Create(candidate).Error)
	return candidate
}

// RegisterVoter seeds a voter registration directly, bypassing the
// registration-window checks.
func RegisterVoter(t *testing.T, db *gorm.DB, poll *models.Poll, user *models.User) *models.Voter {
	t.Helper()

	voter := &models.Voter{UserID: user.ID, PollID: poll.ID}
	require.NoError(t, db.Create(voter).Error)
	return voter
}

// AuthToken issues an access token the auth middleware accepts.
func AuthToken(t *testing.T, userID uint, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}
