package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// RegisterVoter registers the user with the given email as a voter in a
// poll. Registration must happen before the poll window opens.
func RegisterVoter(db *gorm.DB, pollID uint, email string, now time.Time) (*models.Voter, error) {
	var poll models.Poll
	if err := db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPollNotFound
		}
		return nil, err
	}
	if poll.IsDeleted {
		return nil, models.ErrPollNotFound
	}
	if poll.HasEnded(now) {
		return nil, models.ErrPollClosed
	}
	if poll.IsActiveAt(now) {
		return nil, models.ErrPollActive
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	voter := &models.Voter{UserID: user.ID, PollID: poll.ID}
	if err := db.Create(voter).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, models.ErrDuplicateVoter
		}
		return nil, err
	}
	voter.User = user
	return voter, nil
}

// RemoveVoter unregisters a voter from a poll. Only allowed while the poll
// is not active; the row is soft deleted so historical votes keep a
// resolvable voter reference.
func RemoveVoter(db *gorm.DB, pollID, voterID uint, now time.Time) error {
	var poll models.Poll
	if err := db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPollNotFound
		}
		return err
	}
	if poll.IsDeleted {
		return models.ErrPollNotFound
	}
	if poll.IsActiveAt(now) {
		return models.ErrPollActive
	}

	var voter models.Voter
	if err := db.Where("id = ? AND poll_id = ?", voterID, pollID).First(&voter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrVoterNotFound
		}
		return err
	}
	return db.Delete(&voter).Error
}

// PollVoters lists the voters registered in a poll.
func PollVoters(db *gorm.DB, pollID uint) ([]models.Voter, error) {
	var voters []models.Voter
	err := db.Where("poll_id = ?", pollID).Preload("User").Order("id ASC").Find(&voters).Error
	return voters, err
}

// AllVoters lists every voter registration across all polls.
func AllVoters(db *gorm.DB) ([]models.Voter, error) {
	var voters []models.Voter
	err := db.Preload("User").Order("id ASC").Find(&voters).Error
	return voters, err
}

// VoterPolls lists the polls a user is registered to vote in.
func VoterPolls(db *gorm.DB, userID uint) ([]models.Poll, error) {
	var polls []models.Poll
	err := db.Joins("JOIN voters ON voters.poll_id = polls.id AND voters.deleted_at IS NULL").
		Where("voters.user_id = ?", userID).
		Order("polls.id ASC").
		Find(&polls).Error
	return polls, err
}
