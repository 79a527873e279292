package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// CreatePoll creates a new poll. Poll names are globally unique.
func CreatePoll(db *gorm.DB, name, description string, start, end time.Time) (*models.Poll, error) {
	poll := &models.Poll{
		Name:        name,
		Description: description,
		StartTime:   start,
		EndTime:     end,
	}
	if err := db.Create(poll).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, models.ErrDuplicateName
		}
		return nil, err
	}
	return poll, nil
}

// GetPoll loads a poll by id. Soft-deleted polls are reported as missing.
func GetPoll(db *gorm.DB, pollID uint) (*models.Poll, error) {
	var poll models.Poll
	if err := db.Preload("Candidates").First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPollNotFound
		}
		return nil, err
	}
	if poll.IsDeleted {
		return nil, models.ErrPollNotFound
	}
	return &poll, nil
}

// PollUpdate carries the mutable poll fields; nil means leave unchanged.
type PollUpdate struct {
	Name        *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// UpdatePoll applies the window policy: before the poll starts everything
// may change, while it runs the start time is frozen (the end time may be
// pushed out to extend a live poll), and once it has ended nothing may.
func UpdatePoll(db *gorm.DB, pollID uint, update PollUpdate, now time.Time) (*models.Poll, error) {
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
	if poll.IsActiveAt(now) && update.StartTime != nil {
		return nil, models.ErrPollActive
	}

	if update.Name != nil {
		poll.Name = *update.Name
	}
	if update.Description != nil {
		poll.Description = *update.Description
	}
	if update.StartTime != nil {
		poll.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		poll.EndTime = *update.EndTime
	}

	if err := db.Save(&poll).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, models.ErrDuplicateName
		}
		return nil, err
	}
	return &poll, nil
}

// SoftDeletePoll flags the poll as deleted. Votes and voters are kept for
// history; the poll just disappears from the active listing.
func SoftDeletePoll(db *gorm.DB, pollID uint) error {
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
	return db.Model(&poll).Update("is_deleted", true).Error
}

// ActivePolls lists polls whose window contains now and that are not
// deleted. This is the default public listing.
func ActivePolls(db *gorm.DB, now time.Time) ([]models.Poll, error) {
	var polls []models.Poll
	err := db.Where("is_deleted = ? AND start_time <= ? AND end_time >= ?", false, now, now).
		Order("start_time ASC").
		Find(&polls).Error
	return polls, err
}

// AllPolls lists every poll including deleted ones, for administrators.
func AllPolls(db *gorm.DB) ([]models.Poll, error) {
	var polls []models.Poll
	err := db.Order("id ASC").Find(&polls).Error
	return polls, err
}
