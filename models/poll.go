package models

import (
	"time"

	"gorm.io/gorm"
)

type Poll struct {
	gorm.Model
	Name        string      `json:"name" gorm:"uniqueIndex;not null"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	IsDeleted   bool        `json:"is_deleted"`
	Candidates  []Candidate `json:"candidates,omitempty" gorm:"foreignKey:PollID"`
	Voters      []Voter     `json:"voters,omitempty" gorm:"foreignKey:PollID"`
}

// IsActiveAt checks if the poll is active at the given time. Callers pass
// now explicitly so every evaluation sees a fresh clock.
func (p *Poll) IsActiveAt(now time.Time) bool {
	if p.IsDeleted {
		return false
	}
	return !now.Before(p.StartTime) && !now.After(p.EndTime)
}

// NotStarted reports whether the poll window has not opened yet.
func (p *Poll) NotStarted(now time.Time) bool {
	return now.Before(p.StartTime)
}

// HasEnded reports whether the poll window has closed.
func (p *Poll) HasEnded(now time.Time) bool {
	return now.After(p.EndTime)
}
