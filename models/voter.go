// Description: Defines the Voter model and its fields.
package models

import "gorm.io/gorm"

// Voter binds a user to a poll. One user can be a voter in many polls;
// within one poll the (poll, user) pair is unique.
type Voter struct {
	gorm.Model      // Adds fields ID, CreatedAt, UpdatedAt, DeletedAt
	UserID     uint `json:"user_id" gorm:"uniqueIndex:idx_voter_poll_user;not null"`
	PollID     uint `json:"poll_id" gorm:"uniqueIndex:idx_voter_poll_user;not null"`
	User       User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsVoted    bool `json:"is_voted"`
	EmailSent  bool `json:"email_sent"`
}
