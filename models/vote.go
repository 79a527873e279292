package models

import "gorm.io/gorm"

// Vote is one voter's choice of candidate in one poll. Rows are written
// once and never updated or deleted; the composite unique index on
// (poll_id, voter_id) is the authoritative guard against double voting.
type Vote struct {
	gorm.Model
	PollID      uint   `json:"poll_id" gorm:"uniqueIndex:idx_vote_poll_voter;not null"`
	VoterID     uint   `json:"voter_id" gorm:"uniqueIndex:idx_vote_poll_voter;not null"`
	CandidateID uint   `json:"candidate_id" gorm:"not null"`
	Receipt     string `json:"receipt"`
}
