package models

import "gorm.io/gorm"

type Candidate struct {
	gorm.Model
	Name   string `json:"name" gorm:"uniqueIndex:idx_candidate_poll_name;not null"`
	Image  string `json:"image,omitempty"`
	PollID uint   `json:"poll_id" gorm:"uniqueIndex:idx_candidate_poll_name;not null"`
}
