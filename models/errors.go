package models

import "errors"

// Domain errors. Controllers translate these into HTTP responses; services
// return them unwrapped or wrapped with %w so callers can errors.Is them.
var (
	ErrDuplicateName      = errors.New("a poll with this name already exists")
	ErrPollNotFound       = errors.New("poll does not exist")
	ErrPollNotActive      = errors.New("poll has not started yet")
	ErrPollClosed         = errors.New("poll has already ended")
	ErrPollActive         = errors.New("poll is already active")
	ErrPollDeleted        = errors.New("poll has been deleted")
	ErrCandidateNotFound  = errors.New("candidate does not exist in this poll")
	ErrDuplicateCandidate = errors.New("a candidate with this name already exists in this poll")
	ErrVoterNotRegistered = errors.New("this user is not registered to vote in this poll")
	ErrVoterNotFound      = errors.New("voter does not exist")
	ErrDuplicateVoter     = errors.New("voter with this user and poll already exists")
	ErrAlreadyVoted       = errors.New("this voter has already cast a vote for this poll")
	ErrUserNotFound       = errors.New("user with this email does not exist")
	ErrDuplicateUser      = errors.New("user with this email already exists")
	ErrInvalidFileType    = errors.New("file type not supported. file must be a csv file")
)
