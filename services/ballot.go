package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// receiptPayload is sealed under the server encryption key and handed back
// to the voter as proof of their ballot.
type receiptPayload struct {
	ID          string    `json:"id"`
	PollID      uint      `json:"poll_id"`
	CandidateID uint      `json:"candidate_id"`
	VoterID     uint      `json:"voter_id"`
	CastAt      time.Time `json:"cast_at"`
}

// CastVote records one vote for a candidate in a poll on behalf of the
// user identified by userID. The voter flag flip and the vote insert are
// one transaction: a conflict rolls both back and is terminal, no retries.
func CastVote(db *gorm.DB, key *[32]byte, pollID, candidateID, userID uint, now time.Time) (*models.Vote, error) {
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
	if poll.NotStarted(now) {
		return nil, models.ErrPollNotActive
	}
	if poll.HasEnded(now) {
		return nil, models.ErrPollClosed
	}

	var candidate models.Candidate
	if err := db.Where("id = ? AND poll_id = ?", candidateID, pollID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCandidateNotFound
		}
		return nil, err
	}

	var voter models.Voter
	if err := db.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&voter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrVoterNotRegistered
		}
		return nil, err
	}

	receipt, err := sealReceipt(key, receiptPayload{
		ID:          uuid.NewString(),
		PollID:      poll.ID,
		CandidateID: candidate.ID,
		VoterID:     voter.ID,
		CastAt:      now,
	})
	if err != nil {
		return nil, err
	}

	vote := &models.Vote{
		PollID:      poll.ID,
		CandidateID: candidate.ID,
		VoterID:     voter.ID,
		Receipt:     receipt,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Guarded update: affects zero rows if the flag already flipped,
		// so two racing requests cannot both pass.
		res := tx.Model(&models.Voter{}).
			Where("id = ? AND is_voted = ?", voter.ID, false).
			Update("is_voted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyVoted
		}

		if err := tx.Create(vote).Error; err != nil {
			// The unique index on (poll_id, voter_id) fired: another
			// request won the race. Rolling back also reverts the flag.
			if isDuplicateErr(err) {
				return models.ErrAlreadyVoted
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func sealReceipt(key *[32]byte, payload receiptPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], data, &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenReceipt decrypts a receipt produced by CastVote. Used by audits, not
// exposed over the API.
func OpenReceipt(key *[32]byte, receipt string) (*receiptPayload, error) {
	sealed, err := base64.StdEncoding.DecodeString(receipt)
	if err != nil {
		return nil, err
	}
	if len(sealed) < 24 {
		return nil, errors.New("receipt too short")
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	data, ok := secretbox.Open(nil, sealed[24:], &nonce, key)
	if !ok {
		return nil, errors.New("receipt could not be decrypted")
	}

	var payload receiptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CandidateResult is one row of a poll tally.
type CandidateResult struct {
	CandidateID uint   `json:"candidate_id"`
	Name        string `json:"name"`
	VoteCount   int64  `json:"vote_count"`
}

// PollResult aggregates vote counts per candidate, descending. Ties break
// by candidate id ascending, i.e. creation order.
type PollResult struct {
	Candidates []CandidateResult `json:"candidates"`
	Winner     *CandidateResult  `json:"winner"`
	TotalVotes int64             `json:"total_votes"`
}

// Tally computes the current result of a poll.
func Tally(db *gorm.DB, pollID uint) (*PollResult, error) {
	var poll models.Poll
	if err := db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPollNotFound
		}
		return nil, err
	}

	var rows []CandidateResult
	err := db.Model(&models.Candidate{}).
		Select("candidates.id AS candidate_id, candidates.name AS name, COUNT(votes.id) AS vote_count").
		Joins("LEFT JOIN votes ON votes.candidate_id = candidates.id AND votes.deleted_at IS NULL").
		Where("candidates.poll_id = ?", pollID).
		Group("candidates.id, candidates.name").
		Order("vote_count DESC, candidates.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := &PollResult{Candidates: rows}
	for _, row := range rows {
		result.TotalVotes += row.VoteCount
	}
	if len(rows) > 0 {
		result.Winner = &rows[0]
	}
	return result, nil
}
