package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/models"
	"github.com/YetundeAlabi/E-voting/services"
)

// CastVote records the caller's vote for a candidate in a poll.
func CastVote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}
	candidateID, err := strconv.ParseUint(c.Param("cid"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrCandidateNotFound.Error()})
		return
	}

	vote, err := services.CastVote(config.DB, &config.EncryptionKey, pollID, uint(candidateID), userID.(uint), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPollNotFound), errors.Is(err, models.ErrCandidateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPollNotActive):
			c.JSON(http.StatusTooEarly, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPollClosed), errors.Is(err, models.ErrVoterNotRegistered),
			errors.Is(err, models.ErrAlreadyVoted):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for voting",
		"receipt": vote.Receipt,
	})
}
