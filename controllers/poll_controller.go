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

func pollIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrPollNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

// ListPolls returns the polls active right now.
func ListPolls(c *gin.Context) {
	polls, err := services.ActivePolls(config.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list polls"})
		return
	}
	c.JSON(http.StatusOK, polls)
}

// ListAllPolls returns every poll, deleted and pending ones included.
// Admin only.
func ListAllPolls(c *gin.Context) {
	polls, err := services.AllPolls(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list polls"})
		return
	}
	c.JSON(http.StatusOK, polls)
}

// CreatePoll handles poll creation by an admin.
func CreatePoll(c *gin.Context) {
	var input struct {
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := services.CreatePoll(config.DB, input.Name, input.Description, input.StartTime, input.EndTime)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create poll"})
		return
	}
	c.JSON(http.StatusCreated, poll)
}

// GetPoll shows the live candidate list while the poll is active and the
// tallied result once it is not.
func GetPoll(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	poll, err := services.GetPoll(config.DB, pollID)
	if err != nil {
		if errors.Is(err, models.ErrPollNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load poll"})
		return
	}

	now := time.Now()
	if poll.IsActiveAt(now) {
		c.JSON(http.StatusOK, gin.H{
			"id":          poll.ID,
			"name":        poll.Name,
			"description": poll.Description,
			"start_time":  poll.StartTime,
			"end_time":    poll.EndTime,
			"is_active":   true,
			"candidates":  poll.Candidates,
		})
		return
	}

	result, err := services.Tally(config.DB, poll.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally poll"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          poll.ID,
		"name":        poll.Name,
		"description": poll.Description,
		"start_time":  poll.StartTime,
		"end_time":    poll.EndTime,
		"is_active":   false,
		"candidates":  result.Candidates,
		"winner":      result.Winner,
		"total_votes": result.TotalVotes,
	})
}

// UpdatePoll applies the window-gated update policy.
func UpdatePoll(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := services.UpdatePoll(config.DB, pollID, services.PollUpdate{
		Name:        input.Name,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPollNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPollClosed), errors.Is(err, models.ErrPollActive),
			errors.Is(err, models.ErrDuplicateName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update poll"})
		}
		return
	}
	c.JSON(http.StatusOK, poll)
}

// DeletePoll soft-deletes a poll. History stays queryable.
func DeletePoll(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	if err := services.SoftDeletePoll(config.DB, pollID); err != nil {
		if errors.Is(err, models.ErrPollNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete poll"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPollResult returns the tallies and the current leader.
func GetPollResult(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	result, err := services.Tally(config.DB, pollID)
	if err != nil {
		if errors.Is(err, models.ErrPollNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally poll"})
		return
	}
	c.JSON(http.StatusOK, result)
}
