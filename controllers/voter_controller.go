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

// ListAllVoters lists every voter registration. Admin only.
func ListAllVoters(c *gin.Context) {
	voters, err := services.AllVoters(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list voters"})
		return
	}
	c.JSON(http.StatusOK, voters)
}

// ListPollVoters lists the voters of one poll. Admin only.
func ListPollVoters(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	voters, err := services.PollVoters(config.DB, pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list voters"})
		return
	}
	c.JSON(http.StatusOK, voters)
}

// AddVoter registers an existing user as a voter in a poll. Admin only;
// must happen before the poll window opens.
func AddVoter(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voter, err := services.RegisterVoter(config.DB, pollID, input.Email, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPollNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPollActive), errors.Is(err, models.ErrPollClosed),
			errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrDuplicateVoter):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register voter"})
		}
		return
	}
	c.JSON(http.StatusCreated, voter)
}

// RemoveVoter unregisters a voter while the poll is not active. Admin only.
func RemoveVoter(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}
	voterID, err := strconv.ParseUint(c.Param("vid"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrVoterNotFound.Error()})
		return
	}

	if err := services.RemoveVoter(config.DB, pollID, uint(voterID), time.Now()); err != nil {
		switch {
		case errors.Is(err, models.ErrPollNotFound), errors.Is(err, models.ErrVoterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPollActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove voter"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// MyPolls lists the polls the caller is registered to vote in.
func MyPolls(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	polls, err := services.VoterPolls(config.DB, userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list polls"})
		return
	}
	c.JSON(http.StatusOK, polls)
}
