package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/models"
)

// ListCandidates lists the candidates of a poll.
func ListCandidates(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	var poll models.Poll
	if err := config.DB.First(&poll, pollID).Error; err != nil || poll.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrPollNotFound.Error()})
		return
	}

	var candidates []models.Candidate
	if err := config.DB.Where("poll_id = ?", pollID).Order("id ASC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list candidates"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// CreateCandidate adds a candidate to a poll. Admin only.
func CreateCandidate(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var poll models.Poll
	if err := config.DB.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrPollNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load poll"})
		return
	}
	if poll.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrPollNotFound.Error()})
		return
	}

	candidate := models.Candidate{Name: input.Name, Image: input.Image, PollID: poll.ID}
	if err := config.DB.Create(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrDuplicateCandidate.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate"})
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// isUniqueViolation catches constraint messages the driver did not
// translate into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
