package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/models"
	"github.com/YetundeAlabi/E-voting/services"
)

// ImportVoters bulk-registers voters for a poll from an uploaded CSV.
// All-or-nothing: one bad row rolls back the whole file and the response
// lists every rejected row.
func ImportVoters(c *gin.Context) {
	pollID, ok := pollIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	result, err := services.ImportVoters(config.DB, pollID, fileHeader.Filename, file, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImportFailed):
			c.JSON(http.StatusBadRequest, gin.H{"status": "failure", "errors": result.RowErrors})
		case errors.Is(err, models.ErrPollNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrInvalidFileType), errors.Is(err, models.ErrPollActive),
			errors.Is(err, models.ErrPollClosed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "imported": result.Imported})
}
