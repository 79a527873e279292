package services

import (
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// ErrImportFailed signals that at least one CSV row was invalid and the
// whole import was rolled back. The row details are in ImportResult.
var ErrImportFailed = errors.New("import contains invalid rows")

var rowValidate = validator.New()

// RowError reports why one CSV row was rejected, keyed by field.
type RowError struct {
	Row    map[string]string   `json:"row"`
	Errors map[string][]string `json:"errors"`
}

// ImportResult is the outcome of one import call. On failure Imported is
// zero and RowErrors holds every rejected row.
type ImportResult struct {
	Imported  int        `json:"imported"`
	RowErrors []RowError `json:"errors,omitempty"`
}

// ImportVoters bulk-registers voters for a poll from a CSV stream with an
// email/first_name/last_name/phone_number header. Rows are validated
// independently and all outcomes collected; if any row fails the whole
// import rolls back (all-or-nothing) and the full error list is returned
// with ErrImportFailed.
func ImportVoters(db *gorm.DB, pollID uint, filename string, file io.Reader, now time.Time) (*ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, models.ErrInvalidFileType
	}

	// Registration window check happens once, before any row is read.
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
	if poll.HasEnded(now) {
		return nil, models.ErrPollClosed
	}
	if poll.IsActiveAt(now) {
		return nil, models.ErrPollActive
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	result := &ImportResult{}
	err = db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool)

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}

			row := make(map[string]string, len(header))
			for i, col := range header {
				if i < len(record) {
					row[col] = strings.TrimSpace(record[i])
				} else {
					row[col] = ""
				}
			}

			if rowErrs := importRow(tx, poll.ID, row, seen); rowErrs != nil {
				result.RowErrors = append(result.RowErrors, RowError{Row: row, Errors: rowErrs})
				continue
			}
			result.Imported++
		}

		if len(result.RowErrors) > 0 {
			// Rolling back discards every voter created above.
			return ErrImportFailed
		}
		return nil
	})

	if errors.Is(err, ErrImportFailed) {
		result.Imported = 0
		return result, ErrImportFailed
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// importRow validates one row and creates the voter inside the import
// transaction. A nil return means the row was accepted.
func importRow(tx *gorm.DB, pollID uint, row map[string]string, seen map[string]bool) map[string][]string {
	rowErrs := make(map[string][]string)

	email := row["email"]
	if email == "" {
		rowErrs["email"] = append(rowErrs["email"], "This field is required")
	} else if err := rowValidate.Var(email, "email"); err != nil {
		rowErrs["email"] = append(rowErrs["email"], "Enter a valid email address")
	}
	if len(rowErrs) > 0 {
		return rowErrs
	}

	if seen[email] {
		rowErrs["email"] = append(rowErrs["email"], "Email appears more than once in this file")
		return rowErrs
	}
	seen[email] = true

	var user models.User
	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rowErrs["email"] = append(rowErrs["email"], models.ErrUserNotFound.Error())
			return rowErrs
		}
		rowErrs["email"] = append(rowErrs["email"], err.Error())
		return rowErrs
	}

	var count int64
	if err := tx.Model(&models.Voter{}).
		Where("poll_id = ? AND user_id = ?", pollID, user.ID).
		Count(&count).Error; err != nil {
		rowErrs["email"] = append(rowErrs["email"], err.Error())
		return rowErrs
	}
	if count > 0 {
		rowErrs["email"] = append(rowErrs["email"], models.ErrDuplicateVoter.Error())
		return rowErrs
	}

	voter := models.Voter{UserID: user.ID, PollID: pollID}
	if err := tx.Create(&voter).Error; err != nil {
		rowErrs["email"] = append(rowErrs["email"], err.Error())
		return rowErrs
	}
	return nil
}
