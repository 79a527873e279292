package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollIsActiveAt(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	poll := &Poll{Name: "P1", StartTime: start, EndTime: end}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before window", start.Add(-time.Minute), false},
		{"exactly at start", start, true},
		{"inside window", start.Add(4 * time.Hour), true},
		{"exactly at end", end, true},
		{"after window", end.Add(time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poll.IsActiveAt(tt.now))
		})
	}
}

func TestPollIsActiveAtDeleted(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	poll := &Poll{Name: "P1", StartTime: start, EndTime: end, IsDeleted: true}

	assert.False(t, poll.IsActiveAt(start.Add(time.Hour)))
}

func TestPollWindowPredicates(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	poll := &Poll{StartTime: start, EndTime: end}

	assert.True(t, poll.NotStarted(start.Add(-time.Second)))
	assert.False(t, poll.NotStarted(start))

	assert.False(t, poll.HasEnded(end))
	assert.True(t, poll.HasEnded(end.Add(time.Second)))
}
