package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPatientNumber(t *testing.T) {
	assert.Equal(t, "P-1", FormatPatientNumber(1))
	assert.Equal(t, "P-42", FormatPatientNumber(42))
	assert.Equal(t, "P-100000", FormatPatientNumber(100000))
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		born time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), 36},
		{"birthday later this year", time.Date(1990, 11, 2, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, 8, 29, 0, 0, 0, 0, time.UTC), 36},
		{"birthday tomorrow", time.Date(1990, 8, 30, 0, 0, 0, 0, time.UTC), 35},
		{"born this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"born today", now.Truncate(24 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.born, now))
		})
	}
}
