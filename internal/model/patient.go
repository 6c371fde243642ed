package model

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for date-only fields.
const DateFormat = "2006-01-02"

// Patient represents a hospital patient record.
type Patient struct {
	ID            int64     `json:"id" db:"id"`
	PatientNumber string    `json:"patient_number" db:"patient_number"`
	NextOfKin     string    `json:"next_of_kin" db:"next_of_kin"`
	Address       string    `json:"address" db:"address"`
	DateOfBirth   time.Time `json:"date_of_birth" db:"date_of_birth"`
	Age           int       `json:"age" db:"age"`
	Contacts      string    `json:"contacts" db:"contacts"`
	PatientName   string    `json:"patient_name" db:"patient_name"`
	Audit
}

// FormatPatientNumber derives the immutable patient number from the
// assigned numeric id.
func FormatPatientNumber(id int64) string {
	return fmt.Sprintf("P-%d", id)
}

// AgeAt returns whole years between born and now, i.e. the floor of the
// elapsed age. It is evaluated at save time, never on read.
func AgeAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// CreatePatientRequest carries the writable patient fields. Audit fields
// submitted by clients are not represented here and are therefore dropped.
type CreatePatientRequest struct {
	NextOfKin   string `json:"next_of_kin" validate:"required"`
	Address     string `json:"address" validate:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Contacts    string `json:"contacts" validate:"required"`
	PatientName string `json:"patient_name" validate:"required"`
}

// UpdatePatientRequest carries a partial update; nil fields are untouched.
type UpdatePatientRequest struct {
	NextOfKin   *string `json:"next_of_kin"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
	Contacts    *string `json:"contacts"`
	PatientName *string `json:"patient_name"`
}

// PatientResponse is the hyperlinked representation of a patient.
type PatientResponse struct {
	URL           string     `json:"url"`
	PatientNumber string     `json:"patient_number"`
	NextOfKin     string     `json:"next_of_kin"`
	Address       string     `json:"address"`
	DateOfBirth   string     `json:"date_of_birth"`
	Age           int        `json:"age"`
	Contacts      string     `json:"contacts"`
	PatientName   string     `json:"patient_name"`
	CreatedBy     *string    `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedBy     *string    `json:"updated_by"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
