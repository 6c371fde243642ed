package model

import "time"

// MinDescriptionLength is the minimum length of a prescription description.
const MinDescriptionLength = 20

// Prescription belongs to exactly one patient and is removed with it.
type Prescription struct {
	ID            int64     `json:"id" db:"id"`
	PatientID     int64     `json:"patient_id" db:"patient_id"`
	StartDatetime time.Time `json:"start_datetime" db:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime" db:"end_datetime"`
	Description   string    `json:"description" db:"description"`
	Audit
}

// CreatePrescriptionRequest takes the patient as a hyperlink reference and
// datetimes as RFC 3339 strings.
type CreatePrescriptionRequest struct {
	Patient       string `json:"patient" validate:"required"`
	StartDatetime string `json:"start_datetime" validate:"required"`
	EndDatetime   string `json:"end_datetime" validate:"required"`
	Description   string `json:"description" validate:"required,min=20"`
}

// UpdatePrescriptionRequest is a partial update; nil fields are untouched.
type UpdatePrescriptionRequest struct {
	Patient       *string `json:"patient"`
	StartDatetime *string `json:"start_datetime"`
	EndDatetime   *string `json:"end_datetime"`
	Description   *string `json:"description"`
}

// PrescriptionResponse is the hyperlinked representation of a prescription.
type PrescriptionResponse struct {
	URL           string     `json:"url"`
	Patient       string     `json:"patient"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   time.Time  `json:"end_datetime"`
	Description   string     `json:"description"`
	CreatedBy     *string    `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedBy     *string    `json:"updated_by"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
