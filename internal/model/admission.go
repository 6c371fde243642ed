package model

import "time"

// Admission links a patient to a ward. The ward reference survives ward
// deletion as null; the admission itself goes with the patient.
type Admission struct {
	ID        int64  `json:"id" db:"id"`
	WardID    *int64 `json:"ward_id" db:"ward_id"`
	PatientID int64  `json:"patient_id" db:"patient_id"`
	Audit
}

// CreateAdmissionRequest takes ward and patient as hyperlink references.
type CreateAdmissionRequest struct {
	Ward    string `json:"ward" validate:"required"`
	Patient string `json:"patient" validate:"required"`
}

// UpdateAdmissionRequest is a partial update; nil fields are untouched.
type UpdateAdmissionRequest struct {
	Ward    *string `json:"ward"`
	Patient *string `json:"patient"`
}

// AdmissionResponse is the hyperlinked representation of an admission.
type AdmissionResponse struct {
	URL       string     `json:"url"`
	Ward      *string    `json:"ward"`
	Patient   string     `json:"patient"`
	CreatedBy *string    `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedBy *string    `json:"updated_by"`
	UpdatedAt *time.Time `json:"updated_at"`
}
