package model

import "time"

// ReferralStatus tracks where a referral sits in the clinical workflow.
type ReferralStatus string

const (
	ReferralNotSeen    ReferralStatus = "Not seen"
	ReferralInProgress ReferralStatus = "In progress"
	ReferralSeen       ReferralStatus = "Seen"
)

// Valid reports whether s is a known referral status.
func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralNotSeen, ReferralInProgress, ReferralSeen:
		return true
	}
	return false
}

// Referral links a patient to the doctor they were referred to. The doctor
// reference is nulled if that user is removed; deleting the patient removes
// the referral.
type Referral struct {
	ID        int64          `json:"id" db:"id"`
	PatientID int64          `json:"patient_id" db:"patient_id"`
	DoctorID  *int64         `json:"doctor_id" db:"doctor_id"`
	Status    ReferralStatus `json:"status" db:"status"`
	Audit
}

// CreateReferralRequest takes the patient and doctor as hyperlink
// references.
type CreateReferralRequest struct {
	Patient string `json:"patient" validate:"required"`
	Doctor  string `json:"doctor" validate:"required"`
	Status  string `json:"status"`
}

// UpdateReferralRequest is a partial update; status stays untouched unless
// supplied.
type UpdateReferralRequest struct {
	Patient *string `json:"patient"`
	Doctor  *string `json:"doctor"`
	Status  *string `json:"status"`
}

// ReferralResponse is the hyperlinked representation of a referral.
type ReferralResponse struct {
	URL       string         `json:"url"`
	Patient   string         `json:"patient"`
	Doctor    *string        `json:"doctor"`
	Status    ReferralStatus `json:"status"`
	CreatedBy *string        `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedBy *string        `json:"updated_by"`
	UpdatedAt *time.Time     `json:"updated_at"`
}
