package model

// Stats is a flat mapping of stat name to count, computed per request for
// the calling actor.
type Stats map[string]int

// Receptionist stat keys.
const (
	StatReferrals            = "referrals"
	StatReferralsByUser      = "referrals_by_user"
	StatReferralsTodayByUser = "referrals_today_by_user"
	StatPatients             = "patients"
	StatPatientsByUser       = "patients_by_user"
	StatPatientsTodayByUser  = "patients_today_by_user"
)

// Clinician stat keys.
const (
	StatReferralsToUser          = "referrals_to_user"
	StatReferralsTodayToUser     = "referrals_today_to_user"
	StatAdmissions               = "admissions"
	StatAdmissionsByUser         = "admissions_by_user"
	StatAdmissionsTodayByUser    = "admissions_today_by_user"
	StatPrescriptions            = "prescriptions"
	StatPrescriptionsByUser      = "prescriptions_by_user"
	StatPrescriptionsTodayByUser = "prescriptions_today_by_user"
)
