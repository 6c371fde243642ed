package model

// Role is the closed set of role tags a user can hold. Every user has
// exactly one.
type Role string

const (
	RoleReceptionist     Role = "Receptionist"
	RoleDoctor           Role = "Doctor"
	RoleNurse            Role = "Nurse"
	RoleStudentClinician Role = "Student Clinician"
)

// Clinicians is the disjunction used by prescription, admission and
// assigned-referral endpoints.
var Clinicians = []Role{RoleDoctor, RoleNurse, RoleStudentClinician}

// Valid reports whether r is one of the known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleReceptionist, RoleDoctor, RoleNurse, RoleStudentClinician:
		return true
	}
	return false
}

// HasAnyRole reports whether role matches at least one of the allowed roles.
// This is the single capability check every endpoint composes over.
func HasAnyRole(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// User represents a system user. Email is the login identifier and is
// globally unique.
type User struct {
	ID           int64   `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	Username     string  `json:"username" db:"username"`
	FirstName    string  `json:"first_name" db:"first_name"`
	LastName     string  `json:"last_name" db:"last_name"`
	PhoneNumber  *string `json:"phone_number" db:"phone_number"`
	Role         Role    `json:"role" db:"role"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Audit
}

// UserResponse is the hyperlinked representation of a user.
type UserResponse struct {
	URL         string  `json:"url"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Role        Role    `json:"role"`
}
