package auth

import (
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

// Step is the login flow's position: phone entry, OTP entry, then password
// entry (admins only).
type Step int

const (
	StepPhone Step = iota
	StepOTP
	StepPassword
)

// flowRole is the role the in-progress flow is heading towards.
type flowRole int

const (
	roleNone flowRole = iota
	roleStudent
	roleAdmin
)

// flowState is reset on every new attempt, on explicit "change number", on a
// failed terminal mismatch and on logout.
type flowState struct {
	step       Step
	role       flowRole
	candidates []student.Record // student matches, only while step == StepOTP
	adminMatch admin.Account    // matched during SubmitPhone, checked at StepPassword
	phone      string
}

// PhoneResult is the outcome of SubmitPhone.
type PhoneResult int

const (
	PhoneNotFound PhoneResult = iota
	PhoneFound
)

// OTPOutcome discriminates OTPResult.
type OTPOutcome int

const (
	// OTPInvalid: wrong code, or no flow in progress. State unchanged.
	OTPInvalid OTPOutcome = iota
	// OTPAdvanceToPassword: admin flow moves to the password step.
	OTPAdvanceToPassword
	// OTPLoggedInAsStudent: sole candidate, session finalized.
	OTPLoggedInAsStudent
	// OTPAmbiguousProfiles: several siblings matched; the flow resets and
	// the caller picks one via SelectProfile.
	OTPAmbiguousProfiles
)

type OTPResult struct {
	Outcome    OTPOutcome
	Candidates []student.Record // set only for OTPAmbiguousProfiles
}

// PasswordResult is the outcome of SubmitPassword.
type PasswordResult int

const (
	PasswordInvalid PasswordResult = iota
	PasswordSuccess
)

// State is the persisted session snapshot: the lightweight logged-in/role
// flags plus the active record, restored across restarts.
type State struct {
	IsLoggedIn bool            `json:"is_logged_in"`
	IsAdmin    bool            `json:"is_admin"`
	Student    *student.Record `json:"student,omitempty"`
	Admin      *admin.Account  `json:"admin,omitempty"`
}

// StateStore persists the session State under its own keys.
type StateStore interface {
	LoadState() State
	SaveState(s State) error
	ClearState() error
}
