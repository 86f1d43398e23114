// Package auth drives the portal's login flow and holds the session state.
//
// The flow is a three step sequence: phone entry, OTP entry, then a password
// step reached only by admin accounts. Negative outcomes (unknown phone,
// wrong code, wrong password) are result variants, not errors; the only
// errors returned are real lookup/storage failures.
package auth

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

var (
	// errors
	ErrNoStudentSession = errors.New("no student session")
)

type Service struct {
	mu sync.Mutex

	studentSvc *student.Service
	adminSvc   *admin.Service
	store      StateStore
	log        core.Logger
	otpCode    string

	principal Principal
	current   State
	flow      flowState
}

// NewService restores any persisted session before returning.
func NewService(studentSvc *student.Service, adminSvc *admin.Service, store StateStore, log core.Logger, conf *core.Config) *Service {
	svc := &Service{
		studentSvc: studentSvc,
		adminSvc:   adminSvc,
		store:      store,
		log:        log,
		otpCode:    conf.MockOTPCode,
		principal:  Guest(),
	}
	svc.restore()
	return svc
}

func (svc *Service) restore() {
	state := svc.store.LoadState()
	if !state.IsLoggedIn {
		return
	}
	switch {
	case state.IsAdmin && state.Admin != nil:
		svc.principal = Principal{Kind: KindAdmin, AdminID: state.Admin.ID, Role: state.Admin.Role}
		svc.current = state
	case !state.IsAdmin && state.Student != nil:
		svc.principal = Principal{Kind: KindStudent, AdmissionNo: state.Student.AdmissionNo}
		svc.current = state
	default:
		// flags without a record: treat as logged out
		_ = svc.store.ClearState()
	}
}

// Principal returns the identity currently driving the portal.
func (svc *Service) Principal() Principal {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.principal
}

// CurrentStudent returns the active student record, if any.
func (svc *Service) CurrentStudent() (student.Record, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current.Student == nil {
		return student.Record{}, false
	}
	return *svc.current.Student, true
}

// CurrentAdmin returns the active admin account, if any.
func (svc *Service) CurrentAdmin() (admin.Account, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current.Admin == nil {
		return admin.Account{}, false
	}
	return *svc.current.Admin, true
}

// SubmitPhone starts a login attempt. Admin accounts are looked up first (by
// phone or username); only if none matches are student records tried. An
// unknown value leaves the flow untouched at the phone step.
func (svc *Service) SubmitPhone(phone string) (PhoneResult, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	raw := core.CleanString(phone, true /* lower */)
	if raw == "" {
		return PhoneNotFound, nil
	}

	if acct, err := svc.adminSvc.GetByPhoneOrUsername(raw); err == nil {
		svc.flow = flowState{step: StepOTP, role: roleAdmin, adminMatch: acct, phone: raw}
		svc.issueOTP(acct.Phone)
		return PhoneFound, nil
	} else if err != admin.ErrNotFound {
		return PhoneNotFound, errors.Wrap(err, "finding admin by phone or username")
	}

	digits := core.CleanPhone(phone)
	matches, err := svc.studentSvc.FindByPhone(digits)
	if err != nil {
		return PhoneNotFound, errors.Wrap(err, "finding students by phone")
	}
	if len(matches) == 0 {
		return PhoneNotFound, nil
	}
	svc.flow = flowState{step: StepOTP, role: roleStudent, candidates: matches, phone: digits}
	svc.issueOTP(digits)
	return PhoneFound, nil
}

// issueOTP stands in for OTP delivery: the fixed code is only logged.
func (svc *Service) issueOTP(phone string) {
	svc.log.Info("OTP issued", map[string]interface{}{"phone": phone})
}

// SubmitOTP checks the code against the fixed mock code. Calling it with no
// flow at the OTP step is OTPInvalid; the flow cannot skip phone entry.
func (svc *Service) SubmitOTP(code string) (OTPResult, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.flow.step != StepOTP || core.CleanString(code) != svc.otpCode {
		return OTPResult{Outcome: OTPInvalid}, nil
	}

	switch svc.flow.role {
	case roleAdmin:
		svc.flow.step = StepPassword
		return OTPResult{Outcome: OTPAdvanceToPassword}, nil
	case roleStudent:
		if len(svc.flow.candidates) == 1 {
			rec := svc.flow.candidates[0]
			if err := svc.finalizeStudent(rec); err != nil {
				return OTPResult{Outcome: OTPInvalid}, err
			}
			return OTPResult{Outcome: OTPLoggedInAsStudent}, nil
		}
		// several siblings share the number; profile choice happens on a
		// separate screen via SelectProfile
		candidates := svc.flow.candidates
		svc.flow = flowState{}
		return OTPResult{Outcome: OTPAmbiguousProfiles, Candidates: candidates}, nil
	}
	return OTPResult{Outcome: OTPInvalid}, nil
}

// SubmitPassword finishes an admin flow. It only means anything at the
// password step; a wrong password is a terminal mismatch and resets the flow
// to the phone step.
func (svc *Service) SubmitPassword(password string) (PasswordResult, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.flow.step != StepPassword || svc.flow.role != roleAdmin {
		return PasswordInvalid, nil
	}
	acct := svc.flow.adminMatch
	if !acct.CheckPassword(password) {
		svc.flow = flowState{}
		return PasswordInvalid, nil
	}
	if err := svc.finalizeAdmin(acct); err != nil {
		return PasswordInvalid, err
	}
	return PasswordSuccess, nil
}

// Reset clears the flow back to the phone step. Safe to call from any state;
// the escape hatch behind every "change number" button.
func (svc *Service) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.flow = flowState{}
}

// finalizeStudent sets the Principal and persists the session flags.
func (svc *Service) finalizeStudent(rec student.Record) error {
	svc.principal = Principal{Kind: KindStudent, AdmissionNo: rec.AdmissionNo}
	svc.current = State{IsLoggedIn: true, Student: &rec}
	svc.flow = flowState{}
	return errors.Wrap(svc.store.SaveState(svc.current), "persisting session")
}

func (svc *Service) finalizeAdmin(acct admin.Account) error {
	svc.principal = Principal{Kind: KindAdmin, AdminID: acct.ID, Role: acct.Role}
	svc.current = State{IsLoggedIn: true, IsAdmin: true, Admin: &acct}
	svc.flow = flowState{}
	return errors.Wrap(svc.store.SaveState(svc.current), "persisting session")
}

// ListSiblings returns every student record sharing the active student's
// phone number, the active record included. The list is recomputed from the
// student collection on each call so a phone edit made from the admin
// console is picked up.
func (svc *Service) ListSiblings() ([]student.Record, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current.Student == nil {
		return nil, ErrNoStudentSession
	}
	return svc.studentSvc.Siblings(*svc.current.Student)
}

// SelectProfile finalizes a login as the chosen sibling. Used right after an
// OTPAmbiguousProfiles outcome, and again from the in-app profile switcher.
// An unknown admission number is student.ErrNotFound.
func (svc *Service) SelectProfile(admissionNo string) (Principal, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	rec, err := svc.studentSvc.GetByAdmissionNo(admissionNo)
	if err != nil {
		return svc.principal, err
	}
	if err = svc.finalizeStudent(rec); err != nil {
		return svc.principal, err
	}
	return svc.principal, nil
}

// SwitchProfile replaces the active student in an established session. The
// record is re-fetched even when switching to the already-active profile so
// callers always observe a fresh value.
func (svc *Service) SwitchProfile(admissionNo string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.current.Student == nil {
		return ErrNoStudentSession
	}
	rec, err := svc.studentSvc.GetByAdmissionNo(admissionNo)
	if err != nil {
		return err
	}
	svc.principal = Principal{Kind: KindStudent, AdmissionNo: rec.AdmissionNo}
	svc.current.Student = &rec
	return errors.Wrap(svc.store.SaveState(svc.current), "persisting session")
}

// Logout drops the session and resets the flow.
func (svc *Service) Logout() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.principal = Guest()
	svc.current = State{}
	svc.flow = flowState{}
	return errors.Wrap(svc.store.ClearState(), "clearing session")
}
