package admin

import (
	"crypto/subtle"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/thedigitalbhaiya/ans-sub000/core"
)

// Roles
type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleTeacher    Role = "Teacher"
	RoleStaff      Role = "Staff"
)

var AllRoles = []Role{RoleSuperAdmin, RoleTeacher, RoleStaff}

// Known reports whether r is one of the closed role set. Unrecognized roles
// can still exist in stored data; the policy layer decides what they may do.
func (r Role) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleTeacher, RoleStaff:
		return true
	}
	return false
}

// Account is a member of the school administration: the principal, teachers
// and office staff. Passwords and the mock OTP are stored and compared in
// plaintext; this portal is a demo system with no real credential handling.
type Account struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Password        string `json:"-"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	AssignedClass   string `json:"assigned_class,omitempty"`   // Teacher only
	AssignedSection string `json:"assigned_section,omitempty"` // Teacher only
	Photo           string `json:"photo,omitempty"`
	Phone           string `json:"phone"`
}

func (a *Account) CheckPassword(pwd string) bool {
	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(pwd)) == 1
}

func (a *Account) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
func (a *Account) IsTeacher() bool    { return a.Role == RoleTeacher }
func (a *Account) IsStaff() bool      { return a.Role == RoleStaff }

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
	Role            Role   `json:"role" validate:"required"`
	AssignedClass   string `json:"assigned_class"`
	AssignedSection string `json:"assigned_section"`
	Photo           string `json:"photo"`
	Phone           string `json:"phone" validate:"required,phone"`
}

func (na *NewAccount) Validate(validate *validator.Validate, translator ut.Translator, svc *Service) error {
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Name = core.CleanString(na.Name)
	na.Phone = core.CleanPhone(na.Phone)

	if err := validate.Struct(na); err != nil {
		return err
	}
	if !na.Role.Known() {
		return core.NewValidationError(ErrUnknownRole, core.FieldError{Field: "role", Error: ErrUnknownRole.Error()})
	}
	return svc.checkUniqueness(na.Username)
}

// UpdateAccount defines what information may be provided to modify an existing Account.
// Empty fields keep their current value.
type UpdateAccount struct {
	Username        string  `json:"username" validate:"omitempty,min=3"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
	Name            string  `json:"name"`
	Role            Role    `json:"role"`
	AssignedClass   *string `json:"assigned_class"`
	AssignedSection *string `json:"assigned_section"`
	Photo           *string `json:"photo"`
	Phone           string  `json:"phone" validate:"omitempty,phone"`
}

func (ua *UpdateAccount) Validate(validate *validator.Validate, translator ut.Translator, orig Account, svc *Service) error {
	uname := core.CleanString(ua.Username, true /* lower */)
	if uname != "" {
		ua.Username = uname
	} else {
		ua.Username = orig.Username
	}
	if name := core.CleanString(ua.Name); name != "" {
		ua.Name = name
	} else {
		ua.Name = orig.Name
	}
	if ua.Phone != "" {
		ua.Phone = core.CleanPhone(ua.Phone)
	} else {
		ua.Phone = orig.Phone
	}
	if ua.Role == "" {
		ua.Role = orig.Role
	}

	if err := validate.Struct(ua); err != nil {
		return err
	}
	if !ua.Role.Known() {
		return core.NewValidationError(ErrUnknownRole, core.FieldError{Field: "role", Error: ErrUnknownRole.Error()})
	}
	return svc.checkUniqueness(ua.Username, orig)
}
