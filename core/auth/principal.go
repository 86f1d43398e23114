package auth

import "github.com/thedigitalbhaiya/ans-sub000/core/admin"

// Kind discriminates the Principal union.
type Kind string

const (
	KindGuest   Kind = "guest"
	KindStudent Kind = "student"
	KindAdmin   Kind = "admin"
)

// Principal is the identity currently driving the portal. Exactly one is
// active at a time; it is never simultaneously a student and an admin.
type Principal struct {
	Kind        Kind       `json:"kind"`
	AdmissionNo string     `json:"admission_no,omitempty"` // student only
	AdminID     string     `json:"admin_id,omitempty"`     // admin only
	Role        admin.Role `json:"role,omitempty"`         // admin only
}

func Guest() Principal {
	return Principal{Kind: KindGuest}
}

func (p Principal) IsGuest() bool   { return p.Kind == KindGuest || p.Kind == "" }
func (p Principal) IsStudent() bool { return p.Kind == KindStudent }
func (p Principal) IsAdmin() bool   { return p.Kind == KindAdmin }
