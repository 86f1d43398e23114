package kvstore

import (
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

// Each piece of session state lives under its own key, like the portal
// always stored it: plain booleans for the flags, full objects for the
// active records.
const (
	isLoggedInKey     = "isLoggedIn"
	isAdminKey        = "isAdmin"
	currentStudentKey = "currentStudent"
	currentAdminKey   = "currentAdmin"
)

type sessionStore struct {
	store *Store
}

var _ auth.StateStore = (*sessionStore)(nil)

func NewSessionStore(store *Store) auth.StateStore {
	return &sessionStore{store: store}
}

func (ss *sessionStore) LoadState() auth.State {
	var state auth.State
	ss.store.Load(isLoggedInKey, &state.IsLoggedIn)
	ss.store.Load(isAdminKey, &state.IsAdmin)

	var rec student.Record
	if ss.store.Load(currentStudentKey, &rec) {
		state.Student = &rec
	}
	var acct admin.Account
	if ss.store.Load(currentAdminKey, &acct) {
		state.Admin = &acct
	}
	return state
}

func (ss *sessionStore) SaveState(state auth.State) error {
	if err := ss.store.Persist(isLoggedInKey, state.IsLoggedIn); err != nil {
		return err
	}
	if err := ss.store.Persist(isAdminKey, state.IsAdmin); err != nil {
		return err
	}
	if state.Student != nil {
		if err := ss.store.Persist(currentStudentKey, state.Student); err != nil {
			return err
		}
	} else if err := ss.store.Delete(currentStudentKey); err != nil {
		return err
	}
	if state.Admin != nil {
		return ss.store.Persist(currentAdminKey, state.Admin)
	}
	return ss.store.Delete(currentAdminKey)
}

func (ss *sessionStore) ClearState() error {
	return ss.SaveState(auth.State{})
}
