// Package circular holds the school's notices ("circulars"): announcements
// visible to every student, written from the admin console.
package circular

import (
	"errors"
	"sort"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
)

var (
	// errors
	ErrNotFound = errors.New("circular not found")
)

type Circular struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	IssuedBy string    `json:"issued_by"` // admin account name
	IssuedAt time.Time `json:"issued_at"` // UTC
}

type NewCircular struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

func (nc *NewCircular) Validate(validate *validator.Validate, translator ut.Translator) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Body = core.CleanString(nc.Body)
	return validate.Struct(nc)
}

type (
	Repository interface {
		CreateCircular(c Circular) (Circular, error)
		QueryAllCirculars() ([]Circular, error)
		GetCircularByID(id string) (Circular, error)
		DeleteCircularsByID(ids ...string) error
	}

	Service struct {
		repo  Repository
		ids   core.IDAllocator
		flags func() (policy.PermissionFlags, error)
	}
)

// NewService wires the circulars service. flags supplies the current Staff
// permission flags so gating reflects toggles made after construction.
func NewService(repo Repository, ids core.IDAllocator, flags func() (policy.PermissionFlags, error)) *Service {
	return &Service{repo: repo, ids: ids, flags: flags}
}

func (svc *Service) allowed(actor admin.Account) error {
	f, err := svc.flags()
	if err != nil {
		return err
	}
	if !policy.Allowed(actor.Role, policy.FeatureCirculars, f) {
		return core.NewPermissionError("not allowed to manage circulars")
	}
	return nil
}

func (svc *Service) Issue(actor admin.Account, nc NewCircular) (Circular, error) {
	if err := svc.allowed(actor); err != nil {
		return Circular{}, err
	}
	c := Circular{
		ID:       svc.ids.NewID(),
		Title:    nc.Title,
		Body:     nc.Body,
		IssuedBy: actor.Name,
		IssuedAt: time.Now().UTC(),
	}
	return svc.repo.CreateCircular(c)
}

// QueryAll returns all circulars, newest first. Readable by everyone.
func (svc *Service) QueryAll() ([]Circular, error) {
	all, err := svc.repo.QueryAllCirculars()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].IssuedAt.After(all[j].IssuedAt) })
	return all, nil
}

func (svc *Service) GetByID(id string) (Circular, error) {
	return svc.repo.GetCircularByID(id)
}

func (svc *Service) Delete(actor admin.Account, ids ...string) error {
	if err := svc.allowed(actor); err != nil {
		return err
	}
	return svc.repo.DeleteCircularsByID(ids...)
}
