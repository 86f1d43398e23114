// Package timetable keeps per-class weekly timetables. Like attendance,
// Teacher edits are confined to the assigned class/section.
package timetable

import (
	"errors"
	"fmt"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
)

var (
	// errors
	ErrNotFound   = errors.New("timetable not found")
	ErrClassScope = errors.New("class outside assigned class")
)

type Period struct {
	Start   string `json:"start"` // HH:MM
	End     string `json:"end"`   // HH:MM
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"`
}

// Timetable is one class's weekly schedule: weekday name -> ordered periods.
type Timetable struct {
	Class   string              `json:"class"`
	Section string              `json:"section"`
	Days    map[string][]Period `json:"days"`
}

// Key is the storage key for a class timetable: "class|section".
func Key(class, section string) string {
	return fmt.Sprintf("%s|%s", class, section)
}

type (
	Repository interface {
		SaveTimetable(tt Timetable) error
		GetTimetable(class, section string) (Timetable, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Set(actor admin.Account, tt Timetable) error {
	if cls, sec, confined := policy.ClassScope(actor); confined {
		if tt.Class != cls || tt.Section != sec {
			return ErrClassScope
		}
	}
	return svc.repo.SaveTimetable(tt)
}

func (svc *Service) Get(class, section string) (Timetable, error) {
	return svc.repo.GetTimetable(class, section)
}
