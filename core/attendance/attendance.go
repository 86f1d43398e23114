// Package attendance keeps the per-date attendance sheets, keyed by
// class+section+date. Teachers can only mark their assigned class.
package attendance

import (
	"errors"
	"fmt"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

var (
	// errors
	ErrNotFound      = errors.New("attendance sheet not found")
	ErrClassScope    = errors.New("class outside assigned class")
	ErrUnknownStatus = errors.New("unknown attendance status")
)

// Sheet is one class's attendance for one date.
type Sheet struct {
	Class   string            `json:"class"`
	Section string            `json:"section"`
	Date    string            `json:"date"`    // YYYY-MM-DD
	Entries map[string]Status `json:"entries"` // admissionNo -> status
}

// SheetKey is the storage key for a sheet: "class|section|date".
func SheetKey(class, section, date string) string {
	return fmt.Sprintf("%s|%s|%s", class, section, date)
}

type (
	Repository interface {
		SaveSheet(sheet Sheet) error
		GetSheet(class, section, date string) (Sheet, error)
		// QuerySheetsByStudent returns every sheet containing the admission
		// number, in no particular order.
		QuerySheetsByStudent(admissionNo string) ([]Sheet, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark writes one class's attendance for a date, replacing any previous
// sheet. A Teacher is confined to their assigned class/section.
func (svc *Service) Mark(actor admin.Account, sheet Sheet) error {
	if cls, sec, confined := policy.ClassScope(actor); confined {
		if sheet.Class != cls || sheet.Section != sec {
			return ErrClassScope
		}
	}
	for _, status := range sheet.Entries {
		switch status {
		case StatusPresent, StatusAbsent, StatusLeave:
		default:
			return ErrUnknownStatus
		}
	}
	return svc.repo.SaveSheet(sheet)
}

func (svc *Service) Sheet(class, section, date string) (Sheet, error) {
	return svc.repo.GetSheet(class, section, date)
}

// StudentHistory returns one student's attendance across all dates as
// date -> status.
func (svc *Service) StudentHistory(admissionNo string) (map[string]Status, error) {
	sheets, err := svc.repo.QuerySheetsByStudent(admissionNo)
	if err != nil {
		return nil, err
	}
	history := make(map[string]Status, len(sheets))
	for _, sheet := range sheets {
		if status, ok := sheet.Entries[admissionNo]; ok {
			history[sheet.Date] = status
		}
	}
	return history, nil
}
