package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/thedigitalbhaiya/ans-sub000/core"
)

type (
	// FeeRecord is one month's fee entry on a student.
	FeeRecord struct {
		Month  string `json:"month"`
		Amount int    `json:"amount"`
		Paid   bool   `json:"paid"`
		PaidOn string `json:"paid_on,omitempty"` // YYYY-MM-DD
	}

	// Result is one exam's marks entry.
	Result struct {
		Exam     string         `json:"exam"`
		Marks    map[string]int `json:"marks"` // subject -> marks
		MaxMarks int            `json:"max_marks"`
	}

	Achievement struct {
		Title string `json:"title"`
		Date  string `json:"date"` // YYYY-MM-DD
	}

	// Record is a single admitted student. Siblings are any records sharing
	// the same phone number; nothing else links them.
	Record struct {
		AdmissionNo  string        `json:"admission_no"`
		Name         string        `json:"name"`
		Phone        string        `json:"phone"`
		Class        string        `json:"class"`
		Section      string        `json:"section"`
		RollNo       int           `json:"roll_no"`
		FatherName   string        `json:"father_name"`
		MotherName   string        `json:"mother_name"`
		Photo        string        `json:"photo,omitempty"`
		Fees         []FeeRecord   `json:"fees,omitempty"`
		Results      []Result      `json:"results,omitempty"`
		Achievements []Achievement `json:"achievements,omitempty"`
	}
)

// NewRecord contains information needed to admit a new student.
// The admission number is allocated by the service, never provided.
type NewRecord struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone"`
	Class      string `json:"class" validate:"required"`
	Section    string `json:"section" validate:"required"`
	RollNo     int    `json:"roll_no" validate:"required,min=1"`
	FatherName string `json:"father_name"`
	MotherName string `json:"mother_name"`
	Photo      string `json:"photo"`
}

func (nr *NewRecord) Validate(validate *validator.Validate, translator ut.Translator) error {
	nr.Name = core.CleanString(nr.Name)
	nr.Phone = core.CleanPhone(nr.Phone)
	nr.Class = core.CleanString(nr.Class)
	nr.Section = core.CleanString(nr.Section, true /* lower */)
	return validate.Struct(nr)
}

// UpdateRecord defines what may be modified on an existing student.
// Empty fields keep their current value.
type UpdateRecord struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone" validate:"omitempty,phone"`
	Class      string  `json:"class"`
	Section    string  `json:"section"`
	RollNo     int     `json:"roll_no" validate:"omitempty,min=1"`
	FatherName *string `json:"father_name"`
	MotherName *string `json:"mother_name"`
	Photo      *string `json:"photo"`
}

func (ur *UpdateRecord) Validate(validate *validator.Validate, translator ut.Translator, orig Record) error {
	if name := core.CleanString(ur.Name); name != "" {
		ur.Name = name
	} else {
		ur.Name = orig.Name
	}
	if ur.Phone != "" {
		ur.Phone = core.CleanPhone(ur.Phone)
	} else {
		ur.Phone = orig.Phone
	}
	if cls := core.CleanString(ur.Class); cls != "" {
		ur.Class = cls
	} else {
		ur.Class = orig.Class
	}
	if sec := core.CleanString(ur.Section, true /* lower */); sec != "" {
		ur.Section = sec
	} else {
		ur.Section = orig.Section
	}
	if ur.RollNo == 0 {
		ur.RollNo = orig.RollNo
	}
	return validate.Struct(ur)
}

type QueryFilter struct {
	Search  string `query:"search"`
	Class   string `query:"class"`
	Section string `query:"section"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Class == "" && qf.Section == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Class = core.CleanString(qf.Class)
	qf.Section = core.CleanString(qf.Section, true /* lower */)
}
