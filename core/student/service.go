package student

import (
	"errors"

	"github.com/thedigitalbhaiya/ans-sub000/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateRecord(rec Record) (Record, error)
		QueryAllRecords() ([]Record, error)
		GetRecordByAdmissionNo(admissionNo string) (Record, error)
		// FindRecordsByPhone returns all records sharing the phone number,
		// ordered by admission number.
		FindRecordsByPhone(phone string) ([]Record, error)
		// FilterRecords applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Record.Name or
		// Record.AdmissionNo.
		FilterRecords(filter QueryFilter) ([]Record, error)
		UpdateRecord(rec Record) (Record, error)
		DeleteRecordsByAdmissionNo(admissionNos ...string) error
	}

	Service struct {
		repo Repository
		ids  core.IDAllocator
	}
)

func NewService(repo Repository, ids core.IDAllocator) *Service {
	return &Service{repo: repo, ids: ids}
}

func (svc *Service) Admit(nr NewRecord) (Record, error) {
	rec := Record{
		AdmissionNo: svc.ids.NextAdmissionNo(core.CurrentYear()),
		Name:        nr.Name,
		Phone:       nr.Phone,
		Class:       nr.Class,
		Section:     nr.Section,
		RollNo:      nr.RollNo,
		FatherName:  nr.FatherName,
		MotherName:  nr.MotherName,
		Photo:       nr.Photo,
	}
	return svc.repo.CreateRecord(rec)
}

func (svc *Service) QueryAll() ([]Record, error) {
	return svc.repo.QueryAllRecords()
}

func (svc *Service) GetByAdmissionNo(admissionNo string) (Record, error) {
	return svc.repo.GetRecordByAdmissionNo(core.CleanString(admissionNo))
}

func (svc *Service) FindByPhone(phone string) ([]Record, error) {
	return svc.repo.FindRecordsByPhone(core.CleanPhone(phone))
}

// Siblings returns all records sharing rec's phone number, rec included.
// It always goes back to the repository so a phone edit made elsewhere is
// reflected on the next call.
func (svc *Service) Siblings(rec Record) ([]Record, error) {
	return svc.repo.FindRecordsByPhone(rec.Phone)
}

func (svc *Service) Filter(filter QueryFilter) ([]Record, error) {
	filter.Clean()
	return svc.repo.FilterRecords(filter)
}

func (svc *Service) Update(admissionNo string, ur UpdateRecord) (Record, error) {
	orig, err := svc.repo.GetRecordByAdmissionNo(admissionNo)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		AdmissionNo:  admissionNo,
		Name:         ur.Name,
		Phone:        ur.Phone,
		Class:        ur.Class,
		Section:      ur.Section,
		RollNo:       ur.RollNo,
		Fees:         orig.Fees,
		Results:      orig.Results,
		Achievements: orig.Achievements,
	}
	if ur.FatherName != nil {
		rec.FatherName = *ur.FatherName
	} else {
		rec.FatherName = orig.FatherName
	}
	if ur.MotherName != nil {
		rec.MotherName = *ur.MotherName
	} else {
		rec.MotherName = orig.MotherName
	}
	if ur.Photo != nil {
		rec.Photo = *ur.Photo
	} else {
		rec.Photo = orig.Photo
	}
	return svc.repo.UpdateRecord(rec)
}

// RecordFee appends a fee entry on a student.
func (svc *Service) RecordFee(admissionNo string, fee FeeRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByAdmissionNo(admissionNo)
	if err != nil {
		return Record{}, err
	}
	rec.Fees = append(rec.Fees, fee)
	return svc.repo.UpdateRecord(rec)
}

// RecordResult appends an exam result on a student.
func (svc *Service) RecordResult(admissionNo string, res Result) (Record, error) {
	rec, err := svc.repo.GetRecordByAdmissionNo(admissionNo)
	if err != nil {
		return Record{}, err
	}
	rec.Results = append(rec.Results, res)
	return svc.repo.UpdateRecord(rec)
}

// RecordAchievement appends an achievement on a student.
func (svc *Service) RecordAchievement(admissionNo string, ach Achievement) (Record, error) {
	rec, err := svc.repo.GetRecordByAdmissionNo(admissionNo)
	if err != nil {
		return Record{}, err
	}
	rec.Achievements = append(rec.Achievements, ach)
	return svc.repo.UpdateRecord(rec)
}

func (svc *Service) Delete(admissionNos ...string) error {
	return svc.repo.DeleteRecordsByAdmissionNo(admissionNos...)
}
