package kvstore

import (
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
)

const attendanceKey = "attendance"

type attendanceRepository struct {
	mu    sync.RWMutex
	store *Store
	table map[string]*attendance.Sheet // SheetKey -> sheet
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(store *Store) attendance.Repository {
	repo := &attendanceRepository{
		store: store,
		table: make(map[string]*attendance.Sheet),
	}
	var sheets map[string]attendance.Sheet
	if store.Load(attendanceKey, &sheets) {
		for key := range sheets {
			sheet := sheets[key]
			repo.table[key] = &sheet
		}
	}
	return repo
}

func (repo *attendanceRepository) persist() error {
	sheets := make(map[string]attendance.Sheet, len(repo.table))
	for key, sheet := range repo.table {
		sheets[key] = *sheet
	}
	return repo.store.Persist(attendanceKey, sheets)
}

func (repo *attendanceRepository) SaveSheet(sheet attendance.Sheet) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.table[attendance.SheetKey(sheet.Class, sheet.Section, sheet.Date)] = &sheet
	return repo.persist()
}

func (repo *attendanceRepository) GetSheet(class, section, date string) (attendance.Sheet, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if sheet, ok := repo.table[attendance.SheetKey(class, section, date)]; ok {
		return *sheet, nil
	}
	return attendance.Sheet{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) QuerySheetsByStudent(admissionNo string) ([]attendance.Sheet, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var sheets []attendance.Sheet
	for _, sheet := range repo.table {
		if _, ok := sheet.Entries[admissionNo]; ok {
			sheets = append(sheets, *sheet)
		}
	}
	return sheets, nil
}
