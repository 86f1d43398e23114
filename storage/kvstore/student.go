package kvstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

const studentsKey = "students"

type studentRepository struct {
	mu    sync.RWMutex
	store *Store
	table map[string]*student.Record
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(store *Store) student.Repository {
	repo := &studentRepository{
		store: store,
		table: make(map[string]*student.Record),
	}
	var recs []student.Record
	if store.Load(studentsKey, &recs) {
		for i := range recs {
			repo.table[recs[i].AdmissionNo] = &recs[i]
		}
	}
	return repo
}

// query returns all records ordered by admission number. Callers hold the lock.
func (repo *studentRepository) query() []student.Record {
	recs := make([]student.Record, 0, len(repo.table))
	for _, rec := range repo.table {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].AdmissionNo < recs[j].AdmissionNo })
	return recs
}

// persist writes the whole collection out. Callers hold the write lock.
func (repo *studentRepository) persist() error {
	return repo.store.Persist(studentsKey, repo.query())
}

func (repo *studentRepository) CreateRecord(rec student.Record) (student.Record, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.table[rec.AdmissionNo] = &rec
	return rec, repo.persist()
}

func (repo *studentRepository) QueryAllRecords() ([]student.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetRecordByAdmissionNo(admissionNo string) (student.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if rec, ok := repo.table[admissionNo]; ok {
		return *rec, nil
	}
	return student.Record{}, student.ErrNotFound
}

func (repo *studentRepository) FindRecordsByPhone(phone string) ([]student.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var matches []student.Record
	for _, rec := range repo.query() {
		if rec.Phone == phone {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (repo *studentRepository) FilterRecords(filter student.QueryFilter) ([]student.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	recs := repo.query()
	if filter.Search != "" {
		var filtered []student.Record
		needle := strings.ToLower(filter.Search)
		for _, rec := range recs {
			if strings.Contains(strings.ToLower(rec.Name), needle) ||
				strings.Contains(strings.ToLower(rec.AdmissionNo), needle) {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}
	if recs != nil && filter.Class != "" {
		var filtered []student.Record
		for _, rec := range recs {
			if rec.Class == filter.Class {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}
	if recs != nil && filter.Section != "" {
		var filtered []student.Record
		for _, rec := range recs {
			if rec.Section == filter.Section {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}
	return recs, nil
}

func (repo *studentRepository) UpdateRecord(rec student.Record) (student.Record, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.table[rec.AdmissionNo]; !ok {
		return student.Record{}, student.ErrNotFound
	}
	repo.table[rec.AdmissionNo] = &rec
	return rec, repo.persist()
}

func (repo *studentRepository) DeleteRecordsByAdmissionNo(admissionNos ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, no := range admissionNos {
		delete(repo.table, no)
	}
	return repo.persist()
}
