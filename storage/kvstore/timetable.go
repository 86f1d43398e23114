package kvstore

import (
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
)

const timetablesKey = "timetables"

type timetableRepository struct {
	mu    sync.RWMutex
	store *Store
	table map[string]*timetable.Timetable // Key -> timetable
}

var _ timetable.Repository = (*timetableRepository)(nil)

func NewTimetableRepository(store *Store) timetable.Repository {
	repo := &timetableRepository{
		store: store,
		table: make(map[string]*timetable.Timetable),
	}
	var tts map[string]timetable.Timetable
	if store.Load(timetablesKey, &tts) {
		for key := range tts {
			tt := tts[key]
			repo.table[key] = &tt
		}
	}
	return repo
}

func (repo *timetableRepository) persist() error {
	tts := make(map[string]timetable.Timetable, len(repo.table))
	for key, tt := range repo.table {
		tts[key] = *tt
	}
	return repo.store.Persist(timetablesKey, tts)
}

func (repo *timetableRepository) SaveTimetable(tt timetable.Timetable) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.table[timetable.Key(tt.Class, tt.Section)] = &tt
	return repo.persist()
}

func (repo *timetableRepository) GetTimetable(class, section string) (timetable.Timetable, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if tt, ok := repo.table[timetable.Key(class, section)]; ok {
		return *tt, nil
	}
	return timetable.Timetable{}, timetable.ErrNotFound
}
