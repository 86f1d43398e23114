package kvstore

import (
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
)

const settingsKey = "settings"

type settingsRepository struct {
	mu      sync.RWMutex
	store   *Store
	current settings.Settings
}

var _ settings.Repository = (*settingsRepository)(nil)

func NewSettingsRepository(store *Store) settings.Repository {
	repo := &settingsRepository{
		store:   store,
		current: settings.Defaults(),
	}
	store.Load(settingsKey, &repo.current)
	return repo
}

func (repo *settingsRepository) GetSettings() (settings.Settings, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.current, nil
}

func (repo *settingsRepository) SaveSettings(s settings.Settings) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.current = s
	return repo.store.Persist(settingsKey, s)
}
