package kvstore

import (
	"sort"
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core/circular"
)

const circularsKey = "circulars"

type circularRepository struct {
	mu    sync.RWMutex
	store *Store
	table map[string]*circular.Circular
}

var _ circular.Repository = (*circularRepository)(nil)

func NewCircularRepository(store *Store) circular.Repository {
	repo := &circularRepository{
		store: store,
		table: make(map[string]*circular.Circular),
	}
	var all []circular.Circular
	if store.Load(circularsKey, &all) {
		for i := range all {
			repo.table[all[i].ID] = &all[i]
		}
	}
	return repo
}

func (repo *circularRepository) query() []circular.Circular {
	all := make([]circular.Circular, 0, len(repo.table))
	for _, c := range repo.table {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (repo *circularRepository) persist() error {
	return repo.store.Persist(circularsKey, repo.query())
}

func (repo *circularRepository) CreateCircular(c circular.Circular) (circular.Circular, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.table[c.ID] = &c
	return c, repo.persist()
}

func (repo *circularRepository) QueryAllCirculars() ([]circular.Circular, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.query(), nil
}

func (repo *circularRepository) GetCircularByID(id string) (circular.Circular, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if c, ok := repo.table[id]; ok {
		return *c, nil
	}
	return circular.Circular{}, circular.ErrNotFound
}

func (repo *circularRepository) DeleteCircularsByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, id := range ids {
		delete(repo.table, id)
	}
	return repo.persist()
}
