package kvstore

import (
	"sort"
	"sync"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
)

const adminsKey = "admins"

// storedAccount carries the password, which admin.Account hides from JSON.
type storedAccount struct {
	admin.Account
	Password string `json:"password"`
}

type adminRepository struct {
	mu    sync.RWMutex
	store *Store
	table map[string]*admin.Account
}

var _ admin.Repository = (*adminRepository)(nil)

func NewAdminRepository(store *Store) admin.Repository {
	repo := &adminRepository{
		store: store,
		table: make(map[string]*admin.Account),
	}
	var stored []storedAccount
	if store.Load(adminsKey, &stored) {
		for i := range stored {
			acct := stored[i].Account
			acct.Password = stored[i].Password
			repo.table[acct.ID] = &acct
		}
	}
	return repo
}

func (repo *adminRepository) query() []admin.Account {
	accts := make([]admin.Account, 0, len(repo.table))
	for _, acct := range repo.table {
		accts = append(accts, *acct)
	}
	sort.Slice(accts, func(i, j int) bool { return accts[i].ID < accts[j].ID })
	return accts
}

func (repo *adminRepository) persist() error {
	accts := repo.query()
	stored := make([]storedAccount, len(accts))
	for i, acct := range accts {
		stored[i] = storedAccount{Account: acct, Password: acct.Password}
	}
	return repo.store.Persist(adminsKey, stored)
}

func (repo *adminRepository) CheckUsernameUniqueness(username string, excluded ...admin.Account) error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, acct := range repo.table {
		if acct.Username != username {
			continue
		}
		excl := false
		for _, e := range excluded {
			if e.ID == acct.ID {
				excl = true
				break
			}
		}
		if !excl {
			return admin.ErrUsernameExists
		}
	}
	return nil
}

func (repo *adminRepository) CreateAccount(acct admin.Account) (admin.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.table[acct.ID] = &acct
	return acct, repo.persist()
}

func (repo *adminRepository) QueryAllAccounts() ([]admin.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.query(), nil
}

func (repo *adminRepository) GetAccountByID(id string) (admin.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if acct, ok := repo.table[id]; ok {
		return *acct, nil
	}
	return admin.Account{}, admin.ErrNotFound
}

func (repo *adminRepository) GetAccountByPhoneOrUsername(value string) (admin.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	digits := core.CleanPhone(value)
	for _, acct := range repo.query() {
		if acct.Username == value || (digits != "" && acct.Phone == digits) {
			return acct, nil
		}
	}
	return admin.Account{}, admin.ErrNotFound
}

func (repo *adminRepository) UpdateAccount(acct admin.Account) (admin.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.table[acct.ID]; !ok {
		return admin.Account{}, admin.ErrNotFound
	}
	repo.table[acct.ID] = &acct
	return acct, repo.persist()
}

func (repo *adminRepository) DeleteAccountsByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, id := range ids {
		delete(repo.table, id)
	}
	return repo.persist()
}
