package admin

import (
	"errors"

	"github.com/thedigitalbhaiya/ans-sub000/core"
)

var (
	// errors
	ErrNotFound       = errors.New("admin account not found")
	ErrUsernameExists = errors.New("an account with this username already exists")
	ErrUnknownRole    = errors.New("unknown role")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username string, excluded ...Account) error
		CreateAccount(acct Account) (Account, error)
		QueryAllAccounts() ([]Account, error)
		GetAccountByID(id string) (Account, error)
		// GetAccountByPhoneOrUsername matches either the stored phone number
		// or the username; the login flow accepts both in its "phone" field.
		GetAccountByPhoneOrUsername(value string) (Account, error)
		UpdateAccount(acct Account) (Account, error)
		DeleteAccountsByID(ids ...string) error
	}

	Service struct {
		repo Repository
		ids  core.IDAllocator
	}
)

func NewService(repo Repository, ids core.IDAllocator) *Service {
	return &Service{repo: repo, ids: ids}
}

func (svc *Service) checkUniqueness(uname string, excl ...Account) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, excl...); err != nil {
		if err == ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(na NewAccount) (Account, error) {
	acct := Account{
		ID:              svc.ids.NewID(),
		Username:        na.Username,
		Password:        na.Password,
		Name:            na.Name,
		Role:            na.Role,
		AssignedClass:   na.AssignedClass,
		AssignedSection: na.AssignedSection,
		Photo:           na.Photo,
		Phone:           na.Phone,
	}
	return svc.repo.CreateAccount(acct)
}

func (svc *Service) QueryAll() ([]Account, error) {
	return svc.repo.QueryAllAccounts()
}

func (svc *Service) GetByID(id string) (Account, error) {
	return svc.repo.GetAccountByID(id)
}

func (svc *Service) GetByPhoneOrUsername(value string) (Account, error) {
	return svc.repo.GetAccountByPhoneOrUsername(core.CleanString(value, true /* lower */))
}

func (svc *Service) Update(id string, ua UpdateAccount) (Account, error) {
	orig, err := svc.repo.GetAccountByID(id)
	if err != nil {
		return Account{}, err
	}
	acct := Account{
		ID:       id,
		Username: ua.Username,
		Name:     ua.Name,
		Role:     ua.Role,
		Phone:    ua.Phone,
	}
	if ua.Password != "" {
		acct.Password = ua.Password
	} else {
		acct.Password = orig.Password
	}
	if ua.AssignedClass != nil {
		acct.AssignedClass = *ua.AssignedClass
	} else {
		acct.AssignedClass = orig.AssignedClass
	}
	if ua.AssignedSection != nil {
		acct.AssignedSection = *ua.AssignedSection
	} else {
		acct.AssignedSection = orig.AssignedSection
	}
	if ua.Photo != nil {
		acct.Photo = *ua.Photo
	} else {
		acct.Photo = orig.Photo
	}
	return svc.repo.UpdateAccount(acct)
}

func (svc *Service) SetPassword(username, pwd string) error {
	acct, err := svc.repo.GetAccountByPhoneOrUsername(core.CleanString(username, true /* lower */))
	if err != nil {
		return err
	}
	acct.Password = pwd
	_, err = svc.repo.UpdateAccount(acct)
	return err
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteAccountsByID(ids...)
}
