package settings

import (
	"errors"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
)

var (
	// errors
	ErrLinkNotFound = errors.New("social link not found")
	ErrClassScope   = errors.New("link outside assigned class")
)

type (
	Repository interface {
		GetSettings() (Settings, error)
		SaveSettings(s Settings) error
	}

	Service struct {
		repo Repository
		ids  core.IDAllocator
	}
)

func NewService(repo Repository, ids core.IDAllocator) *Service {
	return &Service{repo: repo, ids: ids}
}

func (svc *Service) Get() (Settings, error) {
	return svc.repo.GetSettings()
}

// Flags returns the current Staff permission flags.
func (svc *Service) Flags() (policy.PermissionFlags, error) {
	s, err := svc.repo.GetSettings()
	if err != nil {
		return policy.PermissionFlags{}, err
	}
	return s.Permissions, nil
}

// Update replaces the settings object. Only a Super Admin may do this; the
// settings screen is denied to every other role.
func (svc *Service) Update(actor admin.Account, s Settings) (Settings, error) {
	if !actor.IsSuperAdmin() {
		return Settings{}, core.NewPermissionError("only a Super Admin may change settings")
	}
	if err := svc.repo.SaveSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SetFlags replaces the Staff permission flags, leaving the rest of the
// settings untouched. Super Admin only.
func (svc *Service) SetFlags(actor admin.Account, flags policy.PermissionFlags) error {
	if !actor.IsSuperAdmin() {
		return core.NewPermissionError("only a Super Admin may change permissions")
	}
	s, err := svc.repo.GetSettings()
	if err != nil {
		return err
	}
	s.Permissions = flags
	return svc.repo.SaveSettings(s)
}

// UpsertSocialLink adds or replaces a per-class link. A Teacher may only
// touch links for their assigned class/section.
func (svc *Service) UpsertSocialLink(actor admin.Account, link SocialLink) (SocialLink, error) {
	if cls, sec, confined := policy.ClassScope(actor); confined {
		if link.Class != cls || link.Section != sec {
			return SocialLink{}, ErrClassScope
		}
	}
	s, err := svc.repo.GetSettings()
	if err != nil {
		return SocialLink{}, err
	}
	if link.ID == "" {
		link.ID = svc.ids.NewID()
		s.SocialLinks = append(s.SocialLinks, link)
	} else {
		found := false
		for i := range s.SocialLinks {
			if s.SocialLinks[i].ID == link.ID {
				s.SocialLinks[i] = link
				found = true
				break
			}
		}
		if !found {
			return SocialLink{}, ErrLinkNotFound
		}
	}
	if err = svc.repo.SaveSettings(s); err != nil {
		return SocialLink{}, err
	}
	return link, nil
}

// DeleteSocialLink removes a per-class link, with the same Teacher
// confinement as UpsertSocialLink.
func (svc *Service) DeleteSocialLink(actor admin.Account, id string) error {
	s, err := svc.repo.GetSettings()
	if err != nil {
		return err
	}
	for i, link := range s.SocialLinks {
		if link.ID != id {
			continue
		}
		if cls, sec, confined := policy.ClassScope(actor); confined {
			if link.Class != cls || link.Section != sec {
				return ErrClassScope
			}
		}
		s.SocialLinks = append(s.SocialLinks[:i], s.SocialLinks[i+1:]...)
		return svc.repo.SaveSettings(s)
	}
	return ErrLinkNotFound
}

// LinksForClass returns the links a student of the given class/section sees.
func (svc *Service) LinksForClass(class, section string) ([]SocialLink, error) {
	s, err := svc.repo.GetSettings()
	if err != nil {
		return nil, err
	}
	var links []SocialLink
	for _, link := range s.SocialLinks {
		if link.Class == class && link.Section == section {
			links = append(links, link)
		}
	}
	return links, nil
}
