package settings_test

import (
	"testing"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
	testutil "github.com/thedigitalbhaiya/ans-sub000/tests"
)

var (
	superAdmin = admin.Account{ID: "a1", Role: admin.RoleSuperAdmin, Name: "Principal"}
	teacher    = admin.Account{ID: "a2", Role: admin.RoleTeacher, Name: "Meena", AssignedClass: "5", AssignedSection: "a"}
	staff      = admin.Account{ID: "a3", Role: admin.RoleStaff, Name: "Sanjay"}
)

func setup(t *testing.T) *settings.Service {
	conf := testutil.NewTestConfig(t)
	store := testutil.OpenStore(t, conf)
	return settings.NewService(kvstore.NewSettingsRepository(store), core.NewIDAllocator("ANS", 0))
}

func TestDefaultsWhenNothingStored(t *testing.T) {
	svc := setup(t)

	s, err := svc.Get()
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if s.SchoolName != "Adarsh Navjeevan School" {
		t.Errorf("SchoolName = %q, want the default", s.SchoolName)
	}
	if s.SessionYear != "2025-26" {
		t.Errorf("SessionYear = %q, want 2025-26", s.SessionYear)
	}
	if s.Permissions != (policy.PermissionFlags{}) {
		t.Errorf("Permissions = %+v, want all off", s.Permissions)
	}
}

func TestUpdateSuperAdminOnly(t *testing.T) {
	svc := setup(t)

	next := settings.Defaults()
	next.SchoolName = "Renamed School"

	for _, actor := range []admin.Account{teacher, staff} {
		if _, err := svc.Update(actor, next); !core.IsPermissionDenied(err) {
			t.Errorf("Update() as %s error = %v, want a permission error", actor.Role, err)
		}
	}

	s, err := svc.Update(superAdmin, next)
	if err != nil {
		t.Fatalf("Update(): %v", err)
	}
	if s.SchoolName != "Renamed School" {
		t.Errorf("SchoolName = %q, want Renamed School", s.SchoolName)
	}
}

func TestSetFlagsSuperAdminOnly(t *testing.T) {
	svc := setup(t)

	flags := policy.PermissionFlags{AllowGallery: true}
	if err := svc.SetFlags(teacher, flags); !core.IsPermissionDenied(err) {
		t.Errorf("SetFlags() as Teacher error = %v, want a permission error", err)
	}
	if err := svc.SetFlags(superAdmin, flags); err != nil {
		t.Fatalf("SetFlags(): %v", err)
	}

	got, err := svc.Flags()
	if err != nil {
		t.Fatalf("Flags(): %v", err)
	}
	if !got.AllowGallery || got.AllowFees {
		t.Errorf("Flags() = %+v, want only AllowGallery", got)
	}
}

func TestFlagFlipChangesStaffAccess(t *testing.T) {
	svc := setup(t)

	flags, err := svc.Flags()
	if err != nil {
		t.Fatalf("Flags(): %v", err)
	}
	if policy.Allowed(admin.RoleStaff, policy.FeatureGallery, flags) {
		t.Fatalf("Staff gallery access = true before the flag is set")
	}

	if err = svc.SetFlags(superAdmin, policy.PermissionFlags{AllowGallery: true}); err != nil {
		t.Fatalf("SetFlags(): %v", err)
	}
	flags, err = svc.Flags()
	if err != nil {
		t.Fatalf("Flags(): %v", err)
	}
	if !policy.Allowed(admin.RoleStaff, policy.FeatureGallery, flags) {
		t.Errorf("Staff gallery access = false after the flag is set")
	}

	if err = svc.SetFlags(superAdmin, policy.PermissionFlags{}); err != nil {
		t.Fatalf("SetFlags(): %v", err)
	}
	flags, _ = svc.Flags()
	if policy.Allowed(admin.RoleStaff, policy.FeatureGallery, flags) {
		t.Errorf("Staff gallery access = true after the flag is cleared")
	}
}

func TestSocialLinkTeacherConfinement(t *testing.T) {
	svc := setup(t)

	// a teacher's own class is fine
	link, err := svc.UpsertSocialLink(teacher, settings.SocialLink{
		Class: "5", Section: "a", Platform: "whatsapp", URL: "https://chat.example/5a",
	})
	if err != nil {
		t.Fatalf("UpsertSocialLink(): %v", err)
	}
	if link.ID == "" {
		t.Errorf("link.ID is empty, want an allocated ID")
	}

	// another class is not
	_, err = svc.UpsertSocialLink(teacher, settings.SocialLink{
		Class: "6", Section: "a", Platform: "whatsapp", URL: "https://chat.example/6a",
	})
	if err != settings.ErrClassScope {
		t.Errorf("UpsertSocialLink() error = %v, want ErrClassScope", err)
	}

	// a super admin can put a link anywhere and delete anything
	other, err := svc.UpsertSocialLink(superAdmin, settings.SocialLink{
		Class: "6", Section: "a", Platform: "youtube", URL: "https://yt.example/6a",
	})
	if err != nil {
		t.Fatalf("UpsertSocialLink(): %v", err)
	}
	if err = svc.DeleteSocialLink(teacher, other.ID); err != settings.ErrClassScope {
		t.Errorf("DeleteSocialLink() error = %v, want ErrClassScope", err)
	}
	if err = svc.DeleteSocialLink(superAdmin, other.ID); err != nil {
		t.Errorf("DeleteSocialLink(): %v", err)
	}
}

func TestSocialLinkUpsertAndQuery(t *testing.T) {
	svc := setup(t)

	link, err := svc.UpsertSocialLink(superAdmin, settings.SocialLink{
		Class: "5", Section: "a", Platform: "whatsapp", URL: "https://chat.example/old",
	})
	if err != nil {
		t.Fatalf("UpsertSocialLink(): %v", err)
	}

	// replacing by ID keeps a single link
	link.URL = "https://chat.example/new"
	if _, err = svc.UpsertSocialLink(superAdmin, link); err != nil {
		t.Fatalf("UpsertSocialLink(): %v", err)
	}

	links, err := svc.LinksForClass("5", "a")
	if err != nil {
		t.Fatalf("LinksForClass(): %v", err)
	}
	if len(links) != 1 || links[0].URL != "https://chat.example/new" {
		t.Errorf("LinksForClass() = %+v, want the single replaced link", links)
	}

	// other classes see nothing
	links, err = svc.LinksForClass("6", "a")
	if err != nil {
		t.Fatalf("LinksForClass(): %v", err)
	}
	if len(links) != 0 {
		t.Errorf("LinksForClass(6, a) = %+v, want none", links)
	}

	// an unknown ID is an explicit not-found
	if _, err = svc.UpsertSocialLink(superAdmin, settings.SocialLink{ID: "nope", Class: "5", Section: "a"}); err != settings.ErrLinkNotFound {
		t.Errorf("UpsertSocialLink() error = %v, want ErrLinkNotFound", err)
	}
	if err = svc.DeleteSocialLink(superAdmin, "nope"); err != settings.ErrLinkNotFound {
		t.Errorf("DeleteSocialLink() error = %v, want ErrLinkNotFound", err)
	}
}
