package testutil

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	logsvc "github.com/thedigitalbhaiya/ans-sub000/services/logger"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
)

// NewTestConfig returns a config pointing the store at a per-test temp dir.
func NewTestConfig(t *testing.T) *core.Config {
	return &core.Config{
		Env:         "TEST",
		Debug:       false,
		TestMode:    true,
		AppName:     "ANS Portal",
		SecretKey:   []byte("test-secret"),
		DataDir:     t.TempDir(),
		MockOTPCode: "1234",
		Server: core.ServerConfig{
			Host:                      "localhost",
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: time.Hour,
		},
	}
}

func NewTestLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
}

// OpenStore opens a kvstore on a per-test temp dir.
func OpenStore(t *testing.T, conf *core.Config) *kvstore.Store {
	store, err := kvstore.Open(conf.DataDir, NewTestLogger())
	if err != nil {
		t.Fatalf("OpenStore(): %v", err)
	}
	return store
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	admissionNo, name, phone, class, section string,
	rollNo int,
) student.Record {
	rec, err := repo.CreateRecord(student.Record{
		AdmissionNo: admissionNo,
		Name:        name,
		Phone:       phone,
		Class:       class,
		Section:     section,
		RollNo:      rollNo,
	})
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return rec
}

func CreateAdmin(
	t *testing.T,
	repo admin.Repository,
	id, username, password, name string,
	role admin.Role,
	phone string,
) admin.Account {
	acct, err := repo.CreateAccount(admin.Account{
		ID:       id,
		Username: username,
		Password: password,
		Name:     name,
		Role:     role,
		Phone:    phone,
	})
	if err != nil {
		t.Fatalf("CreateAdmin(): %v", err)
	}
	return acct
}

// CreateTeacher creates a Teacher account confined to class/section.
func CreateTeacher(
	t *testing.T,
	repo admin.Repository,
	id, username, password, name, class, section, phone string,
) admin.Account {
	acct, err := repo.CreateAccount(admin.Account{
		ID:              id,
		Username:        username,
		Password:        password,
		Name:            name,
		Role:            admin.RoleTeacher,
		AssignedClass:   class,
		AssignedSection: section,
		Phone:           phone,
	})
	if err != nil {
		t.Fatalf("CreateTeacher(): %v", err)
	}
	return acct
}
