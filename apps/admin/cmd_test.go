package main

import (
	"testing"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
	testutil "github.com/thedigitalbhaiya/ans-sub000/tests"
)

var adminRepo admin.Repository

func setup(t *testing.T) *commandLine {
	conf := testutil.NewTestConfig(t)
	store := testutil.OpenStore(t, conf)
	studentRepo := kvstore.NewStudentRepository(store)
	adminRepo = kvstore.NewAdminRepository(store)
	ids := core.NewIDAllocator("ANS", 0)

	return &commandLine{
		studentRepo: studentRepo,
		studentSvc:  student.NewService(studentRepo, ids),
		adminSvc:    admin.NewService(adminRepo, ids),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	// the sibling pair shares the guardian phone
	recs, err := cli.studentRepo.FindRecordsByPhone("9430646481")
	if err != nil {
		t.Fatalf("FindRecordsByPhone(): %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(siblings) = %d, want 2", len(recs))
	}
	if recs[0].AdmissionNo != "ANS/2025/37" || recs[1].AdmissionNo != "ANS/2025/41" {
		t.Errorf("siblings = [%s %s]", recs[0].AdmissionNo, recs[1].AdmissionNo)
	}

	// the principal logs in with the seeded password
	acct, err := cli.adminSvc.GetByPhoneOrUsername("8709605412")
	if err != nil {
		t.Fatalf("GetByPhoneOrUsername(): %v", err)
	}
	if acct.Username != "principal" || !acct.IsSuperAdmin() {
		t.Errorf("account = %+v", acct)
	}
	if !acct.CheckPassword("123") {
		t.Errorf("CheckPassword(123) = false")
	}

	// seeding twice does not duplicate anything
	if err = cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	all, err := cli.studentRepo.QueryAllRecords()
	if err != nil {
		t.Fatalf("QueryAllRecords(): %v", err)
	}
	if len(all) != 4 {
		t.Errorf("len(students) = %d, want 4", len(all))
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	testutil.CreateAdmin(t, adminRepo, "a1", "principal", "123", "Principal", admin.RoleSuperAdmin, "8709605412")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no username", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "empty password", args: []string{"resetpassword", "-username", "principal"}, wantErr: errHelp},
		{name: "unknown username", args: []string{"resetpassword", "-username", "lol"}, pwd: "x", wantErrStr: "admin account not found"},
		{name: "ok", args: []string{"resetpassword", "-username", "principal"}, pwd: "better"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.pwd), nil }

			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				if err != nil {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}

	acct, err := cli.adminSvc.GetByPhoneOrUsername("principal")
	if err != nil {
		t.Fatalf("GetByPhoneOrUsername(): %v", err)
	}
	if !acct.CheckPassword("better") {
		t.Errorf("CheckPassword(better) = false after resetpassword")
	}
}

func Test_commandLine_listAdmins(t *testing.T) {
	cli := setup(t)
	testutil.CreateAdmin(t, adminRepo, "a1", "principal", "123", "Principal", admin.RoleSuperAdmin, "8709605412")

	if err := cli.run([]string{"admin", "listadmins"}); err != nil {
		t.Errorf("cli.run() error = %v", err)
	}
}
