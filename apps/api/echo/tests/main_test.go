package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/thedigitalbhaiya/ans-sub000/apps/api/echo"
	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/circular"
	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
	testutil "github.com/thedigitalbhaiya/ans-sub000/tests"
)

var (
	errMissingToken     = httpErr{Error: "missing or malformed jwt"}
	errPermissionDenied = httpErr{Error: "permission denied"}
	errStudentLogin     = httpErr{Error: "please log in to view your dashboard"}
)

type testApp struct {
	app *Server

	studentRepo student.Repository
	adminRepo   admin.Repository

	authSvc     *auth.Service
	studentSvc  *student.Service
	adminSvc    *admin.Service
	settingsSvc *settings.Service
}

func setup(t *testing.T) *testApp {
	conf := testutil.NewTestConfig(t)
	store := testutil.OpenStore(t, conf)

	ta := &testApp{
		studentRepo: kvstore.NewStudentRepository(store),
		adminRepo:   kvstore.NewAdminRepository(store),
	}

	ids := core.NewIDAllocator("ANS", 36)
	ta.studentSvc = student.NewService(ta.studentRepo, ids)
	ta.adminSvc = admin.NewService(ta.adminRepo, ids)
	ta.settingsSvc = settings.NewService(kvstore.NewSettingsRepository(store), ids)
	circularSvc := circular.NewService(kvstore.NewCircularRepository(store), ids, ta.settingsSvc.Flags)
	attendanceSvc := attendance.NewService(kvstore.NewAttendanceRepository(store))
	timetableSvc := timetable.NewService(kvstore.NewTimetableRepository(store))
	ta.authSvc = auth.NewService(ta.studentSvc, ta.adminSvc, kvstore.NewSessionStore(store), testutil.NewTestLogger(), conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	ta.app = NewServer(
		"",  /* addr */
		nil, /* shutdown */
		&Deps{
			Conf:          conf,
			Logger:        testutil.NewTestLogger(),
			Validate:      validate,
			Translator:    translator,
			AuthSvc:       ta.authSvc,
			StudentSvc:    ta.studentSvc,
			AdminSvc:      ta.adminSvc,
			SettingsSvc:   ta.settingsSvc,
			CircularSvc:   circularSvc,
			AttendanceSvc: attendanceSvc,
			TimetableSvc:  timetableSvc,
		},
	)
	return ta
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getStudentToken(t *testing.T, rec student.Record) string {
	token, err := GenerateToken(StudentClaims(rec))
	if err != nil {
		t.Fatalf("getStudentToken(): %v", err)
	}
	return token
}

func getAdminToken(t *testing.T, acct admin.Account) string {
	token, err := GenerateToken(AdminClaims(acct))
	if err != nil {
		t.Fatalf("getAdminToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func doJSON(t *testing.T, ta *testApp, method, path, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(method, path, token, body)
	ta.app.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v; body %s", err, rec.Body.String())
	}
}

// seedSample creates the records most tests need: two siblings on one phone,
// one only child, plus a Super Admin, a class 5a Teacher and a Staff member.
func (ta *testApp) seedSample(t *testing.T) (aarav, ishita, rohan student.Record, principal, teacher, staff admin.Account) {
	aarav = testutil.CreateStudent(t, ta.studentRepo, "ANS/2025/37", "Aarav Sharma", "9430646481", "5", "a", 12)
	ishita = testutil.CreateStudent(t, ta.studentRepo, "ANS/2025/41", "Ishita Sharma", "9430646481", "3", "a", 7)
	rohan = testutil.CreateStudent(t, ta.studentRepo, "ANS/2025/12", "Rohan Verma", "9876501234", "5", "a", 3)
	principal = testutil.CreateAdmin(t, ta.adminRepo, "a1", "principal", "123", "Principal", admin.RoleSuperAdmin, "8709605412")
	teacher = testutil.CreateTeacher(t, ta.adminRepo, "a2", "meena", "pass", "Meena Kumari", "5", "a", "9123456780")
	staff = testutil.CreateAdmin(t, ta.adminRepo, "a3", "sanjay", "pass", "Sanjay Gupta", admin.RoleStaff, "9988776655")
	return
}
