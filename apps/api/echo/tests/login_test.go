package tests

import (
	"net/http"
	"testing"

	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

type loginResponse struct {
	Result     string           `json:"result"`
	Token      string           `json:"token"`
	Student    *student.Record  `json:"student"`
	Candidates []student.Record `json:"candidates"`
}

func Test_loginApi_submitPhone(t *testing.T) {
	ta := setup(t)
	ta.seedSample(t)

	tests := []httpTest{
		{name: "Unknown number", body: marchallObj(t, echoMap{"phone": "0000000000"}), wantData: marchallObj(t, echoMap{"result": "not_found"})},
		{name: "Student number", body: marchallObj(t, echoMap{"phone": "9876501234"}), wantData: marchallObj(t, echoMap{"result": "found"})},
		{name: "Admin number", body: marchallObj(t, echoMap{"phone": "8709605412"}), wantData: marchallObj(t, echoMap{"result": "found"})},
		{name: "Admin username", body: marchallObj(t, echoMap{"phone": "principal"}), wantData: marchallObj(t, echoMap{"result": "found"})},
		{
			name: "Phone required", body: marchallObj(t, echoMap{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoMap{"phone": "this field is required"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/phone"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

type echoMap map[string]interface{}

func Test_loginApi_studentFlow(t *testing.T) {
	ta := setup(t)
	_, _, rohan, _, _, _ := ta.seedSample(t)

	// step 1: phone
	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/phone", "", marchallObj(t, echoMap{"phone": "9876501234"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("phone: code = %v; body %s", rec.Code, rec.Body.String())
	}

	// step 2: a wrong code first
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "9999"}))
	var resp loginResponse
	decodeBody(t, rec, &resp)
	if resp.Result != "invalid" {
		t.Fatalf("otp result = %q, want invalid", resp.Result)
	}

	// then the right one: a single profile logs straight in
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "1234"}))
	resp = loginResponse{}
	decodeBody(t, rec, &resp)
	if resp.Result != "logged_in" {
		t.Fatalf("otp result = %q, want logged_in; body %s", resp.Result, rec.Body.String())
	}
	if resp.Token == "" {
		t.Errorf("token is empty")
	}
	if resp.Student == nil || resp.Student.AdmissionNo != rohan.AdmissionNo {
		t.Errorf("student = %+v, want %s", resp.Student, rohan.AdmissionNo)
	}

	// the token opens the dashboard
	rec = doJSON(t, ta, http.MethodGet, "/v1/me", resp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("dashboard: code = %v; body %s", rec.Code, rec.Body.String())
	}
}

func Test_loginApi_siblingFlow(t *testing.T) {
	ta := setup(t)
	aarav, ishita, _, _, _, _ := ta.seedSample(t)

	doJSON(t, ta, http.MethodPost, "/v1/auth/phone", "", marchallObj(t, echoMap{"phone": "9430646481"}))
	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "1234"}))

	var resp loginResponse
	decodeBody(t, rec, &resp)
	if resp.Result != "choose_profile" {
		t.Fatalf("otp result = %q, want choose_profile", resp.Result)
	}
	if len(resp.Candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(resp.Candidates))
	}
	if resp.Candidates[0].AdmissionNo != aarav.AdmissionNo || resp.Candidates[1].AdmissionNo != ishita.AdmissionNo {
		t.Errorf("candidates = [%s %s], want [%s %s]",
			resp.Candidates[0].AdmissionNo, resp.Candidates[1].AdmissionNo, aarav.AdmissionNo, ishita.AdmissionNo)
	}

	// picking a profile finishes the login
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/profiles", "", marchallObj(t, echoMap{"admission_no": aarav.AdmissionNo}))
	resp = loginResponse{}
	decodeBody(t, rec, &resp)
	if resp.Token == "" || resp.Student == nil || resp.Student.AdmissionNo != aarav.AdmissionNo {
		t.Fatalf("profiles: body %s", rec.Body.String())
	}

	// switching to the sibling from inside the session
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/switch", resp.Token, marchallObj(t, echoMap{"admission_no": ishita.AdmissionNo}))
	resp = loginResponse{}
	decodeBody(t, rec, &resp)
	if resp.Student == nil || resp.Student.AdmissionNo != ishita.AdmissionNo {
		t.Errorf("switch: body %s", rec.Body.String())
	}

	// an unknown sibling is a 404
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/profiles", "", marchallObj(t, echoMap{"admission_no": "ANS/1999/1"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("profiles (unknown): code = %v, want 404", rec.Code)
	}
}

func Test_loginApi_adminFlow(t *testing.T) {
	ta := setup(t)
	ta.seedSample(t)

	doJSON(t, ta, http.MethodPost, "/v1/auth/phone", "", marchallObj(t, echoMap{"phone": "8709605412"}))
	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "1234"}))

	var resp loginResponse
	decodeBody(t, rec, &resp)
	if resp.Result != "password_required" {
		t.Fatalf("otp result = %q, want password_required", resp.Result)
	}

	// a wrong password resets the flow; retrying is rejected too
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/password", "", marchallObj(t, echoMap{"password": "wrong"}))
	resp = loginResponse{}
	decodeBody(t, rec, &resp)
	if resp.Result != "invalid" {
		t.Fatalf("password result = %q, want invalid", resp.Result)
	}
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/password", "", marchallObj(t, echoMap{"password": "123"}))
	resp = loginResponse{}
	decodeBody(t, rec, &resp)
	if resp.Result != "invalid" {
		t.Fatalf("password after mismatch result = %q, want invalid", resp.Result)
	}

	// the whole flow again, with the right password
	doJSON(t, ta, http.MethodPost, "/v1/auth/phone", "", marchallObj(t, echoMap{"phone": "8709605412"}))
	doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "1234"}))
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/password", "", marchallObj(t, echoMap{"password": "123"}))
	var adminResp struct {
		Result string `json:"result"`
		Token  string `json:"token"`
		Admin  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"admin"`
	}
	decodeBody(t, rec, &adminResp)
	if adminResp.Result != "logged_in" || adminResp.Token == "" {
		t.Fatalf("password: body %s", rec.Body.String())
	}
	if adminResp.Admin.Username != "principal" || adminResp.Admin.Role != "Super Admin" {
		t.Errorf("admin = %+v", adminResp.Admin)
	}

	// the token opens the console
	rec = doJSON(t, ta, http.MethodGet, "/v1/admin/students", adminResp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("console: code = %v; body %s", rec.Code, rec.Body.String())
	}
}

func Test_loginApi_resetFlow(t *testing.T) {
	ta := setup(t)
	ta.seedSample(t)

	doJSON(t, ta, http.MethodPost, "/v1/auth/phone", "", marchallObj(t, echoMap{"phone": "9876501234"}))

	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/reset", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset: code = %v", rec.Code)
	}
	// twice is fine
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/reset", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset: code = %v", rec.Code)
	}

	// the OTP step is gone
	rec = doJSON(t, ta, http.MethodPost, "/v1/auth/otp", "", marchallObj(t, echoMap{"code": "1234"}))
	var resp loginResponse
	decodeBody(t, rec, &resp)
	if resp.Result != "invalid" {
		t.Errorf("otp after reset result = %q, want invalid", resp.Result)
	}
}

func Test_loginApi_sessionAndLogout(t *testing.T) {
	ta := setup(t)
	_, _, rohan, principal, _, _ := ta.seedSample(t)

	studentToken := getStudentToken(t, rohan)
	adminToken := getAdminToken(t, principal)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student session", token: studentToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, echoMap{"kind": "student", "admission_no": rohan.AdmissionNo}),
		},
		{
			name: "Admin session", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, echoMap{"kind": "admin", "admin_id": principal.ID, "role": "Super Admin"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/auth/session"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// logout drops the persisted session
	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/logout", studentToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout: code = %v", rec.Code)
	}
	if p := ta.authSvc.Principal(); !p.IsGuest() {
		t.Errorf("Principal() after logout = %+v, want guest", p)
	}
}

func Test_loginApi_refreshToken(t *testing.T) {
	ta := setup(t)
	_, _, rohan, principal, _, _ := ta.seedSample(t)

	for name, token := range map[string]string{
		"student": getStudentToken(t, rohan),
		"admin":   getAdminToken(t, principal),
	} {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, ta, http.MethodPost, "/v1/auth/token-refresh", token, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Token string `json:"token"`
			}
			decodeBody(t, rec, &resp)
			if resp.Token == "" {
				t.Errorf("token is empty")
			}
		})
	}

	// a token for a deleted student cannot refresh
	if err := ta.studentSvc.Delete(rohan.AdmissionNo); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	rec := doJSON(t, ta, http.MethodPost, "/v1/auth/token-refresh", getStudentToken(t, rohan), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh for deleted student: code = %v, want 401", rec.Code)
	}
}
