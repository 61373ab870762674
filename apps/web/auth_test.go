package webapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/directory"
)

func Test_authApi_login(t *testing.T) {
	invalidCreds := []byte(`{"error": "invalid credentials"}`)

	tests := []httpTest{
		{
			name:     "wrong secret",
			body:     marchallObj(t, auth.Attempt{Role: "student", ExternalID: "STU-001", Secret: "hunter2"}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
		{
			name:     "unknown user id", // must be indistinguishable from a wrong secret
			body:     marchallObj(t, auth.Attempt{Role: "student", ExternalID: "STU-404", Secret: testSecret}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
		{
			name:     "wrong partition",
			body:     marchallObj(t, auth.Attempt{Role: "teacher", ExternalID: "STU-001", Secret: testSecret}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
		{
			name:     "empty payload",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"role": "this field is required", "user_id": "this field is required", "password": "this field is required"}`),
		},
		{
			name:     "malformed user id",
			body:     marchallObj(t, auth.Attempt{Role: "student", ExternalID: "bogus", Secret: testSecret}),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"user_id": "must look like STU-001 (3 letters, a dash, digits)"}`),
		},
		{
			name:     "unknown role",
			body:     marchallObj(t, auth.Attempt{Role: "janitor", ExternalID: "STU-001", Secret: testSecret}),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"role": "invalid role"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := initApp(t, true)
			rec := app.do(http.MethodPost, "/v1/auth/login", tt.body)
			checkCodeAndData(t, tt, rec)

			if state := app.gate.State(); state != auth.Unauthenticated {
				t.Errorf("gate state = %v; want Unauthenticated", state)
			}
		})
	}
}

func Test_authApi_login_success(t *testing.T) {
	tests := []struct {
		role, userID, name, redirect string
	}{
		{"student", "STU-001", "Alex Johnson", "/student-dashboard"},
		{"teacher", "TCH-001", "Dr. Michael Brown", "/teacher-dashboard"},
		{"admin", "ADM-001", "Principal Wilson", "/admin-dashboard"},
		{"parent", "PAR-001", "Mr. Robert Johnson", "/parent-dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			app := initApp(t, true)
			res := app.login(t, tt.role, tt.userID)

			if res.Redirect != tt.redirect {
				t.Errorf("redirect = %q; want %q", res.Redirect, tt.redirect)
			}
			if res.Session.Identity.Name != tt.name {
				t.Errorf("identity name = %q; want %q", res.Session.Identity.Name, tt.name)
			}
			if state := app.gate.State(); state != auth.Authenticated {
				t.Errorf("gate state = %v; want Authenticated", state)
			}

			// the slot must survive a restart
			sess, err := app.store.Load()
			if err != nil {
				t.Fatalf("store.Load() failed: %v", err)
			}
			if sess.Identity.ExternalID != tt.userID {
				t.Errorf("persisted identity = %q; want %q", sess.Identity.ExternalID, tt.userID)
			}
		})
	}
}

func Test_authApi_login_forgivingInput(t *testing.T) {
	app := initApp(t, true)
	res := app.login(t, "student", "  stu-001  ")
	if res.Session.Identity.ID != "1" {
		t.Errorf("identity id = %q; want 1", res.Session.Identity.ID)
	}
}

func Test_authApi_logout(t *testing.T) {
	app := initApp(t, true)
	app.login(t, "student", "STU-001")

	rec := app.do(http.MethodPost, "/v1/auth/logout")
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout code = %d; want 204", rec.Code)
	}
	if state := app.gate.State(); state != auth.Unauthenticated {
		t.Errorf("gate state = %v; want Unauthenticated", state)
	}

	// logout is idempotent
	rec = app.do(http.MethodPost, "/v1/auth/logout")
	if rec.Code != http.StatusNoContent {
		t.Errorf("second logout code = %d; want 204", rec.Code)
	}
}

func Test_authApi_me(t *testing.T) {
	app := initApp(t, true)

	rec := app.do(http.MethodGet, "/v1/me")
	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`{"state": "unauthenticated", "loading": false}`),
	}
	checkCodeAndData(t, tt, rec)

	app.login(t, "parent", "PAR-002")

	rec = app.do(http.MethodGet, "/v1/me")
	var res MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding MeResponse failed: %v", err)
	}
	if res.State != "authenticated" || res.Loading {
		t.Errorf("me = %+v; want authenticated, not loading", res)
	}
	if res.Identity == nil || res.Identity.Role != directory.RoleParent {
		t.Errorf("me identity = %+v; want parent PAR-002", res.Identity)
	}
}
