package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/revaya/roicalc/internal/roi"
	"github.com/revaya/roicalc/internal/submission"
)

func TestAdminLoginGoodCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/admin/login", AdminLoginRequest{Email: " Admin@Revaya.ai ", Password: testAdminPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AdminMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != testAdminEmail {
		t.Errorf("expected email %s, got %q", testAdminEmail, resp.Email)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("expected admin_session cookie")
	}
}

func TestAdminLoginRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		req        AdminLoginRequest
		wantStatus int
	}{
		{"wrong password", AdminLoginRequest{Email: testAdminEmail, Password: "nope"}, http.StatusUnauthorized},
		{"unknown admin", AdminLoginRequest{Email: "who@revaya.ai", Password: testAdminPassword}, http.StatusUnauthorized},
		{"missing fields", AdminLoginRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/admin/login", tt.req)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAdminMeAndLogout(t *testing.T) {
	env := newTestEnv(t, nil)

	if w := env.do(t, http.MethodGet, "/api/admin/me", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me without cookie: expected 401, got %d", w.Code)
	}

	cookies := env.login(t)
	w := env.do(t, http.MethodGet, "/api/admin/me", nil, cookies...)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	if w := env.do(t, http.MethodPost, "/api/admin/logout", nil, cookies...); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/admin/me", nil, cookies...); w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestAdminSubmissions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "a@example.com"} {
		a := validAnswers()
		a.Email = email
		if _, err := env.submissions.Insert(ctx, submission.NewRecord(a, roi.Compute(a))); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	if w := env.do(t, http.MethodGet, "/api/admin/submissions", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("without auth: expected 401, got %d", w.Code)
	}

	cookies := env.login(t)
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantCode  int
	}{
		{"all", "", 3, http.StatusOK},
		{"limited", "?limit=2", 2, http.StatusOK},
		{"by email", "?email=A@example.com", 2, http.StatusOK},
		{"by email limited", "?email=a@example.com&limit=1", 1, http.StatusOK},
		{"bad limit", "?limit=zero", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/admin/submissions"+tt.query, nil, cookies...)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp SubmissionsResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Count != tt.wantCount || len(resp.Submissions) != tt.wantCount {
				t.Errorf("count = %d (%d rows), want %d", resp.Count, len(resp.Submissions), tt.wantCount)
			}
		})
	}
}
