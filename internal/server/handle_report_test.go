package server

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/revaya/roicalc/internal/report"
)

func TestReportPDF(t *testing.T) {
	env := newTestEnv(t, nil)
	created := calculate(t, env, validAnswers())

	w := env.do(t, http.MethodGet, "/api/results/"+created.ID+"/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content-type = %q", got)
	}
	want := `attachment; filename=missed-call-report-dana-s-pipes-2024-03-05.pdf`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("content-disposition = %q, want %q", got, want)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if len(env.leads.downloaded) != 1 || env.leads.downloaded[0] != "dana@example.com" {
		t.Errorf("downloaded = %v", env.leads.downloaded)
	}
}

func TestReportFormats(t *testing.T) {
	env := newTestEnv(t, nil)
	created := calculate(t, env, validAnswers())

	tests := []struct {
		format      string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"md", http.StatusOK, "text/markdown; charset=utf-8", "### Perception vs. Reality"},
		{"html", http.StatusOK, "text/html; charset=utf-8", "<table>"},
		{"docx", http.StatusBadRequest, "application/json; charset=utf-8", "format must be"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/results/"+created.ID+"/report?format="+tt.format, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("content-type = %q", got)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}

	if len(env.leads.downloaded) != 0 {
		t.Errorf("non-pdf exports must not mark a download: %v", env.leads.downloaded)
	}
}

func TestReportRendererErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unavailable", report.ErrRendererUnavailable, http.StatusServiceUnavailable},
		{"failed", errors.New("chrome crashed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, fakeRenderer{err: tt.err})
			created := calculate(t, env, validAnswers())

			w := env.do(t, http.MethodGet, "/api/results/"+created.ID+"/report?format=pdf", nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if len(env.leads.downloaded) != 0 {
				t.Error("failed export must not mark a download")
			}
		})
	}
}

func TestReportUnknownResult(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/results/missing/report?format=md", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
