package server

import (
	"net/http"

	"github.com/revaya/roicalc/internal/quiz"
	"github.com/revaya/roicalc/internal/roi"
)

// QuizResponse is the response for GET /api/quiz.
type QuizResponse struct {
	TotalSteps int                 `json:"totalSteps"`
	Questions  []quiz.Question     `json:"questions"`
	Contact    []quiz.ContactField `json:"contact"`
}

// IndustryItem is one entry of GET /api/industries.
type IndustryItem struct {
	ID        roi.Industry `json:"id"`
	Label     string       `json:"label"`
	JobValue  float64      `json:"jobValue"`
	CloseRate float64      `json:"closeRate"`
}

// CoverageItem is one entry of GET /api/coverage.
type CoverageItem struct {
	ID      roi.Coverage `json:"id"`
	Label   string       `json:"label"`
	Factor  float64      `json:"factor"`
	Ceiling *float64     `json:"ceiling,omitempty"`
}

func handleQuiz() http.HandlerFunc {
	resp := QuizResponse{
		TotalSteps: quiz.Steps(),
		Questions:  quiz.Questions(),
		Contact:    quiz.ContactFields(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleIndustries() http.HandlerFunc {
	var items []IndustryItem
	for _, i := range roi.Industries() {
		jobValue, closeRate, _ := quiz.Prefill(i)
		items = append(items, IndustryItem{ID: i, Label: i.Label(), JobValue: jobValue, CloseRate: closeRate})
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, items)
	}
}

func handleCoverage(policy roi.Policy) http.HandlerFunc {
	var items []CoverageItem
	for _, c := range roi.Coverages() {
		adj := policy.Coverage[c]
		item := CoverageItem{ID: c, Label: c.Label(), Factor: adj.Factor}
		if adj.HasCeiling {
			ceiling := adj.Ceiling
			item.Ceiling = &ceiling
		}
		items = append(items, item)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, items)
	}
}
