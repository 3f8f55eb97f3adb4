package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revaya/roicalc/internal/roi"
	"github.com/revaya/roicalc/internal/session"
	"github.com/revaya/roicalc/internal/submission"
)

// ResultResponse is returned by POST /api/calculate and GET /api/results/{id}.
type ResultResponse struct {
	ID      string      `json:"id"`
	Answers roi.Answers `json:"answers"`
	Results roi.Results `json:"results"`
	Gaps    roi.Gaps    `json:"gaps"`
}

// CalculateRequest is the body of POST /api/calculate. Numeric answers are
// pointers so an omitted field is told apart from an explicit zero.
type CalculateRequest struct {
	Industry         roi.Industry `json:"industry"`
	CallsPerWeek     *float64     `json:"callsPerWeek" required:"true"`
	AnswerPercentage *float64     `json:"answerPercentage" required:"true"`
	PhoneCoverage    roi.Coverage `json:"phoneCoverage"`
	JobValue         *float64     `json:"jobValue" required:"true"`
	CloseRate        *float64     `json:"closeRate" required:"true"`
	MonthlySpending  *float64     `json:"monthlySpending,omitempty"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
}

// answers converts the request, returning one field error per missing
// required number followed by the remaining validation failures.
func (req CalculateRequest) answers() (roi.Answers, []roi.FieldError) {
	a := roi.Answers{
		Industry:        req.Industry,
		PhoneCoverage:   req.PhoneCoverage,
		MonthlySpending: deref(req.MonthlySpending),
		Name:            req.Name,
		Email:           req.Email,
		BusinessName:    req.BusinessName,
	}.Normalize()

	var errs []roi.FieldError
	missing := map[string]bool{}
	for _, f := range []struct {
		field string
		v     *float64
		dst   *float64
	}{
		{"callsPerWeek", req.CallsPerWeek, &a.CallsPerWeek},
		{"answerPercentage", req.AnswerPercentage, &a.AnswerPercentage},
		{"jobValue", req.JobValue, &a.JobValue},
		{"closeRate", req.CloseRate, &a.CloseRate},
	} {
		if f.v == nil {
			missing[f.field] = true
			errs = append(errs, roi.FieldError{Field: f.field, Message: "is required"})
			continue
		}
		*f.dst = *f.v
	}

	for _, e := range a.Validate() {
		if !missing[e.Field] {
			errs = append(errs, e)
		}
	}
	return a, errs
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func newResultResponse(e session.Entry) ResultResponse {
	return ResultResponse{
		ID:      e.ID,
		Answers: e.Answers,
		Results: e.Results,
		Gaps:    e.Results.Gaps(),
	}
}

func handleCalculate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		answers, fields := req.answers()
		if len(fields) > 0 {
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  "invalid answers",
				Fields: fields,
			})
			return
		}

		results := deps.Policy.Compute(answers)

		entry := session.Entry{Answers: answers, Results: results, CreatedAt: deps.Now().UTC()}
		id, err := deps.Results.Put(r.Context(), entry)
		if err != nil {
			deps.Logger.Error("storing result failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		entry.ID = id

		deps.Leads.Submit(submission.NewRecord(answers, results))

		deps.Logger.Info("calculation completed",
			"id", id,
			"industry", answers.Industry,
			"coverage", answers.PhoneCoverage,
			"lost_revenue_monthly", results.LostRevenueMonthly,
		)
		writeJSON(w, http.StatusCreated, newResultResponse(entry))
	}
}

func handleGetResult(logger *slog.Logger, results session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, ok := loadResult(w, r, logger, results)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newResultResponse(entry))
	}
}

// loadResult resolves the {id} URL parameter, writing the error response
// itself when the lookup fails.
func loadResult(w http.ResponseWriter, r *http.Request, logger *slog.Logger, results session.Store) (session.Entry, bool) {
	entry, err := results.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "result not found")
		return session.Entry{}, false
	}
	if err != nil {
		logger.Error("loading result failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return session.Entry{}, false
	}
	return entry, true
}
