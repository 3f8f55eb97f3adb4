package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// HealthStatus is one dependency entry of the /healthz response.
type HealthStatus struct {
	Status    string `json:"status" enum:"ok,error"`
	LatencyMS int64  `json:"latency_ms"`
}

// HealthResponse maps dependency names to their status.
type HealthResponse map[string]HealthStatus

type resultPath struct {
	ID string `path:"id" description:"Result id returned by POST /api/calculate."`
}

type reportQuery struct {
	ID     string `path:"id"`
	Format string `query:"format" enum:"pdf,html,md" default:"pdf"`
}

type submissionsQuery struct {
	Email string `query:"email" description:"Only submissions for this email."`
	Limit int    `query:"limit" minimum:"1" maximum:"1000" default:"100"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Missed Call ROI API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the missed-call ROI calculator quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/quiz
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/quiz")
	getQuiz.SetSummary("Quiz definition")
	getQuiz.SetDescription("Returns the questions in display order and the contact form fields.")
	getQuiz.AddRespStructure(QuizResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getQuiz)

	// GET /api/industries
	getIndustries, _ := r.NewOperationContext(http.MethodGet, "/api/industries")
	getIndustries.SetSummary("Industries")
	getIndustries.SetDescription("Returns every industry with its suggested job value and close rate.")
	getIndustries.AddRespStructure([]IndustryItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getIndustries)

	// GET /api/coverage
	getCoverage, _ := r.NewOperationContext(http.MethodGet, "/api/coverage")
	getCoverage.SetSummary("Coverage tiers")
	getCoverage.SetDescription("Returns the phone coverage tiers and the adjustment applied to each.")
	getCoverage.AddRespStructure([]CoverageItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCoverage)

	// POST /api/calculate
	postCalculate, _ := r.NewOperationContext(http.MethodPost, "/api/calculate")
	postCalculate.SetSummary("Calculate")
	postCalculate.SetDescription("Validates the answers, computes the estimate and stores it for later retrieval.")
	postCalculate.AddReqStructure(CalculateRequest{})
	postCalculate.AddRespStructure(ResultResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postCalculate.AddRespStructure(ValidationErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postCalculate)

	// GET /api/results/{id}
	getResult, _ := r.NewOperationContext(http.MethodGet, "/api/results/{id}")
	getResult.SetSummary("Get result")
	getResult.SetDescription("Returns a stored calculation.")
	getResult.AddReqStructure(resultPath{})
	getResult.AddRespStructure(ResultResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResult.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getResult)

	// GET /api/results/{id}/report
	getReport, _ := r.NewOperationContext(http.MethodGet, "/api/results/{id}/report")
	getReport.SetSummary("Download report")
	getReport.SetDescription("Exports the Missed Call Reality report as PDF, HTML or Markdown.")
	getReport.AddReqStructure(reportQuery{})
	getReport.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("application/pdf"))
	getReport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getReport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getReport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getReport)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/submissions
	listSubmissions, _ := r.NewOperationContext(http.MethodGet, "/api/admin/submissions")
	listSubmissions.SetSummary("List submissions")
	listSubmissions.SetDescription("Returns stored leads newest first. Requires admin_session cookie.")
	listSubmissions.AddReqStructure(submissionsQuery{})
	listSubmissions.AddRespStructure(SubmissionsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listSubmissions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	listSubmissions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listSubmissions)

	// GET /api/admin/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/admin/events")
	getEvents.SetSummary("Lead event stream")
	getEvents.SetDescription("Server-Sent Events stream of submission_created and pdf_downloaded events. Requires admin_session cookie.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
