package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/revaya/roicalc/internal/submission"
)

const (
	defaultLeadLimit = 100
	maxLeadLimit     = 1000
)

// SubmissionsResponse is the response for GET /api/admin/submissions.
type SubmissionsResponse struct {
	Submissions []submission.Record `json:"submissions"`
	Count       int                 `json:"count"`
}

func handleAdminSubmissions(logger *slog.Logger, leads LeadLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := defaultLeadLimit
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxLeadLimit)
		}

		var (
			records []submission.Record
			err     error
		)
		if email := strings.ToLower(strings.TrimSpace(q.Get("email"))); email != "" {
			records, err = leads.ListByEmail(r.Context(), email)
			if len(records) > limit {
				records = records[:limit]
			}
		} else {
			records, err = leads.List(r.Context(), limit)
		}
		if err != nil {
			logger.Error("listing submissions failed", "admin", adminFrom(r).Email, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SubmissionsResponse{
			Submissions: records,
			Count:       len(records),
		})
	}
}
