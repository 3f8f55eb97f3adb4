package server

import (
	"errors"
	"mime"
	"net/http"

	"github.com/revaya/roicalc/internal/report"
)

func handleReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "pdf"
		}
		if format != "pdf" && format != "html" && format != "md" {
			writeError(w, http.StatusBadRequest, "format must be pdf, html or md")
			return
		}

		entry, ok := loadResult(w, r, deps.Logger, deps.Results)
		if !ok {
			return
		}

		date := deps.Now()
		doc := report.Build(entry.Answers, entry.Results, date)

		switch format {
		case "md":
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(doc.Markdown()))

		case "html":
			page, err := report.RenderHTML(doc)
			if err != nil {
				deps.Logger.Error("rendering html report failed", "id", entry.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(page)

		case "pdf":
			pdf, err := deps.Renderer.Render(r.Context(), doc)
			if errors.Is(err, report.ErrRendererUnavailable) {
				writeError(w, http.StatusServiceUnavailable, "pdf export unavailable")
				return
			}
			if err != nil {
				deps.Logger.Error("rendering pdf report failed", "id", entry.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to generate report")
				return
			}

			filename := report.Filename(entry.Answers.BusinessName, date)
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
			w.WriteHeader(http.StatusOK)
			w.Write(pdf)

			deps.Leads.MarkDownloaded(entry.Answers.Email)
		}
	}
}
