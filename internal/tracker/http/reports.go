package http

import (
	"net/http"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
)

// ReportsHandler serves aggregated reporting endpoints.
type ReportsHandler struct {
	ReportService *service.ReportService
}

// HandleSummary handles GET /v1/reports/summary
//
//	@Summary		Summary Report
//	@Description	Aggregates visible time entries into per user/project hour totals. Accepts the same project_id, user_id and date filters as the entries listing; running entries contribute zero hours.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	query		string						false	"Project ID"
//	@Param			user_id		query		string						false	"User ID (admin only)"
//	@Param			date		query		string						false	"UTC calendar day (2006-01-02)"
//	@Success		200			{object}	trackersdk.SummaryResponse	"Summary"
//	@Failure		400			{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/reports/summary [get].
func (h *ReportsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, ok := entryFilterFromQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.ReportService.Summarize(ctx, httpx.ActorID(ctx), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, summaryResponse(summary))
}
