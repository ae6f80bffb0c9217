package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

// TimeEntriesHandler handles timer lifecycle and manual entry endpoints.
type TimeEntriesHandler struct {
	TimeEntryService *service.TimeEntryService
}

// HandleStart handles POST /v1/timers/start
//
//	@Summary		Start Timer
//	@Description	Starts a running time entry for the caller on a project. A caller can have at most one running timer; a second start reports the conflicting project.
//	@Tags			Timers
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		trackersdk.StartTimerRequest	true	"Timer start request"
//	@Success		201		{object}	trackersdk.TimeEntryInfo		"Running entry"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/timers/start [post].
func (h *TimeEntriesHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.StartTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	entry, err := h.TimeEntryService.StartTimer(ctx, httpx.ActorID(ctx), req.ProjectID, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, entryInfo(entry))
}

// HandleStop handles POST /v1/timers/{id}/stop
//
//	@Summary		Stop Timer
//	@Description	Stops the caller's running entry, deriving its duration in whole minutes. Stopping an already stopped entry is a conflict.
//	@Tags			Timers
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Time entry ID (ULID)"
//	@Success		200	{object}	trackersdk.TimeEntryInfo	"Stopped entry"
//	@Failure		404	{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/timers/{id}/stop [post].
func (h *TimeEntriesHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, err := h.TimeEntryService.StopTimer(ctx, httpx.ActorID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, entryInfo(entry))
}

// HandleCreate handles POST /v1/entries
//
//	@Summary		Create Manual Entry
//	@Description	Records a completed time entry with explicit start and end times. The end must come strictly after the start.
//	@Tags			Entries
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		trackersdk.ManualEntryRequest	true	"Manual entry request"
//	@Success		201		{object}	trackersdk.TimeEntryInfo		"Created entry"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/entries [post].
func (h *TimeEntriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	entry, err := h.TimeEntryService.CreateManualEntry(
		ctx,
		httpx.ActorID(ctx),
		req.ProjectID,
		req.Description,
		req.StartTime,
		req.EndTime,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, entryInfo(entry))
}

// HandleList handles GET /v1/entries
//
//	@Summary		List Entries
//	@Description	Returns time entries matching the optional project_id, user_id and date filters. Members only ever see their own entries; admins see everyone's.
//	@Tags			Entries
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	query		string							false	"Project ID"
//	@Param			user_id		query		string							false	"User ID (admin only)"
//	@Param			date		query		string							false	"UTC calendar day (2006-01-02)"
//	@Success		200			{object}	trackersdk.ListEntriesResponse	"Entries"
//	@Failure		400			{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/entries [get].
func (h *TimeEntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, ok := entryFilterFromQuery(w, r)
	if !ok {
		return
	}

	entries, err := h.TimeEntryService.ListEntries(ctx, httpx.ActorID(ctx), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	infos := make([]trackersdk.TimeEntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = entryInfo(e)
	}

	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListEntriesResponse{Entries: infos})
}

// entryFilterFromQuery parses the shared entry filter query parameters.
// It writes a 400 response and returns ok=false on a malformed date.
func entryFilterFromQuery(w http.ResponseWriter, r *http.Request) (store.TimeEntryFilter, bool) {
	q := r.URL.Query()
	filter := store.TimeEntryFilter{
		UserID:    q.Get("user_id"),
		ProjectID: q.Get("project_id"),
	}

	if raw := q.Get("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, trackersdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "date must be formatted as 2006-01-02",
			})
			return store.TimeEntryFilter{}, false
		}
		filter.Day = &day
	}

	return filter, true
}
