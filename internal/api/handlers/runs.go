package handlers

import (
	"net/http"
	"run-tracker-service/internal/api/dto"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/services"
	"strconv"
	"strings"
)

// RunHandler exposes the authenticated user's runs. Every method expects the
// auth middleware to have stored the user in the request context.
type RunHandler struct {
	Runs *services.RunService
}

// Collection serves GET (list) and POST (manual entry) on /api/runs.
func (h *RunHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

func (h *RunHandler) list(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	runs, err := h.Runs.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, "runs.list", err)
		return
	}

	writeJSON(w, r, http.StatusOK, runResponses(runs))
}

func (h *RunHandler) create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req dto.CreateRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Date == nil || req.DistanceKm == nil || req.DurationMin == nil {
		writeError(w, r, http.StatusBadRequest, "run data is incomplete")
		return
	}

	duration, err := req.DurationMin.Int()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, invalidNumberMsg)
		return
	}

	run, err := h.Runs.AddManual(r.Context(), user.ID, services.ManualRunInput{
		Date:        *req.Date,
		DistanceKm:  req.DistanceKm.Float(),
		DurationMin: duration,
	})
	if err != nil {
		writeServiceError(w, r, "runs.create", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewRunResponse(run))
}

// AddGPS serves POST /api/runs/gps.
func (h *RunHandler) AddGPS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	user := UserFromContext(r.Context())

	var req dto.GPSRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	path, ok, err := req.Path()
	if !ok || req.DurationMin == nil {
		writeError(w, r, http.StatusBadRequest, "GPS run data is incomplete (coordinates or duration missing)")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read coordinate data")
		return
	}

	run, err := h.Runs.AddGPS(r.Context(), user.ID, services.GPSRunInput{
		Path:        path,
		DurationMin: req.DurationMin.Float(),
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, r, "runs.create_gps", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewRunResponse(run))
}

// Item serves PUT and DELETE on /api/runs/{id}.
func (h *RunHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		methodNotAllowed(w, r, "PUT, DELETE")
	}
}

func (h *RunHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	user := UserFromContext(r.Context())

	var req dto.UpdateRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := services.RunPatch{Date: req.Date}
	if req.DistanceKm != nil {
		d := req.DistanceKm.Float()
		patch.DistanceKm = &d
	}
	if req.DurationMin != nil {
		m, err := req.DurationMin.Int()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, invalidNumberMsg)
			return
		}
		patch.DurationMin = &m
	}

	run, err := h.Runs.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		writeServiceError(w, r, "runs.update", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRunResponse(run))
}

func (h *RunHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	user := UserFromContext(r.Context())

	if err := h.Runs.Delete(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, "runs.delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func runResponses(runs []*domain.Run) []dto.RunResponse {
	out := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, dto.NewRunResponse(run))
	}
	return out
}
