// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/share-mixer/export"
	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/models"
)

type MixerHandler struct {
	svc *mixer.Service
	now func() time.Time
}

func NewMixerHandler(svc *mixer.Service) *MixerHandler {
	return &MixerHandler{svc: svc, now: time.Now}
}

// GetState handles GET /polls/{id}/state
func (h *MixerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, compareParam(r))
}

// SetShare handles PUT /polls/{id}/shares/{category}
func (h *MixerHandler) SetShare(w http.ResponseWriter, r *http.Request) {
	var req models.SetShareRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}
	if req.Value == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	if _, err := h.svc.SetShare(r.Context(), r.PathValue("id"), r.PathValue("category"), *req.Value); err != nil {
		writeServiceError(w, err, "Failed to set share")
		return
	}
	h.respondState(w, r, compareParam(r))
}

// Reset handles POST /polls/{id}/reset
func (h *MixerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Reset(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to reset shares")
		return
	}
	h.respondState(w, r, compareParam(r))
}

// Normalize handles POST /polls/{id}/normalize
func (h *MixerHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Normalize(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to normalize shares")
		return
	}
	h.respondState(w, r, compareParam(r))
}

// Snapshot handles POST /polls/{id}/baseline. An empty body keeps the
// current label.
func (h *MixerHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	var req models.SnapshotRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.BodyError(w, err)
		return
	}

	if _, err := h.svc.Snapshot(r.Context(), r.PathValue("id"), req.Label); err != nil {
		writeServiceError(w, err, "Failed to capture baseline")
		return
	}
	// capturing a baseline turns compare mode on
	h.respondState(w, r, true)
}

// ClearBaseline handles DELETE /polls/{id}/baseline
func (h *MixerHandler) ClearBaseline(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearBaseline(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to clear baseline")
		return
	}
	h.respondState(w, r, false)
}

// SetBaselineLabel handles PUT /polls/{id}/baseline/label
func (h *MixerHandler) SetBaselineLabel(w http.ResponseWriter, r *http.Request) {
	var req models.BaselineLabelRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}

	if _, err := h.svc.SetBaselineLabel(r.Context(), r.PathValue("id"), req.Label); err != nil {
		writeServiceError(w, err, "Failed to set baseline label")
		return
	}
	h.respondState(w, r, compareParam(r))
}

// ExportPNG handles GET /polls/{id}/export.png
func (h *MixerHandler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context(), r.PathValue("id"), compareParam(r))
	if err != nil {
		writeServiceError(w, err, "Failed to load state")
		return
	}

	data, err := export.PNG(state)
	if err != nil {
		if errors.Is(err, export.ErrNothingToRender) {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("export failed", "poll_id", state.Poll.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	filename := export.Filename(state.Poll.Title, h.now())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *MixerHandler) respondState(w http.ResponseWriter, r *http.Request, compare bool) {
	state, err := h.svc.State(r.Context(), r.PathValue("id"), compare)
	if err != nil {
		writeServiceError(w, err, "Failed to load state")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// compareParam reads ?compare=1 (any strconv.ParseBool true value).
func compareParam(r *http.Request) bool {
	on, _ := strconv.ParseBool(r.URL.Query().Get("compare"))
	return on
}
