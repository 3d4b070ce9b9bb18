// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/share-mixer/auth"
	"github.com/danielhkuo/share-mixer/cliparse"
	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/models"
)

type PollHandler struct {
	svc *mixer.Service
	cfg cliparse.Config
}

func NewPollHandler(svc *mixer.Service, cfg cliparse.Config) *PollHandler {
	return &PollHandler{svc: svc, cfg: cfg}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{
		Polls:    h.svc.Polls(r.Context()),
		ActiveID: h.svc.ActivePollID(r.Context()),
	})
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}

	poll, err := h.svc.CreatePoll(r.Context(), req.Title, req.Categories)
	if err != nil {
		writeServiceError(w, err, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Poll:     poll,
		AdminKey: auth.GenerateAdminKey(poll.ID, h.cfg.AdminKeySalt),
	})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.svc.Poll(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Failed to load poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == models.DefaultPollID {
		middleware.ErrorResponse(w, http.StatusBadRequest, mixer.ErrDefaultPoll.Error())
		return
	}

	// Validate admin key
	if err := auth.AuthorizeRequest(r, pollID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := h.svc.DeletePoll(r.Context(), pollID); err != nil {
		writeServiceError(w, err, "Failed to delete poll")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetActivePoll handles GET /polls/active
func (h *PollHandler) GetActivePoll(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ActivePollResponse{
		PollID: h.svc.ActivePollID(r.Context()),
	})
}

// SetActivePoll handles PUT /polls/active
func (h *PollHandler) SetActivePoll(w http.ResponseWriter, r *http.Request) {
	var req models.SetActivePollRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}
	if req.PollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if err := h.svc.SetActivePoll(r.Context(), req.PollID); err != nil {
		writeServiceError(w, err, "Failed to set active poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActivePollResponse{PollID: req.PollID})
}

// writeServiceError maps mixer errors to HTTP status codes. Anything
// unexpected is logged and reported as a 500 with the fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, mixer.ErrPollNotFound), errors.Is(err, mixer.ErrCategoryNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, mixer.ErrInvalidPoll), errors.Is(err, mixer.ErrDefaultPoll):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
