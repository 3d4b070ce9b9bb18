// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/models"
)

type NoticeHandler struct {
	svc *mixer.Service
}

func NewNoticeHandler(svc *mixer.Service) *NoticeHandler {
	return &NoticeHandler{svc: svc}
}

// GetNotice handles GET /notice/{version}
func (h *NoticeHandler) GetNotice(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	middleware.JSONResponse(w, http.StatusOK, models.NoticeResponse{
		Version:   version,
		Dismissed: h.svc.NoticeDismissed(r.Context(), version),
	})
}

// Dismiss handles POST /notice/{version}/dismiss. A failed write is logged by
// the service; the notice is still reported dismissed for this client.
func (h *NoticeHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	h.svc.DismissNotice(r.Context(), version)
	middleware.JSONResponse(w, http.StatusOK, models.NoticeResponse{
		Version:   version,
		Dismissed: true,
	})
}
