// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/testutil"
)

func TestNotice(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewNoticeHandler(svc)

	get := func(version string) models.NoticeResponse {
		req := testutil.MakeRequest("GET", "/notice/"+version, nil, nil)
		req.SetPathValue("version", version)
		w := httptest.NewRecorder()
		handler.GetNotice(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.NoticeResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if get(models.NoticeVersion).Dismissed {
		t.Fatal("Expected notice to be shown on first visit")
	}

	req := testutil.MakeRequest("POST", "/notice/v1/dismiss", nil, nil)
	req.SetPathValue("version", models.NoticeVersion)
	w := httptest.NewRecorder()
	handler.Dismiss(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !get(models.NoticeVersion).Dismissed {
		t.Error("Expected notice to stay dismissed")
	}
	if get("v2").Dismissed {
		t.Error("A new notice version must be shown again")
	}
}
