// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every share-mixer route.

WithLogging writes one "request completed" line per request with method,
path, status, client IP, duration and, on /polls/{id}/... routes, the poll
id.

ParseJSONBody reads at most MaxBodyBytes and decodes exactly one JSON value.
An empty body is reported as io.EOF, which the baseline snapshot route
accepts as "keep the current label":

	var req models.SnapshotRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.BodyError(w, err)
		return
	}

BodyError maps ErrBodyTooLarge to 413 and every other decode failure to 400.

CORS lets the browser mixer call the API cross-origin, including the
X-Admin-Key header on poll deletion and the Content-Disposition header on
PNG exports.
*/
package middleware
