// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the share-mixer API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg, statsClient)

# Endpoints

Health:

	GET /health

Poll definitions:

	GET    /polls         - List polls and the active poll id
	POST   /polls         - Create poll (returns admin_key)
	GET    /polls/active  - Active poll id
	PUT    /polls/active  - Select active poll
	GET    /polls/{id}    - Poll definition
	DELETE /polls/{id}    - Delete poll (requires X-Admin-Key)

Mixer state (all return the mixer state; add ?compare=1 for baseline bars):

	GET    /polls/{id}/state
	PUT    /polls/{id}/shares/{category}
	POST   /polls/{id}/reset
	POST   /polls/{id}/normalize
	POST   /polls/{id}/baseline        - Capture baseline (compare on)
	DELETE /polls/{id}/baseline
	PUT    /polls/{id}/baseline/label

Export:

	GET /polls/{id}/export.png

Notice:

	GET  /notice/{version}
	POST /notice/{version}/dismiss

Stats proxy:

	GET /api/youtube-subs?channelId=

/polls/active is more specific than /polls/{id}, so Go's ServeMux routes it
first; a poll can never be addressed by the id "active".
*/
package router
