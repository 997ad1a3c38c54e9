// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api exposes onboarding, recommendations and the per-user library
over HTTP.

# Routes

All API routes live under /api/v1:

	GET    /health
	POST   /onboarding                          {user_key, answers{"1": "..."}}
	POST   /recommendations/refresh             {user_key, force_new}
	GET    /profile/{userKey}
	GET    /users/{userKey}/watchlist
	POST   /users/{userKey}/watchlist           {item_id, kind, title, poster_path, status}
	PATCH  /users/{userKey}/watchlist/{kind}/{itemID}   {status}
	DELETE /users/{userKey}/watchlist/{kind}/{itemID}
	GET    /users/{userKey}/ratings
	PUT    /users/{userKey}/ratings             {item_id, kind, title, score}
	DELETE /users/{userKey}/ratings/{kind}/{itemID}
	GET    /users/{userKey}/favorites
	POST   /users/{userKey}/favorites           {person_id, name, department, profile_path}
	DELETE /users/{userKey}/favorites/{personID}

Prometheus metrics are served at /metrics outside the API prefix and its
rate limit.

# Responses

Every response uses the envelope

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Recommendation endpoints always succeed once the request is valid: upstream
catalog failures surface as a fallback list with "fallback": true rather
than as an error.

# Middleware

Request ID, real IP, access log, panic recovery, CORS and Prometheus
metrics apply to every route. The API prefix adds a per-IP rate limit and
gzip compression.
*/
package api
