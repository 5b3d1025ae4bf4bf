// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion with status and duration_ms.
Both lines carry the chi request ID when the router installed one.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Member-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for IP hashing in fraud detection.

# Voter Identity

Anonymous voters are identified by the vote_cookie_id cookie:

	cookieID := middleware.EnsureVoteCookie(w, r, cfg.CookieSecure)

An existing non-blank cookie is reused; otherwise a new UUID is issued with a
180 day lifetime (HttpOnly, SameSite=Lax, Path=/).

Registered members are identified by the X-Member-ID header:

	memberID, err := middleware.MemberID(r)

The header is trusted as sent. It must be set by an authenticating gateway,
which has to strip any client-supplied X-Member-ID at the edge; otherwise any
caller can vote as any member.
*/
package middleware
