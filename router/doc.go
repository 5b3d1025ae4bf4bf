// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the weekly-pick API.

# Route Registration

NewRouter creates a chi mux with all endpoints:

	mux := router.NewRouter(store, svc, cfg)

Every request passes through chi's RequestID, RealIP and Recoverer
middleware, then CORS. Handlers are wrapped in middleware.WithLogging.

# Endpoints

Health and calendar:

	GET /health                   - Database ping
	GET /cycle?at=<RFC3339>       - Resolve an instant to (year, quarter, week)
	GET /seasons                  - Prepared seasons grouped by year

Weeks (public):

	GET /weeks/current                     - The open week
	GET /weeks/{year}/{quarter}/{week}     - A week by cycle
	GET /weeks/{id}/candidates             - Candidates of a week
	GET /weeks/{id}/submission-count       - Number of submissions

Voting (member header or vote cookie):

	POST /weeks/{id}/votes   - Submit or replace a vote
	GET  /weeks/{id}/my-vote - The caller's submission

Admin (requires X-Admin-Key):

	POST /admin/rollover                         - Close the open week, open the next
	POST /admin/anime                            - Register a title in a season
	POST /admin/seasons/{year}/{quarter}/prepare - Make a season visible
*/
package router
