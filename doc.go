// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the weekly-pick API server.

weekly-pick runs a weekly anime vote. Time is divided into quarters, each
quarter into weeks starting Monday 18:00 in the configured timezone. Exactly
one week is open for votes at a time; when it ends, the scheduler closes it
and opens the next one in a single transaction.

# Starting the Server

The server reads a .env file if present, then environment variables, then
CLI flags:

	DATABASE_URL=file:weekly.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -tz Asia/Seoul

Print the admin key for the configured salt and exit:

	go run . -print-admin-key

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file URL or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key and IP hash HMACs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TIMEZONE (-tz): Calendar timezone (default: Asia/Seoul)
  - ROLLOVER_INTERVAL (-rollover-interval): Scheduler tick (default: 1m)
  - COOKIE_SECURE: Secure flag on the vote cookie (default: true)
  - LOG_LEVEL: DEBUG, INFO, WARN or ERROR (default: INFO)

# Architecture

  - cycle: Quarter anchors and week resolution, pure functions over time
  - weeks: Current week lookup, rollover and bootstrap
  - scheduler: Periodic rollover
  - handlers: HTTP request handlers (weeks, candidates, votes, admin)
  - router: Route definitions using chi
  - middleware: CORS, logging, JSON helpers, voter identity
  - models: Domain and request/response types
  - auth: Admin key, principal keys and ID generation
  - db: Schema and Store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
