// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file (if present) before calling ParseFlags, so values from
it behave exactly like real environment variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - Timezone: Location of the voting calendar (default: Asia/Seoul)
  - RolloverInterval: Scheduler tick (default: 1m)
  - CookieSecure: Secure attribute of the vote cookie (default: true)
  - LogLevel: DEBUG, INFO, WARN or ERROR (default: INFO)
  - PrintAdminKey: print the admin key and exit

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-tz                Calendar timezone
	-rollover-interval Scheduler tick
	-admin-salt        Admin key salt
	-print-admin-key   Print the admin key and exit

# Environment Variables

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	TIMEZONE          → -tz
	ROLLOVER_INTERVAL → -rollover-interval
	ADMIN_KEY_SALT    → -admin-salt
	COOKIE_SECURE
	LOG_LEVEL

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT is missing
  - DATABASE_TYPE is not sqlite or postgres
  - TIMEZONE cannot be loaded
  - ROLLOVER_INTERVAL is not positive
*/
package cliparse
