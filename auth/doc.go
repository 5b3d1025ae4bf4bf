// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity, admin key and ID generation utilities.

# Admin Key

The operator admin key is an HMAC-SHA256 of AdminScope under the configured salt:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
it never has to be stored; run the server with -print-admin-key to see it.

# Principals

A vote submission is keyed by its principal:

	key, err := auth.PrincipalKey(memberID, cookieID)

A logged-in member yields "m:<id>", otherwise a non-blank vote cookie yields
"c:<cookie>". With neither, ErrAuthRequired is returned.

NewCookieID issues the random UUID stored in the anonymous vote cookie.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving fraud detection:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
