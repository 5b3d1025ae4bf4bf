// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/weekly-pick/auth"
)

const (
	VoteCookieName = "vote_cookie_id"
	VoteCookieTTL  = 180 * 24 * time.Hour

	// MemberHeader carries the authenticated member ID set by the upstream gateway.
	MemberHeader = "X-Member-ID"
)

var ErrInvalidMemberID = errors.New("invalid member id")

// VoteCookie returns the vote cookie value, or "" if it is missing or blank.
func VoteCookie(r *http.Request) string {
	c, err := r.Cookie(VoteCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// EnsureVoteCookie returns the caller's vote cookie, issuing a new one when
// the request carries none. An existing non-blank cookie is never replaced.
func EnsureVoteCookie(w http.ResponseWriter, r *http.Request, secure bool) string {
	if existing := VoteCookie(r); existing != "" {
		return existing
	}

	id := auth.NewCookieID()
	http.SetCookie(w, &http.Cookie{
		Name:     VoteCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(VoteCookieTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// MemberID reads the member header. A missing header yields nil.
func MemberID(r *http.Request) (*int64, error) {
	raw := strings.TrimSpace(r.Header.Get(MemberHeader))
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidMemberID
	}
	return &id, nil
}
