// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AdminScope is the message signed to derive the operator admin key.
const AdminScope = "weekly-pick:admin"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAuthRequired    = errors.New("authentication required")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based key for a scope.
// Deterministic, so the operator can print it from the salt alone.
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// NewCookieID returns a fresh anonymous voter identity.
func NewCookieID() string {
	return uuid.NewString()
}

// PrincipalKey derives the identity a submission is keyed on.
// A member wins over a cookie; neither yields ErrAuthRequired.
func PrincipalKey(memberID *int64, cookieID string) (string, error) {
	if memberID != nil {
		return "m:" + strconv.FormatInt(*memberID, 10), nil
	}
	if c := strings.TrimSpace(cookieID); c != "" {
		return "c:" + c, nil
	}
	return "", ErrAuthRequired
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
