// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/models"
)

// KST is the calendar location used across tests.
var KST = time.FixedZone("KST", 9*60*60)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The database is closed and removed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// SQLite allows one writer; a single connection serializes transactions.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore is SetupTestDB wrapped in a Store.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     "sqlite",
		AdminKeySalt:     "test-admin-salt",
		Timezone:         "KST",
		RolloverInterval: time.Minute,
		CookieSecure:     true,
		Location:         KST,
	}
}

// AdminKey returns the admin key for cfg.
func AdminKey(cfg cliparse.Config) string {
	return auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)
}

// CreateTestWeek persists a week for rec with the given status, creating its
// quarter and season as needed.
func CreateTestWeek(t *testing.T, store *db.Store, cal cycle.Calendar, rec cycle.Record, status models.VoteStatus) models.Week {
	t.Helper()
	ctx := context.Background()

	q, err := store.FindOrCreateQuarter(ctx, rec.Year, rec.Quarter, cal.Anchor(rec.Year, rec.Quarter))
	if err != nil {
		t.Fatalf("Failed to create test quarter: %v", err)
	}
	if _, err := store.FindOrCreateSeason(ctx, q); err != nil {
		t.Fatalf("Failed to create test season: %v", err)
	}

	w := models.NewWeek(cal, q, rec.Week, time.Now())
	w.VoteStatus = status
	if status != models.VoteDraft {
		opened := w.StartAt
		w.OpenedAt = &opened
	}
	if status == models.VoteClosed {
		closed := w.EndAt
		w.ClosedAt = &closed
	}

	if err := store.InsertWeek(ctx, &w); err != nil {
		t.Fatalf("Failed to create test week: %v", err)
	}
	return w
}

// AddTestAnime registers a title in the season of (year, quarter) and returns its ID.
func AddTestAnime(t *testing.T, store *db.Store, cal cycle.Calendar, year, quarter int, title string, from, until *time.Time) string {
	t.Helper()
	ctx := context.Background()

	q, err := store.FindOrCreateQuarter(ctx, year, quarter, cal.Anchor(year, quarter))
	if err != nil {
		t.Fatalf("Failed to create test quarter: %v", err)
	}
	season, err := store.FindOrCreateSeason(ctx, q)
	if err != nil {
		t.Fatalf("Failed to create test season: %v", err)
	}

	a := models.Anime{Title: title, AiringFrom: from, AiringUntil: until}
	if err := store.InsertAnime(ctx, &a, season.ID); err != nil {
		t.Fatalf("Failed to create test anime: %v", err)
	}
	return a.ID
}

// AddTestCandidate adds an anime as a candidate of a week and returns the candidate ID.
func AddTestCandidate(t *testing.T, store *db.Store, weekID, animeID string) string {
	t.Helper()
	ctx := context.Background()

	if err := store.InsertCandidates(ctx, weekID, []string{animeID}, time.Now()); err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	candidates, err := store.ListCandidates(ctx, weekID)
	if err != nil {
		t.Fatalf("Failed to list test candidates: %v", err)
	}
	for _, c := range candidates {
		if c.AnimeID == animeID {
			return c.ID
		}
	}
	t.Fatalf("Candidate for anime %s not found", animeID)
	return ""
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
