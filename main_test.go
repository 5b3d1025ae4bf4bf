// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/weekly-pick/cliparse"
)

func TestSqliteDSN(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{"bare file", "file:weekly.db", "file:weekly.db?_pragma=foreign_keys(1)"},
		{"existing query", "file:weekly.db?_pragma=busy_timeout(5000)", "file:weekly.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{"explicit pragma kept", "file:weekly.db?_pragma=foreign_keys(0)", "file:weekly.db?_pragma=foreign_keys(0)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sqliteDSN(tc.url); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestOpenDB_SqliteEnforcesForeignKeys(t *testing.T) {
	cfg := cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "file:" + filepath.Join(t.TempDir(), "weekly.db"),
	}

	conn, err := openDB(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openDB failed: %v", err)
	}
	defer conn.Close()

	var enabled int
	if err := conn.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("Failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("Expected foreign_keys = 1, got %d", enabled)
	}
}
