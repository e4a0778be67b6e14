package controllers

import (
	"testing"
	"time"

	"Gin_postgres_redis_inventory_tracker/db"
)

func TestRecentActivityView(t *testing.T) {
	name := "Jane Cruz"
	when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := []db.HistoryRow{
		{ID: 1, Type: "BORROW", Details: "Jane Cruz borrowed 2x Stapler", Date: when, UserName: &name},
	}

	out := recentActivityView(rows)
	if len(out) != 1 {
		t.Fatalf("rows: got %d", len(out))
	}
	entry := out[0]
	if entry["title"] != "BORROW" {
		t.Fatalf("title: got %v", entry["title"])
	}
	if entry["description"] != "Jane Cruz borrowed 2x Stapler" {
		t.Fatalf("description: got %v", entry["description"])
	}
	if entry["timestamp"] != when {
		t.Fatalf("timestamp: got %v", entry["timestamp"])
	}
	for _, stale := range []string{"type", "details", "date"} {
		if _, ok := entry[stale]; ok {
			t.Fatalf("unexpected key %q in activity feed", stale)
		}
	}
}

func TestRecentActivityViewEmpty(t *testing.T) {
	if out := recentActivityView(nil); out == nil || len(out) != 0 {
		t.Fatalf("empty trail must serialize as [], got %v", out)
	}
}
