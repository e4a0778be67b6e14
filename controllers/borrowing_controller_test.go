package controllers

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-10", time.Now())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := parseDate("10/03/2026", time.Now()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseDateEmptyFallsBackToCalendarDate(t *testing.T) {
	fallback := time.Date(2026, 3, 10, 17, 45, 3, 0, time.UTC)
	got, err := parseDate("", fallback)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
