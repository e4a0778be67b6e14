package models

import (
	"testing"
	"time"
)

func TestDeriveStatusPendingAndRejectedWinOverDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	pastDue := now.AddDate(0, 0, -7)
	returned := now.AddDate(0, 0, -1)

	if got := DeriveStatus(ApprovalPending, nil, pastDue, now); got != BorrowStatusPending {
		t.Fatalf("pending past-due: got %q", got)
	}
	if got := DeriveStatus(ApprovalRejected, &returned, pastDue, now); got != BorrowStatusRejected {
		t.Fatalf("rejected with return date: got %q", got)
	}
}

func TestDeriveStatusApproved(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	if got := DeriveStatus(ApprovalApproved, &yesterday, yesterday, now); got != BorrowStatusReturned {
		t.Fatalf("returned record: got %q", got)
	}
	if got := DeriveStatus(ApprovalApproved, nil, yesterday, now); got != BorrowStatusOverdue {
		t.Fatalf("open past-due record: got %q", got)
	}
	if got := DeriveStatus(ApprovalApproved, nil, tomorrow, now); got != BorrowStatusBorrowed {
		t.Fatalf("open future-due record: got %q", got)
	}
}

func TestDeriveStatusDueTodayIsNotOverdue(t *testing.T) {
	// Due date is compared by calendar date, so a record expected back today
	// stays Borrowed even late in the evening.
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	dueMorning := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if got := DeriveStatus(ApprovalApproved, nil, dueMorning, now); got != BorrowStatusBorrowed {
		t.Fatalf("due today: got %q", got)
	}
}

func TestAvailableQty(t *testing.T) {
	if got := AvailableQty(10, 3); got != 7 {
		t.Fatalf("10-3: got %d", got)
	}
	if got := AvailableQty(5, 5); got != 0 {
		t.Fatalf("fully borrowed: got %d", got)
	}
	if got := AvailableQty(2, 6); got != 0 {
		t.Fatalf("drifted ledger must clamp at zero, got %d", got)
	}
}
