package db

import (
	"errors"
	"testing"

	"Gin_postgres_redis_inventory_tracker/models"
)

func TestCheckStockPreventsOverbooking(t *testing.T) {
	// 5 owned, 3 out: a request for 3 must fail naming the 2 that remain.
	err := checkStock(5, 3, 3)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
	if stockErr.Available != 2 {
		t.Fatalf("available: got %d, want 2", stockErr.Available)
	}
	if stockErr.Error() != "Only 2 units available." {
		t.Fatalf("unexpected message: %q", stockErr.Error())
	}

	if err := checkStock(5, 3, 2); err != nil {
		t.Fatalf("request within availability: %v", err)
	}
}

func TestCheckStockClampsDriftedLedger(t *testing.T) {
	err := checkStock(2, 6, 1)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
	if stockErr.Available != 0 {
		t.Fatalf("drifted ledger must report 0, got %d", stockErr.Available)
	}
}

func TestApprovalTransitionOnlyFromPending(t *testing.T) {
	for _, current := range []string{models.ApprovalApproved, models.ApprovalRejected} {
		for _, approve := range []bool{true, false} {
			if _, _, err := approvalTransition(current, approve); !errors.Is(err, ErrNotPending) {
				t.Fatalf("transition from %q (approve=%v): got %v", current, approve, err)
			}
		}
	}

	status, action, err := approvalTransition(models.ApprovalPending, true)
	if err != nil || status != models.ApprovalApproved || action != models.ActionApprove {
		t.Fatalf("approve from Pending: got %q/%q/%v", status, action, err)
	}
	status, action, err = approvalTransition(models.ApprovalPending, false)
	if err != nil || status != models.ApprovalRejected || action != models.ActionReject {
		t.Fatalf("reject from Pending: got %q/%q/%v", status, action, err)
	}
}

func TestItemDeletableBlocksOpenBorrows(t *testing.T) {
	if err := itemDeletable(1); !errors.Is(err, ErrItemBorrowed) {
		t.Fatalf("one open borrow: got %v", err)
	}
	if err := itemDeletable(0); err != nil {
		t.Fatalf("no open borrows: got %v", err)
	}
}

func TestNeedsRemovalIsIdempotent(t *testing.T) {
	if needsRemoval(models.StatusRemoved) {
		t.Fatal("removing a Removed account must be a no-op")
	}
	if !needsRemoval(models.StatusActive) || !needsRemoval(models.StatusInactive) {
		t.Fatal("Active and Inactive accounts must be removable")
	}
}

func TestActivationGuard(t *testing.T) {
	if err := activationGuard(models.StatusInactive); err != nil {
		t.Fatalf("inactive account: got %v", err)
	}
	// An Active account must never have its password replaced through the
	// unauthenticated first-login endpoint.
	if err := activationGuard(models.StatusActive); !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("active account: got %v", err)
	}
	if err := activationGuard(models.StatusRemoved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removed account: got %v", err)
	}
}

func TestHistoryScope(t *testing.T) {
	// A User-role session is pinned to its own entries even when the path
	// names a staff account.
	actorID, restricted := historyScope(7, models.RoleUser, 1, models.RoleSuperadmin)
	if !restricted || actorID != 7 {
		t.Fatalf("user viewing admin trail: got actor %d restricted=%v", actorID, restricted)
	}

	// Staff viewing a User-role subject sees just that subject's entries.
	actorID, restricted = historyScope(1, models.RoleAdmin, 7, models.RoleUser)
	if !restricted || actorID != 7 {
		t.Fatalf("admin viewing user trail: got actor %d restricted=%v", actorID, restricted)
	}

	// Staff viewing staff sees everything.
	if _, restricted = historyScope(1, models.RoleSuperadmin, 2, models.RoleAdmin); restricted {
		t.Fatal("staff viewing staff must be unrestricted")
	}
}
