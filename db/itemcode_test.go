package db

import "testing"

func TestNextItemCode(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"", "ITM-0001"},
		{"ITM-0001", "ITM-0002"},
		{"ITM-0007", "ITM-0008"},
		{"ITM-0999", "ITM-1000"},
		{"ITM-9999", "ITM-10000"},
		{"garbage", "ITM-0001"},
		{"ITM-abc", "ITM-0001"},
	}
	for _, c := range cases {
		if got := nextItemCode(c.last); got != c.want {
			t.Fatalf("nextItemCode(%q) = %q, want %q", c.last, got, c.want)
		}
	}
}

func TestNextItemCodeIsMonotonic(t *testing.T) {
	code := ""
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code = nextItemCode(code)
		if seen[code] {
			t.Fatalf("code %q issued twice", code)
		}
		seen[code] = true
	}
	if code != "ITM-0050" {
		t.Fatalf("after 50 issues: got %q", code)
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{Available: 3}
	if err.Error() != "Only 3 units available." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
