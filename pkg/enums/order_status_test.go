package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "completed", "cancelled"} {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if status.String() != raw {
			t.Fatalf("expected %q got %q", raw, status)
		}
	}
	for _, raw := range []string{"delivered", "", "Pending"} {
		if _, err := ParseOrderStatus(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	if !OrderStatusCancelled.IsValid() {
		t.Fatalf("cancelled must be valid")
	}
	if OrderStatus("shipped").IsValid() {
		t.Fatalf("unknown status must be invalid")
	}
}
