package bot

import "testing"

func TestChatLimiterBurst(t *testing.T) {
	l, err := NewChatLimiter(60, 3, 16)
	if err != nil {
		t.Fatalf("NewChatLimiter: %v", err)
	}

	for i := 0; i < 3; i++ {
		if !l.Allow("U1") {
			t.Fatalf("request %d within the burst was denied", i+1)
		}
	}
	if l.Allow("U1") {
		t.Error("request beyond the burst was allowed")
	}
}

func TestChatLimiterIsolatesChats(t *testing.T) {
	l, err := NewChatLimiter(60, 1, 16)
	if err != nil {
		t.Fatalf("NewChatLimiter: %v", err)
	}

	if !l.Allow("U1") {
		t.Fatal("first chat denied its first message")
	}
	if l.Allow("U1") {
		t.Error("first chat exceeded its burst but was allowed")
	}
	if !l.Allow("U2") {
		t.Error("second chat must have its own bucket")
	}
}

func TestChatLimiterEvictionGrantsFreshBucket(t *testing.T) {
	l, err := NewChatLimiter(60, 1, 2)
	if err != nil {
		t.Fatalf("NewChatLimiter: %v", err)
	}

	l.Allow("U1")
	// Two more chats push U1 out of the two-slot cache.
	l.Allow("U2")
	l.Allow("U3")

	if !l.Allow("U1") {
		t.Error("evicted chat should start over with a full bucket")
	}
}

func TestChatLimiterRejectsBadCapacity(t *testing.T) {
	if _, err := NewChatLimiter(60, 5, 0); err == nil {
		t.Error("zero cache capacity must be rejected")
	}
}
