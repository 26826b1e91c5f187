package helpers

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if len(hash) != 60 {
		t.Fatalf("hash length = %d, want 60", len(hash))
	}
	if !CompareHashAndPassword(hash, "password123") {
		t.Fatal("correct password must verify")
	}
	if CompareHashAndPassword(hash, "password124") {
		t.Fatal("wrong password must not verify")
	}
	if CompareHashAndPassword("not-a-hash", "password123") {
		t.Fatal("malformed hash must not verify")
	}
}
