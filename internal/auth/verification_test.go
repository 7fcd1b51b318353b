package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewVerificationToken(t *testing.T) {
	a, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	b, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if len(a) != VerificationTokenBytes*2 {
		t.Fatalf("token length = %d, want %d", len(a), VerificationTokenBytes*2)
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Fatalf("token not hex: %v", err)
	}
	if a == b {
		t.Fatal("tokens repeated")
	}
}
