package token

import (
	"strings"
	"testing"
)

func TestGenerateRandomToken_UniqueAndURLSafe(t *testing.T) {
	first, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken: %v", err)
	}
	second, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens")
	}
	if strings.ContainsAny(first, "+/=") {
		t.Fatalf("token %q is not URL safe", first)
	}
}

func TestHashSHA256_Deterministic(t *testing.T) {
	if HashSHA256("abc") != HashSHA256("abc") {
		t.Fatal("expected identical hashes for identical input")
	}
	if HashSHA256("abc") == HashSHA256("abd") {
		t.Fatal("expected different hashes for different input")
	}
	if len(HashSHA256("abc")) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(HashSHA256("abc")))
	}
}
