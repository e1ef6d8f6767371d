package utils

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if digest == "secret-pass" || digest == "" {
		t.Fatal("digest is not a hash")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("digest %q is not a bcrypt hash", digest)
	}

	if !CheckPassword("secret-pass", digest) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-pass", digest) {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "plaintext", "$2a$garbage"} {
		if CheckPassword("secret-pass", digest) {
			t.Errorf("malformed digest %q accepted", digest)
		}
	}
}
