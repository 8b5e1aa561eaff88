package token

import (
	"testing"
	"time"
)

func testClaims(ttl time.Duration) Claims {
	now := time.Now().UTC().Truncate(time.Second)
	return Claims{
		SubjectID: "user-42",
		Role:      "user",
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret")
	claims := testClaims(time.Hour)

	tok, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected non-empty token")
	}

	decoded, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if decoded.SubjectID != claims.SubjectID {
		t.Fatalf("subject id mismatch: got %q want %q", decoded.SubjectID, claims.SubjectID)
	}
	if decoded.Role != claims.Role {
		t.Fatalf("role mismatch: got %q want %q", decoded.Role, claims.Role)
	}
	if !decoded.IssuedAt.Equal(claims.IssuedAt) {
		t.Fatalf("issued_at mismatch: got %v want %v", decoded.IssuedAt, claims.IssuedAt)
	}
	if !decoded.ExpiresAt.Equal(claims.ExpiresAt) {
		t.Fatalf("expires_at mismatch: got %v want %v", decoded.ExpiresAt, claims.ExpiresAt)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	tok, err := NewCodec("secret").Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	if _, err := NewCodec("other-secret").Decode(tok); err != ErrSignatureInvalid {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret")
	claims := testClaims(time.Hour)
	claims.IssuedAt = claims.IssuedAt.Add(-2 * time.Hour)
	claims.ExpiresAt = claims.ExpiresAt.Add(-2 * time.Hour)

	tok, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	if _, err := codec.Decode(tok); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret")

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := codec.Decode(input); err != ErrMalformed {
			t.Fatalf("input %q: expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestCodec_DeterministicEncoding(t *testing.T) {
	codec := NewCodec("secret")
	claims := testClaims(time.Hour)

	t1, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("first Encode failed: %v", err)
	}
	t2, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}
	if t1 != t2 {
		t.Fatalf("identical claims must encode identically")
	}
}
