package utils

import "testing"

func TestExtractNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice"},
		{"bob.smith@company.io", "bob.smith"},
		{"noatsign", "noatsign"},
	}
	for _, c := range cases {
		if got := ExtractNameFromEmail(c.email); got != c.want {
			t.Errorf("ExtractNameFromEmail(%q) = %q, want %q", c.email, got, c.want)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	SetJWTExpiry(5)

	token, err := GenerateJWTToken("64f000000000000000000001", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != "64f000000000000000000001" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "64f000000000000000000001")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")
	if _, err := ParseJWTToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
