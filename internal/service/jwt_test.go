package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 {
		t.Fatalf("round trip user id = %d; want 42", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Fatalf("ParseJWT(%q) accepted invalid token", tok)
		}
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("second-secret")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}
