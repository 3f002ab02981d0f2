package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func TestSignAndParse(t *testing.T) {
	token, err := Sign(42, "bob", "user", 1, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Username != "bob" {
		t.Errorf("username = %q, want bob", claims.Username)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q, want user", claims.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := Sign(1, "admin", "admin", 1, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Parse(token); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestParseTamperedToken(t *testing.T) {
	token, err := Sign(1, "admin", "admin", 1, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := Parse(tampered); err == nil {
		t.Fatal("expected an error for a tampered token")
	}
}

func TestParseRejectsTokenWithoutExpiry(t *testing.T) {
	// A token signed with the right secret but no exp claim must not pass.
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		Status:   1,
	})
	token, err := raw.SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Parse(token); err == nil {
		t.Fatal("expected an error for a token without exp")
	}
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Parse(token); err == nil {
		t.Fatal("expected an error for alg=none")
	}
}
