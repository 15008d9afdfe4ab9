package security

import (
	"testing"
	"time"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	opts := DefaultOptions([]byte("test-secret"))
	token, exp, err := Generate(opts, "u-1001", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("token already expired")
	}

	claims, err := Verify(opts, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u-1001" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := Generate(DefaultOptions([]byte("right")), "u-1", "employee")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Verify(DefaultOptions([]byte("wrong")), token); err == nil {
		t.Fatal("verified with the wrong secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	opts := DefaultOptions([]byte("s"))
	opts.TTL = -time.Minute
	token, _, err := Generate(opts, "u-1", "employee")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Verify(opts, token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := Verify(DefaultOptions([]byte("s")), "not.a.token"); err == nil {
		t.Fatal("garbage verified")
	}
}

func TestUnsupportedAlg(t *testing.T) {
	opts := Options{Secret: []byte("s"), Alg: "RS256"}
	if _, _, err := Generate(opts, "u-1", "employee"); err == nil {
		t.Fatal("RS256 accepted")
	}
}
