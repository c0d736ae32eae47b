package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen error: %v", err)
	}
	return &Manager{
		Generator: NewGenerator(priv, "acadetrack", "acadetrack-students", "test-key", time.Hour, 7*24*time.Hour),
		Verifier:  NewVerifier(&priv.PublicKey, "acadetrack", "acadetrack-students"),
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, jti, err := m.Generator.GenerateAccessToken(42, []string{"student"}, []string{"record:write"}, "web")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if jti == "" {
		t.Fatalf("expected non-empty jti")
	}

	claims, err := m.Verifier.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.IdentityID != 42 || !claims.HasRole("student") || !claims.HasPermission("record:write") {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != jti {
		t.Fatalf("jti mismatch: %s vs %s", claims.ID, jti)
	}
}

func TestRefreshTokenPurpose(t *testing.T) {
	m := newTestManager(t)

	refresh, _, err := m.Generator.GenerateRefreshToken(42, "web")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := m.Verifier.VerifyAccessToken(refresh); err == nil {
		t.Fatalf("refresh token must not verify as access token")
	}
	if _, err := m.Verifier.VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("refresh verify error: %v", err)
	}
}

func TestVerifierRejectsWrongIssuer(t *testing.T) {
	m := newTestManager(t)
	token, _, err := m.Generator.GenerateAccessToken(1, nil, nil, "")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	other := NewVerifier(m.Verifier.pub, "someone-else", "acadetrack-students")
	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected issuer mismatch rejection")
	}
}

func TestVerifierRejectsExpired(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen error: %v", err)
	}
	gen := NewGenerator(priv, "acadetrack", "acadetrack-students", "", -time.Minute, -time.Minute)
	ver := NewVerifier(&priv.PublicKey, "acadetrack", "acadetrack-students")

	token, _, err := gen.GenerateAccessToken(1, nil, nil, "")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ver.Verify(token); err == nil {
		t.Fatalf("expected expired token rejection")
	}
}
