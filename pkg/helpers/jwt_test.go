package helpers

import (
	"testing"
	"time"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("access", "refresh", 15*time.Minute, 24*time.Hour)

	token, exp, err := m.GenerateAccessToken("U1", "taro", 2, "S1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expiry must be in the future")
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "U1" || claims.Username != "taro" || claims.RoleCode != 2 || claims.SessionID != "S1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTSecretsAreSeparate(t *testing.T) {
	m := NewJWTManager("access", "refresh", 15*time.Minute, 24*time.Hour)

	access, _, err := m.GenerateAccessToken("U1", "taro", 2, "S1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatal("access token must not parse as a refresh token")
	}

	refresh, _, err := m.GenerateRefreshToken("U1", "taro", 2, "S1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Fatal("refresh token must not parse as an access token")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, 24*time.Hour)

	token, _, err := m.GenerateAccessToken("U1", "taro", 2, "S1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("different", "refresh", 15*time.Minute, 24*time.Hour)

	token, _, err := other.GenerateAccessToken("U1", "taro", 2, "S1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}
