package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestJWTSecretDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if got := JWTSecret(); got != "default-secret" {
		t.Errorf("JWTSecret() = %q, want %q", got, "default-secret")
	}
}

func TestJWTSecretPicksUpLateEnv(t *testing.T) {
	// .env is loaded by main long after this package's init, so a secret
	// set at that point must still be honored.
	t.Setenv("JWT_SECRET", "configured-secret")
	if got := JWTSecret(); got != "configured-secret" {
		t.Errorf("JWTSecret() = %q, want %q", got, "configured-secret")
	}
}

func TestParseTokenUsesCurrentSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "fresh-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(7),
	})
	signed, err := token.SignedString([]byte("fresh-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := parseToken(signed)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if claims["user_id"].(float64) != 7 {
		t.Errorf("user_id = %v, want 7", claims["user_id"])
	}
}
