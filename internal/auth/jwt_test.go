package auth

import (
	"os"
	"sync"
	"testing"
	"time"
)

// resetJWTSecret resets the package-level sync.Once so tests can set a fresh secret.
// This is only safe to call from test code.
func resetJWTSecret() {
	jwtSecret = ""
	jwtSecretOnce = sync.Once{}
	jwtSecretErr = nil
}

func TestMain(m *testing.M) {
	// Set a known test secret before any test runs.
	// The sync.Once will capture this value on first call to ValidateJWTSecret.
	os.Setenv("JWT_SECRET", "test-jwt-secret-that-is-32-chars-!")
	os.Exit(m.Run())
}

func TestValidateJWTSecret(t *testing.T) {
	t.Run("configured secret wins over env", func(t *testing.T) {
		resetJWTSecret()
		t.Setenv("JWT_SECRET", "env-secret-that-is-32-characters!")
		if err := ValidateJWTSecret("config-secret-that-is-32-chars!!!"); err != nil {
			t.Errorf("ValidateJWTSecret() unexpected error: %v", err)
		}
		if got := GetJWTSecret(); got != "config-secret-that-is-32-chars!!!" {
			t.Errorf("GetJWTSecret() = %q, want configured value", got)
		}
	})

	t.Run("falls back to env", func(t *testing.T) {
		resetJWTSecret()
		t.Setenv("JWT_SECRET", "exactly-32-char-secret-for-test!!")
		if err := ValidateJWTSecret(""); err != nil {
			t.Errorf("ValidateJWTSecret() unexpected error: %v", err)
		}
		if got := GetJWTSecret(); got != "exactly-32-char-secret-for-test!!" {
			t.Errorf("GetJWTSecret() = %q, want env value", got)
		}
	})

	t.Run("production mode requires secret", func(t *testing.T) {
		resetJWTSecret()
		// Unset all dev-mode indicators and the secret itself
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DEV_MODE", "")
		t.Setenv("GIN_MODE", "release")
		if err := ValidateJWTSecret(""); err == nil {
			t.Error("ValidateJWTSecret() expected error in production mode without secret, got nil")
		}
	})

	t.Run("dev mode generates random secret", func(t *testing.T) {
		resetJWTSecret()
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DEV_MODE", "true")
		if err := ValidateJWTSecret(""); err != nil {
			t.Errorf("ValidateJWTSecret() unexpected error in dev mode: %v", err)
		}
		if GetJWTSecret() == "" {
			t.Error("GetJWTSecret() returned empty string after dev mode init")
		}
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	resetJWTSecret()
	t.Setenv("JWT_SECRET", "test-jwt-secret-that-is-32-chars-!")

	t.Run("round trip", func(t *testing.T) {
		adminID := "admin-123"
		email := "admin@example.com"
		role := "super_admin"

		token, err := GenerateJWT(adminID, email, role, time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}
		if token == "" {
			t.Fatal("GenerateJWT() returned empty token")
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			t.Fatalf("ValidateJWT() error: %v", err)
		}
		if claims.AdminID != adminID {
			t.Errorf("claims.AdminID = %q, want %q", claims.AdminID, adminID)
		}
		if claims.Email != email {
			t.Errorf("claims.Email = %q, want %q", claims.Email, email)
		}
		if claims.Role != role {
			t.Errorf("claims.Role = %q, want %q", claims.Role, role)
		}
		if claims.Issuer != "cms-backend" {
			t.Errorf("claims.Issuer = %q, want %q", claims.Issuer, "cms-backend")
		}
	})

	t.Run("default expiry when zero duration", func(t *testing.T) {
		token, err := GenerateJWT("uid", "u@example.com", "editor", 0)
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}
		claims, err := ValidateJWT(token)
		if err != nil {
			t.Fatalf("ValidateJWT() error: %v", err)
		}
		// Should expire roughly 24 hours from now
		remaining := time.Until(claims.ExpiresAt.Time)
		if remaining < 23*time.Hour || remaining > 25*time.Hour {
			t.Errorf("default expiry remaining = %v, want ~24h", remaining)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateJWT("uid", "u@example.com", "editor", -time.Second)
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}
		_, err = ValidateJWT(token)
		if err == nil {
			t.Error("ValidateJWT() expected error for expired token, got nil")
		}
	})

	t.Run("invalid token string", func(t *testing.T) {
		_, err := ValidateJWT("not.a.valid.token")
		if err == nil {
			t.Error("ValidateJWT() expected error for garbage token, got nil")
		}
	})

	t.Run("token signed with different secret is rejected", func(t *testing.T) {
		token, err := GenerateJWT("uid", "u@example.com", "editor", time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		resetJWTSecret()
		t.Setenv("JWT_SECRET", "a-completely-different-32-char-key")
		if err := ValidateJWTSecret(""); err != nil {
			t.Fatalf("ValidateJWTSecret() error: %v", err)
		}

		if _, err := ValidateJWT(token); err == nil {
			t.Error("ValidateJWT() expected error for token signed with old secret, got nil")
		}

		resetJWTSecret()
		t.Setenv("JWT_SECRET", "test-jwt-secret-that-is-32-chars-!")
	})
}
