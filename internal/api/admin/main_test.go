package admin

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Secret for tests that exercise GenerateJWT (e.g., the login success path)
	os.Setenv("JWT_SECRET", "test-admin-jwt-secret-that-is-32chars!!")
	os.Exit(m.Run())
}
