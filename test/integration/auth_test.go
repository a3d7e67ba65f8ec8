//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/courtside/api/test/integration/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, userID := env.RegisterUser("new@example.com", "password123")
	if token == "" || userID == "" {
		t.Fatal("expected token and user id from registration")
	}

	// A register token works immediately.
	resp := env.GET("/points/me", token)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	login := env.LoginUser("new@example.com", "password123")
	resp = env.GET("/points/me", login)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestRegister_Validation(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/auth/register", map[string]string{
		"email": "bad-email", "password": "password123",
	}, "")
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")

	resp = env.POST("/auth/register", map[string]string{
		"email": "short@example.com", "password": "1234567",
	}, "")
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterUser("taken@example.com", "password123")

	resp := env.POST("/auth/register", map[string]string{
		"email": "Taken@Example.com", "password": "password123", "name": "x",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusConflict)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterUser("creds@example.com", "password123")

	resp := env.POST("/auth/login", map[string]string{
		"email": "creds@example.com", "password": "wrongpass123",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)

	resp = env.POST("/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestUserTokenCannotReachAdminRoutes(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("plain@example.com", "password123")

	resp := env.POST("/admin/games/refresh", nil, token)
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}
