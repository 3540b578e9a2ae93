package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("dup@example.com")

	rec := env.do(http.MethodPost, "/api/users/register", map[string]any{
		"first_name": "Other",
		"last_name":  "Person",
		"email":      "  DUP@example.com ",
		"password":   "pw",
		"age":        40,
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeMap(t, rec)["message"])
}

func TestRegisterRequiresFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/register", map[string]any{
		"first_name": "No",
		"last_name":  "Age",
		"email":      "noage@example.com",
		"password":   "pw",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "age", decodeMap(t, rec)["field"])

	rec = env.do(http.MethodPost, "/api/users/register", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("login@example.com")

	rec := env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "login@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "LOGIN@example.com",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, authCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, resp.Token, cookies[0].Value)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.register("info@example.com")

	for _, path := range []string{"/api/users/", "/api/info/"} {
		rec := env.do(http.MethodGet, path+userID.String(), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		user := decodeMap(t, rec)["user"].(map[string]any)
		assert.Equal(t, "info@example.com", user["email"])
		assert.NotContains(t, user, "password_hash")
		assert.NotContains(t, user, "PasswordHash")
	}

	rec := env.do(http.MethodGet, "/api/users/00000000-0000-0000-0000-000000000001", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/users/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
