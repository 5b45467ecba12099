package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	_, handler := newTestServer(t)

	w, body := doJSON(t, handler, http.MethodPost, "/signup",
		map[string]string{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])

	t.Run("duplicate username rejected", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodPost, "/signup",
			map[string]string{"username": "alice", "password": "other"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "fail", body["status"])
		assert.Equal(t, "User already exists", body["message"])
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodPost, "/signup",
			map[string]string{"username": "bob"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing username or password", body["message"])
	})

	t.Run("login with correct password", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodPost, "/login",
			map[string]string{"username": "alice", "password": "secret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", body["status"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodPost, "/login",
			map[string]string{"username": "alice", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", body["message"])
	})

	t.Run("login for unknown user", func(t *testing.T) {
		w, _ := doJSON(t, handler, http.MethodPost, "/login",
			map[string]string{"username": "ghost", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w, _ := doJSON(t, handler, http.MethodGet, "/signup", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestUserProfileEndpoints(t *testing.T) {
	_, handler := newTestServer(t)

	w, _ := doJSON(t, handler, http.MethodPost, "/signup",
		map[string]string{"username": "carol", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("defaults after signup", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodGet, "/user_profile?username=carol", nil)
		require.Equal(t, http.StatusOK, w.Code)
		profile, ok := body["profile"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "carol", profile["username"])
		assert.Equal(t, true, profile["dark_mode"])
		assert.Equal(t, true, profile["sound_enabled"])
		assert.Equal(t, "default", profile["notification_sound"])
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		w, body := doJSON(t, handler, http.MethodGet, "/user_profile?username=ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", body["message"])
	})

	t.Run("partial update", func(t *testing.T) {
		w, _ := doJSON(t, handler, http.MethodPut, "/update_profile",
			map[string]any{"username": "carol", "dark_mode": false})
		require.Equal(t, http.StatusOK, w.Code)

		_, body := doJSON(t, handler, http.MethodGet, "/user_profile?username=carol", nil)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, false, profile["dark_mode"])
		assert.Equal(t, true, profile["sound_enabled"])
	})

	t.Run("rename moves reminders", func(t *testing.T) {
		w, _ := doJSON(t, handler, http.MethodPost, "/add_schedule",
			map[string]string{"user": "carol", "title": "Water plants", "time": "9:00 AM"})
		require.Equal(t, http.StatusOK, w.Code)

		w, body := doJSON(t, handler, http.MethodPut, "/update_profile",
			map[string]any{"username": "carol", "new_username": "caroline"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "caroline", body["username"])

		_, body = doJSON(t, handler, http.MethodGet, "/activities?user=caroline", nil)
		assert.Equal(t, float64(1), body["count"])

		_, body = doJSON(t, handler, http.MethodGet, "/activities?user=carol", nil)
		assert.Equal(t, float64(0), body["count"])
	})

	t.Run("rename to taken name", func(t *testing.T) {
		_, _ = doJSON(t, handler, http.MethodPost, "/signup",
			map[string]string{"username": "dave", "password": "pw"})

		w, body := doJSON(t, handler, http.MethodPut, "/update_profile",
			map[string]any{"username": "caroline", "new_username": "dave"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "New username already taken", body["message"])
	})
}

func TestDeleteUser(t *testing.T) {
	_, handler := newTestServer(t)

	_, _ = doJSON(t, handler, http.MethodPost, "/signup",
		map[string]string{"username": "erin", "password": "pw"})
	_, _ = doJSON(t, handler, http.MethodPost, "/add_schedule",
		map[string]string{"user": "erin", "title": "Stretch", "time": "7:00 AM"})

	w, body := doJSON(t, handler, http.MethodDelete, "/delete_user/erin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted", body["message"])

	_, body = doJSON(t, handler, http.MethodGet, "/activities?user=erin", nil)
	assert.Equal(t, float64(0), body["count"])

	t.Run("second delete is 404", func(t *testing.T) {
		w, _ := doJSON(t, handler, http.MethodDelete, "/delete_user/erin", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
