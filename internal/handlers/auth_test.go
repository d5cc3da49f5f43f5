package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkbio/internal/models"

	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUser(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Allocates Username From Display Name", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
			"name": "Kim Coder", "email": "kim@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		assert.Equal(t, "KimCoder", body["username"])
		assert.NotEmpty(t, body["api_key"])
	})

	t.Run("Duplicate Base Gets Suffix", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
			"name": "Kim Coder", "email": "kim2@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		assert.Equal(t, "KimCoder1", body["username"])
	})

	t.Run("Unusable Name Rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
			"name": "!!!", "email": "bad@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Duplicate Email Conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
			"name": "Someone Else", "email": "kim@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Short Password Rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
			"name": "Shorty", "email": "shorty@example.com", "password": "123",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	_ = db
}

func TestLoginUser(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	// Register through the API so the stored hash is real.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/register", gin.H{
		"name": "Login Guy", "email": "login@example.com", "password": "secret123",
	}))
	assert.Equal(t, http.StatusCreated, w.Code)

	t.Run("Valid Credentials Set Session", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/login", gin.H{
			"username": "LoginGuy", "password": "secret123",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("Login By Email", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/login", gin.H{
			"username": "login@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/login", gin.H{
			"username": "LoginGuy", "password": "wrong",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/api/login", gin.H{
			"username": "nobody", "password": "secret123",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}


