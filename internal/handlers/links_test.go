package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"linkbio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateLinkHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	user := seedUser(db, "creator")

	t.Run("Unauthorized Without Session Or Key", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/links", gin.H{
			"title": "My site", "original_url": "https://example.com",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("API Key Auth Creates Link", func(t *testing.T) {
		req := jsonRequest("POST", "/links", gin.H{
			"title": "My site", "original_url": "https://example.com",
		})
		req.Header.Set("X-API-Key", user.APIKey)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		assert.Contains(t, body["short_url"], "http://test.local/l/")

		var link models.Link
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&link).Error)
		assert.Len(t, link.ShortCode, 7)
	})

	t.Run("Invalid URL Rejected", func(t *testing.T) {
		req := jsonRequest("POST", "/links", gin.H{
			"title": "bad", "original_url": "not-a-url",
		})
		req.Header.Set("X-API-Key", user.APIKey)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Title Rejected", func(t *testing.T) {
		req := jsonRequest("POST", "/links", gin.H{
			"original_url": "https://example.com",
		})
		req.Header.Set("X-API-Key", user.APIKey)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListLinksHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	user := seedUser(db, "lister")
	link := models.Link{UserID: user.ID, ShortCode: "list123", OriginalURL: "https://example.com", IsActive: true}
	db.Create(&link)
	db.Create(&models.LinkVisit{LinkID: link.ID, VisitedAt: time.Now()})
	db.Create(&models.LinkVisit{LinkID: link.ID, VisitedAt: time.Now(), IsOwner: true})

	t.Run("Links Annotated With Stats", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", fmt.Sprintf("/links/%d", user.ID), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Links []struct {
				ShortCode string `json:"short_code"`
				Stats     struct {
					TotalVisits    int64 `json:"total_visits"`
					OwnerVisits    int64 `json:"owner_visits"`
					ExternalVisits int64 `json:"external_visits"`
				} `json:"stats"`
			} `json:"links"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Links, 1)
		assert.Equal(t, "list123", body.Links[0].ShortCode)
		assert.Equal(t, int64(2), body.Links[0].Stats.TotalVisits)
		assert.Equal(t, int64(1), body.Links[0].Stats.OwnerVisits)
		assert.Equal(t, int64(1), body.Links[0].Stats.ExternalVisits)
	})

	t.Run("Invalid User ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/links/abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteLinkHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	user := seedUser(db, "deleter")
	other := seedUser(db, "bystander")
	link := models.Link{UserID: user.ID, ShortCode: "del1234", OriginalURL: "https://example.com", IsActive: true}
	db.Create(&link)

	t.Run("Cannot Delete Someone Elses Link", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/links/%d", link.ID), nil)
		req.Header.Set("X-API-Key", other.APIKey)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/links/%d", link.ID), nil)
		req.Header.Set("X-API-Key", user.APIKey)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Link{}).Where("id = ?", link.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestShortCodeQRHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	user := seedUser(db, "qruser")
	db.Create(&models.Link{UserID: user.ID, ShortCode: "qr12345", OriginalURL: "https://example.com", IsActive: true})

	t.Run("Renders PNG", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/l/qr12345/qr.png", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("Unknown Code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/l/nope999/qr.png", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
