package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"enside/madeiras-ops-worker/internal/api/controllers"
	"enside/madeiras-ops-worker/internal/handlers"
	"enside/madeiras-ops-worker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestHealthCheck tests the /health endpoint
func TestHealthCheck(t *testing.T) {
	router := NewRouter(Controllers{})

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

// TestOptionalRoutes tests that routes for missing collaborators are not registered
func TestOptionalRoutes(t *testing.T) {
	router := NewRouter(Controllers{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/broadcast", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestContactRoutesRegistered tests that the contacts routes respond when wired
func TestContactRoutesRegistered(t *testing.T) {
	store := services.NewContactStore()
	router := NewRouter(Controllers{
		Contacts: controllers.NewContactsController(handlers.NewSheetsHandler(""), store),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
