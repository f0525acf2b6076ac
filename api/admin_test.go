package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/misioncampo/visitas-api/scheduler"
)

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	return &Server{
		scheduler: scheduler.New(nil, nil, time.Second),
	}
}

func TestAdminEndpointsRequireAdministrator(t *testing.T) {
	router := testServer().Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/admin/recalculations/pending", nil)
	req.Header.Set("X-Actor-Id", "missionary-1")
	req.Header.Set("X-Actor-Role", "missionary")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "localizedMessage")
}

func TestPendingRecalculationsEmpty(t *testing.T) {
	router := testServer().Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/admin/recalculations/pending", nil)
	req.Header.Set("X-Actor-Id", "admin-1")
	req.Header.Set("X-Actor-Role", "administrator")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pending": 0}`, w.Body.String())
}

func TestCancelPendingRecalculations(t *testing.T) {
	router := testServer().Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/v1/admin/recalculations/pending", nil)
	req.Header.Set("X-Actor-Id", "admin-1")
	req.Header.Set("X-Actor-Role", "administrator")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cancelled": 0}`, w.Body.String())
}

func TestCreateRatingRequiresActor(t *testing.T) {
	router := testServer().Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/visits/5f1a2b3c4d5e6f7a8b9c0d1e/ratings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
