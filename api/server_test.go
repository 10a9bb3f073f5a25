package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/beacon-api/background"
	"github.com/bitmark-inc/beacon-api/lifecycle"
	"github.com/bitmark-inc/beacon-api/store"
)

func TestMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	defer s.Close()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("beacon_emergency_created 1\n"))
	})

	controller := lifecycle.NewController(s, background.NewRegistry(s), noopBroadcaster{}, nil)
	router := NewServer(controller, s, metrics).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "beacon_emergency_created 1\n", w.Body.String())
}

func TestMetricsRouteDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	defer s.Close()

	controller := lifecycle.NewController(s, background.NewRegistry(s), noopBroadcaster{}, nil)
	router := NewServer(controller, s, nil).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInformation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Set("server.version", "1.2.3")
	defer viper.Set("server.version", "")

	s := store.NewMemoryStore()
	defer s.Close()

	controller := lifecycle.NewController(s, background.NewRegistry(s), noopBroadcaster{}, nil)
	router := NewServer(controller, s, nil).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/information", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Information struct {
			Server struct {
				Version string `json:"version"`
			} `json:"server"`
			Categories []string `json:"categories"`
		} `json:"information"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Information.Server.Version)
	assert.Len(t, resp.Information.Categories, 6)
}
