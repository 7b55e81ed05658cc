package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping() error {
	return f.err
}

func healthRouter(p Pinger) *gin.Engine {
	router := gin.New()
	router.GET("/healthz", NewSystemHandler(p).Healthz)
	return router
}

func TestSystemHandler_Healthz(t *testing.T) {
	router := healthRouter(&fakePinger{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.NotEmpty(t, data["go_version"])
}

func TestSystemHandler_Healthz_DatabaseDown(t *testing.T) {
	router := healthRouter(&fakePinger{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UNHEALTHY", decodeResponse(t, w).Error.Code)
}
