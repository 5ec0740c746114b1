package system

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"keycalc/internal/mocks"
	"keycalc/internal/ports"
)

func serve(repo ports.IOperationRepository, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(repo, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	w := serve(nil, "/liveness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	ctrl := gomock.NewController(t)

	ok := mocks.NewMockIOperationRepository(ctrl)
	ok.EXPECT().Ping(gomock.Any()).Return(nil)
	assert.Equal(t, http.StatusOK, serve(ok, "/readyness").Code)

	down := mocks.NewMockIOperationRepository(ctrl)
	down.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	w := serve(down, "/readyness")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestReadiness_NoRepository(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(nil, "/readyness").Code)
}
