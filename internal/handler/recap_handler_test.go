package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/greatday-recap-api/internal/service"
)

type recapServiceMock struct {
	daily   int
	weekly  int
	monthly int

	lastForce bool
	result    service.RunResult
	err       error
}

func (m *recapServiceMock) RunDaily(ctx context.Context, force bool) (service.RunResult, error) {
	m.daily++
	m.lastForce = force
	return m.result, m.err
}

func (m *recapServiceMock) RunWeekly(ctx context.Context, force bool) (service.RunResult, error) {
	m.weekly++
	m.lastForce = force
	return m.result, m.err
}

func (m *recapServiceMock) RunMonthly(ctx context.Context, force bool) (service.RunResult, error) {
	m.monthly++
	m.lastForce = force
	return m.result, m.err
}

func performRun(t *testing.T, mock *recapServiceMock, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewRecapHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, nil)

	handler.Run(c)
	return w
}

func TestRecapHandlerRunDaily(t *testing.T) {
	mock := &recapServiceMock{}
	w := performRun(t, mock, "/run?mode=daily")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mock.daily)
	assert.False(t, mock.lastForce)

	var body struct {
		Data struct {
			Status  string `json:"status"`
			Mode    string `json:"mode"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "daily", body.Data.Mode)
	assert.Equal(t, "Successfully posted daily report.", body.Data.Message)
}

func TestRecapHandlerRunModes(t *testing.T) {
	mock := &recapServiceMock{}

	performRun(t, mock, "/run?mode=weekly")
	performRun(t, mock, "/run?mode=monthly")

	assert.Equal(t, 1, mock.weekly)
	assert.Equal(t, 1, mock.monthly)
}

func TestRecapHandlerForceFlag(t *testing.T) {
	mock := &recapServiceMock{}
	w := performRun(t, mock, "/run?mode=daily&force=true")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.lastForce)
}

func TestRecapHandlerInvalidMode(t *testing.T) {
	mock := &recapServiceMock{}

	w := performRun(t, mock, "/run?mode=hourly")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.daily)

	w = performRun(t, mock, "/run")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecapHandlerSkippedRun(t *testing.T) {
	mock := &recapServiceMock{result: service.RunResult{
		Skipped: true,
		Reason:  "Already posted for daily:2025-11-11. Use force to override.",
	}}

	w := performRun(t, mock, "/run?mode=daily")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Status  string `json:"status"`
			Skipped bool   `json:"skipped"`
			Reason  string `json:"reason"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "skipped", body.Data.Status)
	assert.True(t, body.Data.Skipped)
	assert.Contains(t, body.Data.Reason, "Use force to override")
}

func TestRecapHandlerServiceError(t *testing.T) {
	mock := &recapServiceMock{err: errors.New("greatday down")}

	w := performRun(t, mock, "/run?mode=daily")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
