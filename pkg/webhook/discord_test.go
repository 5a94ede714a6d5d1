package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
)

func TestPostSendsContent(t *testing.T) {
	var received message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second)
	require.NoError(t, client.Post(context.Background(), "**📌 Rekap Final**"))
	assert.Equal(t, "**📌 Rekap Final**", received.Content)
}

func TestPostNon2xxIsPublishFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second)
	err := client.Post(context.Background(), "pesan")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPublishFailed.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "429")
}

func TestPostUnreachableSink(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)
	err := client.Post(context.Background(), "pesan")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPublishFailed.Code, appErrors.FromError(err).Code)
}
