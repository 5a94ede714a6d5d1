package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/greatday-recap-api/pkg/config"
)

func newPagedClient(t *testing.T, handler http.HandlerFunc) *GreatDayClient {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "token",
			"refresh_token": "refresh",
			"expired_at":    "2099-01-01T00:00:00",
		})
	})
	mux.HandleFunc("/leave", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewGreatDayClient(config.GreatDayConfig{
		BaseURL:      server.URL,
		SecretKey:    "key",
		AccessSecret: "secret",
		Timeout:      5 * time.Second,
	}, nil)
}

func TestFetchAllPagesMergesPages(t *testing.T) {
	var pagesSeen []int
	client := newPagedClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 50, body["limit"])

		page := int(body["page"].(float64))
		pagesSeen = append(pagesSeen, page)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"totalPage": 3,
			"data": []interface{}{
				map[string]interface{}{"empId": "E1", "page": page},
			},
		})
	})

	rows, err := fetchAllPages(context.Background(), client, "/leave", map[string]interface{}{"limit": 50})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []int{1, 2, 3}, pagesSeen)
}

func TestFetchAllPagesSinglePageWithoutTotal(t *testing.T) {
	calls := 0
	client := newPagedClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{map[string]interface{}{"empId": "E1"}},
		})
	})

	rows, err := fetchAllPages(context.Background(), client, "/leave", map[string]interface{}{"limit": 50})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, calls)
}

func TestFetchAllPagesInvalidTotalPage(t *testing.T) {
	client := newPagedClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"totalPage": "many",
			"data":      []interface{}{},
		})
	})

	_, err := fetchAllPages(context.Background(), client, "/leave", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid totalPage")
}

func TestFetchAllPagesSafetyBreak(t *testing.T) {
	calls := 0
	client := newPagedClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		// An absurd page count must never be walked to the end.
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"totalPage": 100000,
			"data":      []interface{}{},
		})
	})

	_, err := fetchAllPages(context.Background(), client, "/leave", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety break")
	assert.Equal(t, pagingSafetyLimit, calls)
}

func TestLeaveRepositoryAll(t *testing.T) {
	client := newPagedClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"totalPage": 1,
			"data": []interface{}{
				map[string]interface{}{
					"empId":          "E1",
					"fullName":       "Sari",
					"status":         3,
					"typeRequest":    "Leave Request",
					"leaveStartdate": "2025-11-10",
					"leaveEnddate":   "2025-11-12",
				},
			},
		})
	})

	repo := NewLeaveRepository(client, 50)
	records, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E1", records[0].EmpID)
	assert.True(t, records[0].Approved())
}
