package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/planner"
)

func plannerForm(destination string, days int) planner.PreferenceForm {
	return planner.PreferenceForm{
		Destination:  destination,
		TravelDate:   "2025-12-01",
		DurationDays: days,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *TokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewTokenStore(filepath.Join(t.TempDir(), "session.json"))
	return New(srv.URL, tokens), tokens
}

func respond(w http.ResponseWriter, code int, status, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func TestLoginStoresToken(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "an@example.com", body["email"])

		respond(w, http.StatusOK, "success", "Login successful", map[string]any{
			"accessToken": "tok-123",
			"role":        "user",
		})
	}))

	require.NoError(t, c.Login(context.Background(), "an@example.com", "secret"))
	assert.Equal(t, "tok-123", tokens.Get())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var seen string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		respond(w, http.StatusOK, "success", "", map[string]any{"destination": "Huế"})
	}))
	require.NoError(t, tokens.Set("tok-456"))

	payload, err := c.GetHistoryDetail(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-456", seen)
	assert.Equal(t, "Huế", payload["destination"])
}

func TestUnauthorizedClearsStoredToken(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, "error", "Token không hợp lệ", nil)
	}))
	require.NoError(t, tokens.Set("stale"))

	_, err := c.GetHistoryDetail(context.Background(), "plan-1")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, tokens.Get())
}

func TestErrorUsesEnvelopeMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, "error", "Không tìm thấy lịch trình", nil)
	}))

	_, err := c.GetHistoryDetail(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Không tìm thấy lịch trình", err.Error())
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.GetHistoryDetail(context.Background(), "plan-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestCreateItineraryRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/itineraries/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Đà Nẵng", body["destination"])
		assert.Equal(t, float64(3), body["duration_days"])

		respond(w, http.StatusOK, "success", "", map[string]any{
			"data":           map[string]any{"destination": "Đà Nẵng", "days": []any{}},
			"generatePlanId": "plan-9",
		})
	}))

	plan, err := c.CreateItinerary(context.Background(), plannerForm("Đà Nẵng", 3))
	require.NoError(t, err)
	assert.Equal(t, "plan-9", plan.PlanID)
	assert.Equal(t, "Đà Nẵng", plan.Payload["destination"])
}

func TestUpdateItineraryOmitsSelectionWhenAbsent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "day_number")
		assert.NotContains(t, body, "activity_index")

		respond(w, http.StatusOK, "success", "", map[string]any{
			"hasChanges":    true,
			"updateSummary": "Đã đổi giờ",
		})
	}))

	res, err := c.UpdateItinerary(context.Background(), "plan-1", "Đổi giờ ăn sáng", nil, nil, "")
	require.NoError(t, err)
	assert.True(t, res.HasChanges)
	assert.Equal(t, "Đã đổi giờ", res.UpdateSummary)
}

func TestUpdateItineraryChunkSendsSpan(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/itineraries/update-chunk", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2), body["start_day"])
		assert.Equal(t, float64(3), body["chunk_size"])

		respond(w, http.StatusOK, "success", "", map[string]any{"hasChanges": false, "userGuidance": "Không có gì để đổi"})
	}))

	res, err := c.UpdateItineraryChunk(context.Background(), "plan-1", "Thêm hoạt động", 2, 3)
	require.NoError(t, err)
	assert.False(t, res.HasChanges)
	assert.Equal(t, "Không có gì để đổi", res.UserGuidance)
}

func TestShareItinerary(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, "success", "", map[string]any{"shareUrl": "https://tripwise.vn/s/abc"})
	}))

	url, err := c.ShareItinerary(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "https://tripwise.vn/s/abc", url)
}

func TestTokenStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewTokenStore(path)
	require.NoError(t, first.Set("tok-789"))

	second := NewTokenStore(path)
	assert.Equal(t, "tok-789", second.Get())

	require.NoError(t, second.Clear())
	assert.Empty(t, NewTokenStore(path).Get())
}
