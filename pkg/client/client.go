package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tripwise/internal/planner"
)

var ErrUnauthorized = errors.New("phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")

// envelope mirrors the APIResponse wrapper every endpoint answers with.
type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the backend and implements planner.PlannerAPI, so a
// planner.Session can run against a live server unchanged.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
}

func New(baseURL string, tokens *TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
		tokens:  tokens,
	}
}

var _ planner.PlannerAPI = (*Client)(nil)

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		return ErrUnauthorized
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("máy chủ trả về lỗi %s", resp.Status)
		}
		return fmt.Errorf("không đọc được phản hồi từ máy chủ: %w", err)
	}

	if resp.StatusCode != http.StatusOK || env.Status == "error" {
		if env.Message != "" {
			return errors.New(env.Message)
		}
		return fmt.Errorf("máy chủ trả về lỗi %s", resp.Status)
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Login authenticates and persists the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/accounts/login", body, &data); err != nil {
		return err
	}
	return c.tokens.Set(data.AccessToken)
}

func (c *Client) Register(ctx context.Context, displayName, email, password string, isPartner bool) error {
	body := map[string]any{
		"display_name": displayName,
		"email":        email,
		"password":     password,
		"is_partner":   isPartner,
	}
	return c.do(ctx, http.MethodPost, "/accounts/register", body, nil)
}

func (c *Client) CreateItinerary(ctx context.Context, form planner.PreferenceForm) (*planner.GeneratedPlan, error) {
	body := map[string]any{
		"destination":    form.Destination,
		"travel_date":    form.TravelDate,
		"duration_days":  form.DurationDays,
		"preferences":    form.Preferences,
		"budget":         form.Budget,
		"transportation": form.Transportation,
		"group_type":     form.GroupType,
		"accommodation":  form.Accommodation,
	}

	var data struct {
		Data           map[string]any `json:"data"`
		GeneratePlanID string         `json:"generatePlanId"`
	}
	if err := c.do(ctx, http.MethodPost, "/itineraries/generate", body, &data); err != nil {
		return nil, err
	}
	return &planner.GeneratedPlan{PlanID: data.GeneratePlanID, Payload: data.Data}, nil
}

func (c *Client) UpdateItinerary(ctx context.Context, planID, text string, dayNumber, activityIndex *int, description string) (*planner.UpdateResult, error) {
	body := map[string]any{
		"plan_id": planID,
		"text":    text,
	}
	if dayNumber != nil && activityIndex != nil {
		body["day_number"] = *dayNumber
		body["activity_index"] = *activityIndex
		body["description"] = description
	}

	var res planner.UpdateResult
	if err := c.do(ctx, http.MethodPost, "/itineraries/update", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateItineraryChunk(ctx context.Context, planID, text string, startDay, chunkSize int) (*planner.UpdateResult, error) {
	body := map[string]any{
		"plan_id":    planID,
		"text":       text,
		"start_day":  startDay,
		"chunk_size": chunkSize,
	}

	var res planner.UpdateResult
	if err := c.do(ctx, http.MethodPost, "/itineraries/update-chunk", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetHistoryDetail(ctx context.Context, planID string) (map[string]any, error) {
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, "/itineraries/history/"+planID, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) ShareItinerary(ctx context.Context, planID string) (string, error) {
	body := map[string]string{"plan_id": planID}

	var data struct {
		ShareURL string `json:"shareUrl"`
	}
	if err := c.do(ctx, http.MethodPost, "/itineraries/share", body, &data); err != nil {
		return "", err
	}
	return data.ShareURL, nil
}
