// Package recommend calls the external recommendation engine. One request
// per screen visit, fire-and-forget: a failure leaves the screen without
// recommendations but never blocks anything else.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "thimar/internal/errors"
	"thimar/internal/logger"
)

const defaultTimeout = 15 * time.Second

// Request carries the free-text inputs the engine scores against.
type Request struct {
	UserPreferences string `json:"user_preferences"`
	MarketTrends    string `json:"market_trends"`
}

// Recommendation is one suggested opportunity with the engine's reasoning.
type Recommendation struct {
	OpportunityName string  `json:"opportunity_name"`
	AssetType       string  `json:"asset_type"`
	City            string  `json:"city"`
	ExpectedReturn  float64 `json:"expected_return"`
	RiskLevel       string  `json:"risk_level"`
	Justification   string  `json:"justification"`
}

type response struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// Client is the recommendation engine client.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a recommendation client. A nil httpClient gets a
// default with a timeout.
func NewClient(url, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{url: url, apiKey: apiKey, httpClient: httpClient}
}

// Fetch asks the engine for recommendations. Any transport or decode
// failure maps to the generic operation error; the caller decides whether
// an empty list is worth showing.
func (c *Client) Fetch(ctx context.Context, input Request) ([]Recommendation, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warnw("recommendation request failed", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Warnw("recommendation engine rejected request",
			"status", resp.StatusCode,
		)
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed,
			fmt.Errorf("recommendation engine returned status %d", resp.StatusCode))
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Some engine versions return the list bare.
		var list []Recommendation
		if listErr := json.Unmarshal(raw, &list); listErr == nil {
			return list, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decoded.Recommendations, nil
}
