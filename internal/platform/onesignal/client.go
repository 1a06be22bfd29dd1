package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a minimal REST client for the OneSignal notifications API.
// A client with an empty app id is a no-op sender, which keeps dev
// environments free of push credentials.
type Client struct {
	baseURL string
	appID   string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, appID, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type notificationRequest struct {
	AppID            string            `json:"app_id"`
	Headings         map[string]string `json:"headings,omitempty"`
	Contents         map[string]string `json:"contents"`
	IncludeAliases   map[string][]string `json:"include_aliases,omitempty"`
	TargetChannel    string            `json:"target_channel,omitempty"`
	Data             map[string]any    `json:"data,omitempty"`
}

// NotifyUser sends a push notification to one external user id.
func (c *Client) NotifyUser(ctx context.Context, externalUserID, title, message string, data map[string]any) error {
	if c == nil || c.appID == "" {
		return nil
	}

	body := &notificationRequest{
		AppID:          c.appID,
		Headings:       map[string]string{"en": title},
		Contents:       map[string]string{"en": message},
		IncludeAliases: map[string][]string{"external_id": {externalUserID}},
		TargetChannel:  "push",
		Data:           data,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("onesignal: marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("onesignal: build request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("onesignal: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("onesignal: unexpected status %d", res.StatusCode)
	}
	return nil
}
