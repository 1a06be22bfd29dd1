package revenuecat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrSubscriberNotFound = errors.New("revenuecat: subscriber not found")

// Client is a minimal REST client for the RevenueCat subscribers API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Entitlement is one currently- or previously-granted entitlement of a
// subscriber, keyed by entitlement identifier in the subscriber response.
type Entitlement struct {
	ExpiresDate       *time.Time `json:"expires_date"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	ProductIdentifier string     `json:"product_identifier"`
}

type Subscriber struct {
	OriginalAppUserID string                  `json:"original_app_user_id"`
	Entitlements      map[string]*Entitlement `json:"entitlements"`
}

type subscriberResponse struct {
	Subscriber *Subscriber `json:"subscriber"`
}

// GetSubscriber fetches the subscriber record for an app user id.
func (c *Client) GetSubscriber(ctx context.Context, appUserID string) (*Subscriber, error) {
	if appUserID == "" {
		return nil, fmt.Errorf("revenuecat: empty app user id")
	}

	u := fmt.Sprintf("%s/subscribers/%s", c.baseURL, url.PathEscape(appUserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("revenuecat: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("revenuecat: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrSubscriberNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("revenuecat: unexpected status %d", res.StatusCode)
	}

	var out subscriberResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("revenuecat: decode response: %w", err)
	}
	if out.Subscriber == nil {
		return nil, fmt.Errorf("revenuecat: empty subscriber payload")
	}
	return out.Subscriber, nil
}

// ActiveEntitlement returns the entitlement with the latest expiry that is
// still live at now, or nil when none is.
func (s *Subscriber) ActiveEntitlement(now time.Time) (name string, ent *Entitlement) {
	for n, e := range s.Entitlements {
		if e == nil || e.ExpiresDate == nil || !e.ExpiresDate.After(now) {
			continue
		}
		if ent == nil || e.ExpiresDate.After(*ent.ExpiresDate) {
			name, ent = n, e
		}
	}
	return name, ent
}
