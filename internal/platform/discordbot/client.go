package discordbot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	collabRequestPath   = "/collab-request"
	giveawayUpdatedPath = "/giveaway-updated"
)

// Client calls the Atlas3 Discord bot HTTP API. Responses are not parsed;
// any 2xx counts as delivered.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// CollabRequest announces a new collab giveaway in the partner's
// incoming-collabs channel, optionally mentioning a role.
func (c *Client) CollabRequest(ctx context.Context, giveawaySlug, channelID, mentionRoleID string) error {
	params := url.Values{
		"giveawaySlug": {giveawaySlug},
		"channelId":    {channelID},
	}
	if mentionRoleID != "" {
		params.Set("mentionRoleId", mentionRoleID)
	}
	if err := c.get(ctx, collabRequestPath, params); err != nil {
		return fmt.Errorf("collab request: %w", err)
	}
	return nil
}

// GiveawayUpdated asks the bot to refresh the message that shows a giveaway.
func (c *Client) GiveawayUpdated(ctx context.Context, giveawaySlug, channelID, messageID string) error {
	params := url.Values{
		"giveawaySlug": {giveawaySlug},
		"channelId":    {channelID},
		"messageId":    {messageID},
	}
	if err := c.get(ctx, giveawayUpdatedPath, params); err != nil {
		return fmt.Errorf("giveaway updated: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bot api returned %s", resp.Status)
	}
	return nil
}
