// Package client talks to the Neynar Farcaster API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 30 * time.Second
)

type Client struct {
	client  *http.Client
	cache   *cache.Cache
	limiter *Limiter
	apiKey  string
	baseURL string

	// retry is opt-in; the default is a single attempt per call.
	maxAttempts int
	baseBackoff time.Duration
}

type Option func(*Client)

// WithRetry enables exponential-backoff retry for transient failures.
// 4xx responses other than 429 are never retried.
func WithRetry(attempts int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// WithHTTPClient overrides the underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: defaultTimeout},
		cache:       cache.New(defaultCacheTTL, time.Minute),
		limiter:     NewLimiter(),
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		maxAttempts: 1,
		baseBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetUserCasts fetches up to limit most recent casts authored by fid.
func (c *Client) GetUserCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error) {
	if limit <= 0 {
		limit = domain.CastSampleSize
	}

	path := fmt.Sprintf("/v2/farcaster/feed/user/casts?fid=%d&limit=%d", fid, limit)

	var raw struct {
		Casts []struct {
			Hash      string    `json:"hash"`
			Text      string    `json:"text"`
			Timestamp time.Time `json:"timestamp"`
			ParentURL string    `json:"parent_url"`
			Author    struct {
				FID int64 `json:"fid"`
			} `json:"author"`
			Channel *struct {
				ID string `json:"id"`
			} `json:"channel"`
		} `json:"casts"`
	}

	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	casts := make([]domain.Cast, 0, len(raw.Casts))
	for _, rc := range raw.Casts {
		cast := domain.Cast{
			Hash:      rc.Hash,
			AuthorFID: rc.Author.FID,
			Text:      rc.Text,
			ParentURL: rc.ParentURL,
			Timestamp: rc.Timestamp,
		}
		if rc.Channel != nil {
			cast.ChannelID = rc.Channel.ID
		}
		casts = append(casts, cast)
	}
	return casts, nil
}

// GetUsers bulk-resolves fids to profiles. Results are memoized briefly so
// bursty UI-triggered calls do not hammer the provider.
func (c *Client) GetUsers(ctx context.Context, fids []int64) ([]domain.Profile, error) {
	if len(fids) == 0 {
		return nil, nil
	}

	parts := make([]string, len(fids))
	for i, fid := range fids {
		parts[i] = strconv.FormatInt(fid, 10)
	}
	joined := strings.Join(parts, ",")

	cacheKey := "users:" + joined
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]domain.Profile), nil
	}

	path := "/v2/farcaster/user/bulk?fids=" + url.QueryEscape(joined)

	var raw struct {
		Users []struct {
			FID               int64  `json:"fid"`
			Username          string `json:"username"`
			DisplayName       string `json:"display_name"`
			PfpURL            string `json:"pfp_url"`
			CustodyAddress    string `json:"custody_address"`
			VerifiedAddresses struct {
				EthAddresses []string `json:"eth_addresses"`
			} `json:"verified_addresses"`
			Experimental struct {
				NeynarUserScore float64 `json:"neynar_user_score"`
			} `json:"experimental"`
		} `json:"users"`
	}

	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(raw.Users))
	for _, ru := range raw.Users {
		profiles = append(profiles, domain.Profile{
			FID:               ru.FID,
			Username:          ru.Username,
			DisplayName:       ru.DisplayName,
			PfpURL:            ru.PfpURL,
			CustodyAddress:    ru.CustodyAddress,
			VerifiedAddresses: ru.VerifiedAddresses.EthAddresses,
			NeynarScore:       ru.Experimental.NeynarUserScore,
		})
	}

	c.cache.Set(cacheKey, profiles, cache.DefaultExpiration)

	return profiles, nil
}

// GetUser resolves a single fid.
func (c *Client) GetUser(ctx context.Context, fid int64) (domain.Profile, error) {
	profiles, err := c.GetUsers(ctx, []int64{fid})
	if err != nil {
		return domain.Profile{}, err
	}
	if len(profiles) == 0 {
		return domain.Profile{}, domain.NotFoundError{Resource: "user"}
	}
	return profiles[0], nil
}

// SendNotification pushes a miniapp notification through the provider's
// managed notification service. An empty targetFids targets every user who
// enabled notifications.
func (c *Client) SendNotification(ctx context.Context, title, body, targetURL string, targetFids []int64) error {
	if targetFids == nil {
		targetFids = []int64{}
	}

	payload := map[string]any{
		"target_fids": targetFids,
		"notification": map[string]string{
			"title":      title,
			"body":       body,
			"target_url": targetURL,
		},
	}

	return c.post(ctx, "/v2/farcaster/frame/notifications", payload, nil)
}

func (c *Client) get(ctx context.Context, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	return c.do(ctx, req, response)
}

func (c *Client) post(ctx context.Context, path string, payload, response any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, response)
}

func (c *Client) do(ctx context.Context, req *http.Request, response any) error {
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	if response == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}

// StatusError reports a non-200 provider response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("neynar api status %d", e.Code)
}
