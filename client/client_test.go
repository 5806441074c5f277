package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(baseURL string, opts ...Option) *Client {
	opts = append(opts, WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return New(baseURL, "test-key", opts...)
}

func TestGetUserCastsParsesChannel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api_key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"casts":[
			{"hash":"0x1","author":{"fid":3},"channel":{"id":"zao"}},
			{"hash":"0x2","author":{"fid":3},"parent_url":"https://warpcast.com/~/channel/zao"},
			{"hash":"0x3","author":{"fid":3}}
		]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	casts, err := c.GetUserCasts(context.Background(), 3, 100)
	if err != nil {
		t.Fatalf("GetUserCasts failed: %v", err)
	}
	if len(casts) != 3 {
		t.Fatalf("expected 3 casts, got %d", len(casts))
	}
	if casts[0].ChannelID != "zao" {
		t.Fatalf("expected channel id zao, got %q", casts[0].ChannelID)
	}
	if casts[1].ParentURL == "" {
		t.Fatalf("expected parent url to survive parsing")
	}
}

func TestGetUsersMemoizes(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[{"fid":7,"username":"alice",
			"custody_address":"0xc0ffee",
			"verified_addresses":{"eth_addresses":["0xverified"]},
			"experimental":{"neynar_user_score":0.92}}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	for i := 0; i < 3; i++ {
		profiles, err := c.GetUsers(context.Background(), []int64{7})
		if err != nil {
			t.Fatalf("GetUsers failed: %v", err)
		}
		if len(profiles) != 1 || profiles[0].Username != "alice" {
			t.Fatalf("unexpected profiles %+v", profiles)
		}
		if profiles[0].NeynarScore != 0.92 {
			t.Fatalf("unexpected score %v", profiles[0].NeynarScore)
		}
		if profiles[0].PaymentAddress() != "0xverified" {
			t.Fatalf("unexpected payment address %q", profiles[0].PaymentAddress())
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, WithRetry(4, time.Millisecond))
	_, err := c.GetUserCasts(context.Background(), 3, 100)
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := err.(*StatusError)
	if !ok || se.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 status error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryOn429ThenSuccess(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"casts":[]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, WithRetry(3, time.Millisecond))
	casts, err := c.GetUserCasts(context.Background(), 3, 100)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(casts) != 0 {
		t.Fatalf("expected empty casts, got %d", len(casts))
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestSingleAttemptByDefault(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.GetUserCasts(context.Background(), 3, 100)
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt, got %d", attempts)
	}
}
