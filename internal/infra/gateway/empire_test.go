package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRefreshLeaderboardSubmitsSnapshot(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"transactionHash": "0xabc123"})
	}))
	defer server.Close()

	g := NewEmpireGateway(server.URL, "key-1", "pk-1", "0xtoken")

	txHash, err := g.RefreshLeaderboard(context.Background(),
		[]string{"0x52908400098527886E0F7030069857D2E4169EE7"},
		[]string{"7000000000000000000"},
	)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if txHash != "0xabc123" {
		t.Fatalf("expected tx hash, got %q", txHash)
	}
	if !strings.HasSuffix(gotPath, "/api/refresh-leaderboard/0xtoken") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "key-1" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotBody["privateKey"] != "pk-1" {
		t.Fatalf("expected private key in body, got %v", gotBody)
	}
	scores, _ := gotBody["scores"].([]any)
	if len(scores) != 1 || scores[0] != "7000000000000000000" {
		t.Fatalf("unexpected scores %v", gotBody["scores"])
	}
}

func TestRefreshLeaderboardSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	}))
	defer server.Close()

	g := NewEmpireGateway(server.URL, "bad", "pk", "0xtoken")

	_, err := g.RefreshLeaderboard(context.Background(), []string{"0xa"}, []string{"1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected upstream error message, got %v", err)
	}
}
