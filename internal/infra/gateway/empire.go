package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/usecase"
)

var tracer = otel.Tracer("gateway")

// EmpireGateway submits score snapshots to the Empire Builder leaderboard
// service, which writes them on-chain and returns the transaction hash.
type EmpireGateway struct {
	baseURL      string
	apiKey       string
	privateKey   string
	tokenAddress string
	httpClient   *http.Client
}

var _ usecase.EmpireGateway = (*EmpireGateway)(nil)

func NewEmpireGateway(baseURL, apiKey, privateKey, tokenAddress string) *EmpireGateway {
	return &EmpireGateway{
		baseURL:      baseURL,
		apiKey:       apiKey,
		privateKey:   privateKey,
		tokenAddress: tokenAddress,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type refreshRequest struct {
	Addresses  []string `json:"addresses"`
	Scores     []string `json:"scores"`
	PrivateKey string   `json:"privateKey"`
}

type refreshResponse struct {
	TransactionHash string `json:"transactionHash"`
	Error           string `json:"error"`
}

func (g *EmpireGateway) RefreshLeaderboard(ctx context.Context, addresses []string, scores []string) (string, error) {
	ctx, span := tracer.Start(ctx, "Gateway.Empire.RefreshLeaderboard")
	defer span.End()

	payload, err := json.Marshal(refreshRequest{
		Addresses:  addresses,
		Scores:     scores,
		PrivateKey: g.privateKey,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/refresh-leaderboard/%s", g.baseURL, g.tokenAddress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "empire builder request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read empire builder response")
	}

	var result refreshResponse
	if err := json.Unmarshal(body, &result); err != nil && resp.StatusCode < 300 {
		return "", errors.Wrap(err, "failed to decode empire builder response")
	}

	if resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("empire builder returned status %d", resp.StatusCode)
		}
		err := fmt.Errorf("%s", msg)
		span.RecordError(err)
		return "", err
	}

	return result.TransactionHash, nil
}
