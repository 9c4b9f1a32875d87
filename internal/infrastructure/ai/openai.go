// Package ai probes the OpenAI API used by the ecosystem's AI features.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/httpprobe"
)

const (
	resultName = "openai_api"
	// DefaultModelsEndpoint lists the models visible to the API key.
	DefaultModelsEndpoint = "https://api.openai.com/v1/models"
)

type modelListResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// OpenAIProbe verifies the API key by listing models.
type OpenAIProbe struct {
	APIKey   string
	Endpoint string
	Client   *httpprobe.Client
}

// NewOpenAIProbe builds the probe for the resolved key.
func NewOpenAIProbe(cfg domain.Config, apiKey string) *OpenAIProbe {
	return &OpenAIProbe{
		APIKey:   apiKey,
		Endpoint: DefaultModelsEndpoint,
		Client:   httpprobe.New(cfg.HTTPTimeoutDuration()),
	}
}

// Probe returns exactly one result; a missing key is a skip.
func (p *OpenAIProbe) Probe(ctx context.Context) domain.CheckResult {
	if p.APIKey == "" {
		return domain.Skip(resultName, "OpenAI API key not configured")
	}

	headers := map[string]string{
		"authorization": "Bearer " + p.APIKey,
		"content-type":  "application/json",
	}
	resp, err := p.Client.Get(ctx, p.Endpoint, headers)
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("OpenAI API error: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Fail(resultName, fmt.Sprintf("OpenAI API returned %d", resp.StatusCode)).
			WithDetails(domain.NewDetails().With("status_code", domain.Int(resp.StatusCode))).
			WithDuration(resp.Duration)
	}

	var decoded modelListResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return domain.Fail(resultName, fmt.Sprintf("OpenAI API error: decode models: %v", err)).
			WithDuration(resp.Duration)
	}

	count := len(decoded.Data)
	return domain.Pass(resultName, fmt.Sprintf("OpenAI API accessible - %d models available", count)).
		WithDetails(domain.NewDetails().
			With("model_count", domain.Int(count)).
			With("status_code", domain.Int(resp.StatusCode))).
		WithDuration(resp.Duration)
}
