// Package embedding provides embedding clients, caching wrappers, and the
// cosine-similarity provider used by the scoring engine.
package embedding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/observability"
)

// Client calls an OpenAI-compatible embeddings endpoint.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// NewClient constructs an embeddings client with sensible timeouts.
func NewClient(cfg config.Config) *Client {
	embedTimeout := 30 * time.Second
	if cfg.IsDev() {
		embedTimeout = 60 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: embedTimeout}}
}

// getBackoffConfig returns a configured ExponentialBackOff based on the current environment.
func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()

	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetEmbedBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier

	return expo
}

// Embed calls the embeddings endpoint and returns one vector per input text.
// 429 and 5xx responses are retried with exponential backoff; other 4xx
// responses fail immediately.
func (c *Client) Embed(ctx domain.Context, texts []string) ([][]float32, error) {
	if c.cfg.OpenAIAPIKey == "" || c.cfg.EmbeddingsModel == "" {
		// Do not log secrets; only indicate presence
		slog.Error("embeddings API key or model missing", slog.String("provider", "openai"), slog.Bool("has_api_key", c.cfg.OpenAIAPIKey != ""), slog.String("model", c.cfg.EmbeddingsModel))
		return nil, fmt.Errorf("%w: OPENAI_API_KEY or EMBEDDINGS_MODEL missing", domain.ErrInvalidArgument)
	}
	body := map[string]any{
		"model": c.cfg.EmbeddingsModel,
		"input": texts,
	}
	b, _ := json.Marshal(body)
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenAIBaseURL+"/embeddings", bytes.NewReader(b))
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		observability.EmbedRequestDuration.WithLabelValues("openai").Observe(time.Since(start).Seconds())
		if err != nil {
			observability.EmbedRequestsTotal.WithLabelValues("openai", "transport_error").Inc()
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusTooManyRequests {
			// Retryable: let backoff handle retries
			observability.EmbedRequestsTotal.WithLabelValues("openai", "rate_limited").Inc()
			slog.Warn("embeddings provider rate limited", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode), slog.String("x_request_id", resp.Header.Get("X-Request-Id")))
			return fmt.Errorf("%w: 429", domain.ErrRateLimited)
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client error: non-retryable
			observability.EmbedRequestsTotal.WithLabelValues("openai", "client_error").Inc()
			bodySnippet := readSnippet(resp.Body, 512)
			slog.Warn("embeddings provider 4xx", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel), slog.String("body", bodySnippet))
			return backoff.Permanent(fmt.Errorf("embed status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// 5xx and others: retryable
			observability.EmbedRequestsTotal.WithLabelValues("openai", "server_error").Inc()
			bodySnippet := readSnippet(resp.Body, 512)
			slog.Error("embeddings provider non-2xx", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel), slog.String("body", bodySnippet))
			return fmt.Errorf("embed status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			observability.EmbedRequestsTotal.WithLabelValues("openai", "decode_error").Inc()
			slog.Error("embeddings provider decode error", slog.String("provider", "openai"), slog.String("model", c.cfg.EmbeddingsModel), slog.Any("error", err))
			return err
		}
		observability.EmbedRequestsTotal.WithLabelValues("openai", "ok").Inc()
		return nil
	}
	expo := c.getBackoffConfig()
	bo := backoff.WithContext(expo, ctx)

	if err := backoff.Retry(op, bo); err != nil {
		slog.Error("embeddings API failed after retries", slog.String("provider", "openai"), slog.Any("error", err))
		return nil, fmt.Errorf("embeddings api failed: %w", err)
	}

	if len(out.Data) != len(texts) {
		slog.Error("embeddings API returned wrong vector count", slog.String("provider", "openai"), slog.Int("want", len(texts)), slog.Int("got", len(out.Data)))
		return nil, errors.New("embeddings api returned wrong vector count")
	}

	res := make([][]float32, len(out.Data))
	for i := range out.Data {
		v := make([]float32, len(out.Data[i].Embedding))
		for j := range out.Data[i].Embedding {
			v[j] = float32(out.Data[i].Embedding[j])
		}
		res[i] = v
	}
	return res, nil
}

// readSnippet returns up to n bytes of the body for log context.
func readSnippet(r io.Reader, n int64) string {
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return string(b)
}
