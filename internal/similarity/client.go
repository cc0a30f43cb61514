// Package similarity wraps the hosted sentence-similarity service: one source
// sentence is compared against a list of sentences and scored pairwise.
package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	slog.Info("Creating similarity client", "endpoint", endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("similarity endpoint cannot be empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type compareRequest struct {
	Inputs compareInputs `json:"inputs"`
}

type compareInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

type serviceError struct {
	Error string `json:"error"`
}

// Compare scores source against each sentence and returns one score per
// sentence, aligned to the input order.
func (c *Client) Compare(ctx context.Context, source string, sentences []string) ([]float64, error) {
	payload, err := json.Marshal(compareRequest{
		Inputs: compareInputs{
			SourceSentence: source,
			Sentences:      sentences,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal similarity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build similarity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("similarity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read similarity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		if json.Unmarshal(body, &svcErr) == nil && svcErr.Error != "" {
			return nil, fmt.Errorf("similarity service error: %s", svcErr.Error)
		}
		return nil, fmt.Errorf("similarity service returned status %d", resp.StatusCode)
	}

	var scores []float64
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("malformed similarity response: %w", err)
	}
	if len(scores) != len(sentences) {
		return nil, fmt.Errorf("similarity response has %d scores for %d sentences", len(scores), len(sentences))
	}

	return scores, nil
}
