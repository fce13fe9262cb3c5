// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript fetches a meeting transcript from the Granola API
// when the local cache has none. One request per meeting, bearer
// authenticated. Any failure is reported to the caller as an error and
// treated upstream as "no transcript".
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kllymx/Breakfast/internal/httputil"
	"github.com/kllymx/Breakfast/pkg/types"
)

// DefaultAPIBase is the production transcript service base URL. Tests
// substitute an httptest server through the config.
const DefaultAPIBase = "https://api.granola.ai"

const transcriptPath = "/v2/get-document-transcript"

// Client fetches transcripts for documents missing one locally.
type Client struct {
	HTTP  *http.Client
	Token string
	Cfg   types.TranscriptConfig
}

// NewClient builds a transcript client. token may be empty, in which
// case every Fetch fails and the caller renders without a transcript.
func NewClient(httpClient *http.Client, tok string, cfg types.TranscriptConfig) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	return &Client{HTTP: httpClient, Token: tok, Cfg: cfg}
}

// fetchRequest is the POST body of a transcript request.
type fetchRequest struct {
	DocumentID string `json:"document_id"`
}

// Fetch posts the meeting id to the transcript endpoint and decodes the
// array response. A missing token, non-2xx status, or malformed body is
// an error; callers never treat it as fatal.
func (c *Client) Fetch(ctx context.Context, documentID string) ([]types.TranscriptEntry, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("no access token available")
	}

	body, err := json.Marshal(fetchRequest{DocumentID: documentID})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Cfg.APIBase+transcriptPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	if c.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.Cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("transcript request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("transcript API returned HTTP %d", resp.StatusCode)
	}

	var entries []types.TranscriptEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing transcript response: %w", err)
	}
	return entries, nil
}
