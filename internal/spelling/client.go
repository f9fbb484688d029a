package spelling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// ClientConfig captures the runtime settings required to talk to the
// spell-checking provider.
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	Language       string
	TimeoutSeconds int
}

// Client checks text against a LanguageTool-compatible HTTP endpoint.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a checker using the supplied configuration.
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: ClientConfig{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Language:       strings.TrimSpace(cfg.Language),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.Language == "" {
		client.cfg.Language = "en-US"
	}
	return client
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check sends the prepared text to the provider and converts the response
// into candidate matches.
func (c *Client) Check(ctx context.Context, text string) ([]Match, error) {
	if c.cfg.BaseURL == "" {
		return nil, errors.New("spellcheck: base url required")
	}

	prepared := PrepareText(text)
	if prepared == "" {
		return []Match{}, nil
	}

	form := url.Values{}
	form.Set("text", prepared)
	form.Set("language", c.cfg.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("spellcheck: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spellcheck: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spellcheck: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spellcheck: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded checkResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("spellcheck: decode response: %w", err)
	}

	runes := []rune(prepared)
	matches := make([]Match, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		original := sliceOffset(runes, m.Offset, m.Length)
		if original == "" {
			continue
		}
		suggested := ""
		if len(m.Replacements) > 0 {
			suggested = m.Replacements[0].Value
		}
		matches = append(matches, NewMatch(original, suggested, m.Rule.ID))
	}
	return matches, nil
}

func sliceOffset(runes []rune, offset, length int) string {
	if offset < 0 || length <= 0 || offset >= len(runes) {
		return ""
	}
	end := offset + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end])
}
