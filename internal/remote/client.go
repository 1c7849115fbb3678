package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vtt-tools/discordlink/internal/dependencies/random"
	"github.com/vtt-tools/discordlink/internal/model"
)

// Client is an HTTP client for the remote identity service.
//
// Every call takes the credential explicitly rather than holding it: an
// operation must use the credential fixed at its own start, and a client
// field would let a concurrent auth invalidation leak into in-flight work.
type Client struct {
	baseURL    string
	httpClient *http.Client
	random     random.Random
	logger     *slog.Logger
}

// NewClient creates a new identity service client
func NewClient(baseURL string, rnd random.Random, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		random: rnd,
		logger: logger.With(slog.String("component", "remote-client")),
	}
}

// Error represents a non-auth failure response from the identity service
type Error struct {
	Status int
	Path   string
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity service returned %d for %s: %s", e.Status, e.Path, e.Body)
}

// Guild describes the remote community linked to a credential
type Guild struct {
	Name string `json:"name"`
}

// Lookup resolves display names to Discord ids. Names the service cannot
// resolve are absent from the result.
func (c *Client) Lookup(ctx context.Context, credential string, names []string) (map[string]model.DiscordID, error) {
	query := url.Values{}
	for _, n := range names {
		query.Add("p", n)
	}

	result := map[string]model.DiscordID{}
	if err := c.do(ctx, http.MethodGet, credential, "/discord_id", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Validate submits a candidate id set and returns the subset the service
// rejects as invalid or unknown. The call is issued even for an empty
// candidate set; the service answers with an empty invalid set.
func (c *Client) Validate(ctx context.Context, credential string, ids []model.DiscordID) ([]model.DiscordID, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("i", string(id))
	}

	var invalid []model.DiscordID
	if err := c.do(ctx, http.MethodGet, credential, "/validate_discord_ids", query, &invalid); err != nil {
		return nil, err
	}
	return invalid, nil
}

// FetchGuild returns the guild linked to the credential, or nil when no
// guild is linked
func (c *Client) FetchGuild(ctx context.Context, credential string) (*Guild, error) {
	var guild Guild
	err := c.do(ctx, http.MethodGet, credential, "/guild", nil, &guild)

	var remoteErr *Error
	if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if guild.Name == "" {
		return nil, nil
	}
	return &guild, nil
}

// TriggerSync asks the identity service to run a full bulk synchronization.
// The bulk operation itself runs on the service; this is only the kick.
func (c *Client) TriggerSync(ctx context.Context, credential string) error {
	return c.do(ctx, http.MethodPost, credential, "/sync_all", nil, nil)
}

// do performs a request and classifies the response. A 401 maps to
// model.ErrAuthInvalid before the caller ever sees the payload; any other
// non-2xx status maps to *Error.
func (c *Client) do(ctx context.Context, method, credential, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := c.random.RequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("identity service request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", path, model.ErrAuthInvalid)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Status: resp.StatusCode,
			Path:   path,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
