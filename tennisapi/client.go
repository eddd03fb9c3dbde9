package tennisapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tennis-score-service/scoreboard"
)

const (
	// DefaultBaseURL is the default API base URL
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// ErrNotFound is returned when a match or player id has no entry upstream.
// It is distinct from transport failures so callers can render a dedicated
// not-found state.
var ErrNotFound = errors.New("not found")

// Client is the tennis API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds the configuration for the API client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new tennis API client for the given base URL.
func NewClient(baseURL string) *Client {
	return NewClientWithConfig(Config{BaseURL: baseURL})
}

// NewClientWithConfig creates a new client with custom configuration
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Matches fetches the full matches list.
func (c *Client) Matches() ([]scoreboard.Match, error) {
	body, err := c.get("/api/matches/", nil)
	if err != nil {
		return nil, err
	}

	var wire []wireMatch
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	matches := make([]scoreboard.Match, len(wire))
	for i := range wire {
		matches[i] = wire[i].match()
	}
	return matches, nil
}

// Match fetches one match by id. A missing id yields ErrNotFound.
func (c *Client) Match(matchID string) (*scoreboard.Match, error) {
	body, err := c.get("/api/matches/"+url.PathEscape(matchID), nil)
	if err != nil {
		return nil, err
	}

	var wire wireMatch
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode match: %w", err)
	}
	m := wire.match()
	return &m, nil
}

// Players fetches the full players list.
func (c *Client) Players() ([]scoreboard.Player, error) {
	body, err := c.get("/api/players/", nil)
	if err != nil {
		return nil, err
	}

	var players []scoreboard.Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// PlayerProfile is one player together with the W/L form of their last five
// matches.
type PlayerProfile struct {
	Player       scoreboard.Player `json:"player"`
	Last5Matches []string          `json:"last5Matches"`
}

// Player fetches one player profile by id. A missing id yields ErrNotFound.
func (c *Client) Player(playerID string) (*PlayerProfile, error) {
	body, err := c.get("/api/players/"+url.PathEscape(playerID), nil)
	if err != nil {
		return nil, err
	}

	var profile PlayerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode player profile: %w", err)
	}
	return &profile, nil
}

// wireMatch is a match as sent by the API, with the winner field kept raw so
// the three observed encodings can be normalized.
type wireMatch struct {
	scoreboard.Match
	Winner json.RawMessage `json:"winner"`
}

func (w *wireMatch) match() scoreboard.Match {
	m := w.Match
	m.Winner = decodeWinner(w.Winner)
	return m
}

// doRequest performs an HTTP request
func (c *Client) doRequest(method, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			apiErr.StatusCode = resp.StatusCode
			return nil, &apiErr
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// get performs a GET request
func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	return c.doRequest(http.MethodGet, endpoint, params)
}

// APIError represents an API error response
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}
