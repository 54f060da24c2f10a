package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/histtrader/ledger"
)

// DefaultBaseURL is Binance's public spot API.
const DefaultBaseURL = "https://api.binance.com"

// APIKeyEnv is the environment variable the client reads its key from.
const APIKeyEnv = "BINANCE_API_KEY"

// ErrMissingAPIKey is returned when APIKeyEnv is unset or empty.
var ErrMissingAPIKey = errors.New("binance: no api key found, set " + APIKeyEnv)

// APIError is a non-2xx response from the exchange. The body and request
// URL are preserved verbatim so a rejected request can be diagnosed from
// the error alone. It is a distinct kind from transport failures.
type APIError struct {
	Status int
	Body   string
	URL    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance: status %d for %s: %s", e.Status, e.URL, e.Body)
}

// Client calls the historical trades endpoint. It implements
// ledger.Fetcher; the ledger owns validation of what comes back, the
// client owns authentication and status-code interpretation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client with an explicit key. An empty baseURL selects
// the public API; tests point it at an httptest server.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientFromEnv sources the api key from APIKeyEnv.
func NewClientFromEnv() (*Client, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return NewClient(key, ""), nil
}

// FetchBatch requests up to limit trades for symbol starting at fromID,
// ascending by trade id as the endpoint guarantees.
func (c *Client) FetchBatch(ctx context.Context, symbol string, fromID int64, limit int) ([]ledger.Trade, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fromId", strconv.FormatInt(fromID, 10))

	apiURL := fmt.Sprintf("%s/api/v3/historicalTrades?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("binance: create request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance: request %s: %w", apiURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance: read response for %s: %w", apiURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body), URL: apiURL}
	}

	var trades []ledger.Trade
	if err := json.Unmarshal(body, &trades); err != nil {
		return nil, fmt.Errorf("binance: decode response %q: %w", string(body), err)
	}
	return trades, nil
}
