// Package exchangerateapi fetches live rates from the open.er-api.com v6 "latest" endpoint.
package exchangerateapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/judeotine/SpendWise/internal/apperrors"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://open.er-api.com/v6/latest"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Client calls GET {baseURL}/{base} and reads the top-level "rates" object.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client. An empty baseURL or non-positive timeout uses the defaults.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ portsrepo.ExchangeRateFetcher = (*Client)(nil)

// FetchRates returns the rates quoted against base. A timeout, transport error or non-2xx status
// wraps apperrors.ErrNetworkFailure; a body without a "rates" object wraps apperrors.ErrMalformedResponse.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching exchange rates", slog.String("url", endpoint))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", apperrors.ErrNetworkFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d for %s", apperrors.ErrNetworkFailure, resp.StatusCode, base)
	}

	return parseRates(body)
}

func parseRates(body []byte) (map[string]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", apperrors.ErrMalformedResponse)
	}
	ratesField := gjson.GetBytes(body, "rates")
	if !ratesField.IsObject() {
		return nil, fmt.Errorf("%w: missing rates object", apperrors.ErrMalformedResponse)
	}

	rates := make(map[string]float64)
	ratesField.ForEach(func(code, value gjson.Result) bool {
		if value.Type == gjson.Number {
			rates[code.String()] = value.Float()
		}
		return true
	})
	return rates, nil
}
