package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

const (
	// DefaultWeatherAPIBaseURL is the weatherapi.com v1 endpoint root.
	DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

	// DefaultRequestTimeout bounds a single provider round trip.
	DefaultRequestTimeout = 10 * time.Second
)

// WeatherAPIOption configures a weatherapi.com provider.
type WeatherAPIOption func(*weatherAPIProvider)

type weatherAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Provider = &weatherAPIProvider{}

// WithBaseURL points the provider at a different API root, used by tests and proxies.
func WithBaseURL(baseURL string) WeatherAPIOption {
	return func(p *weatherAPIProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) WeatherAPIOption {
	return func(p *weatherAPIProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the provider's HTTP client.
func WithTimeout(timeout time.Duration) WeatherAPIOption {
	return func(p *weatherAPIProvider) {
		if timeout > 0 {
			p.httpClient.Timeout = timeout
		}
	}
}

// NewWeatherAPIProvider creates a provider backed by the weatherapi.com current conditions endpoint.
//
// Parameters:
//   - apiKey: the weatherapi.com key; an empty key makes every lookup fail with ErrMissingAPIKey
//   - options: optional overrides for base URL, client and timeout
//
// Returns:
//   - Provider: the configured provider
func NewWeatherAPIProvider(apiKey string, options ...WeatherAPIOption) Provider {
	p := &weatherAPIProvider{
		apiKey:  apiKey,
		baseURL: DefaultWeatherAPIBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *weatherAPIProvider) Name() string {
	return "WeatherAPI"
}

func (p *weatherAPIProvider) Current(ctx context.Context, location string) (Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Report{}, ErrEmptyLocation
	}
	if p.apiKey == "" {
		return Report{}, ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/current.json", p.baseURL)
	params := url.Values{}
	params.Add("key", p.apiKey)
	params.Add("q", location)
	params.Add("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response struct {
		Location struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"location"`
		Current *struct {
			TempC     float64 `json:"temp_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return Report{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if response.Current == nil {
		return Report{}, fmt.Errorf("failed to parse response: missing current conditions")
	}

	return Report{
		Location:    common.Coalesce(response.Location.Name, Title(location)),
		Temperature: strconv.Itoa(int(math.Round(response.Current.TempC))),
		TempC:       response.Current.TempC,
		Condition:   Classify(response.Current.Condition.Text),
		Description: response.Current.Condition.Text,
	}, nil
}
