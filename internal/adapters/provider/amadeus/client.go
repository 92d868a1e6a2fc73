// Package amadeus adapts the Amadeus self-service REST API to the
// FlightProvider port. All payload shapes are decoded into domain types here;
// nothing upstream of this package sees the wire format.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mcravey/makemefly/internal/domain"
	"github.com/mcravey/makemefly/internal/ports"
)

const (
	defaultBaseURL = "https://test.api.amadeus.com"
	tokenPath      = "/v1/security/oauth2/token"

	// Refresh the access token slightly before the provider expires it.
	tokenExpirySlack = 30 * time.Second

	maxResponseBytes = 4 << 20
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Clock        ports.Clock
}

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	clock        ports.Clock

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var _ ports.FlightProvider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("amadeus client id and secret are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		clock:        clock,
	}, nil
}

func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Itinerary, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("travelClass", string(query.Cabin))
	params.Set("max", strconv.Itoa(query.MaxResults))
	params.Set("currencyCode", query.Currency)
	if query.NonStop {
		params.Set("nonStop", "true")
	}
	if query.ReturnDate != "" {
		params.Set("returnDate", query.ReturnDate)
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(query.MaxPrice))
	}

	var payload flightOffersResponse
	if err := c.getJSON(ctx, "/v2/shopping/flight-offers", params, &payload); err != nil {
		return nil, err
	}

	return payload.toItineraries()
}

func (c *Client) DirectDestinations(ctx context.Context, origin string) ([]string, error) {
	params := url.Values{}
	params.Set("departureAirportCode", origin)

	var payload directDestinationsResponse
	if err := c.getJSON(ctx, "/v1/airport/direct-destinations", params, &payload); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.IATACode != "" {
			codes = append(codes, entry.IATACode)
		}
	}

	return codes, nil
}

func (c *Client) FlightDestinations(ctx context.Context, origin, departureDate string, maxPrice int) ([]string, error) {
	params := url.Values{}
	params.Set("origin", origin)
	if departureDate != "" {
		params.Set("departureDate", departureDate)
	}
	if maxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(maxPrice))
	}

	var payload flightDestinationsResponse
	if err := c.getJSON(ctx, "/v1/shopping/flight-destinations", params, &payload); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.Destination != "" {
			codes = append(codes, entry.Destination)
		}
	}

	return codes, nil
}

func (c *Client) AirlineNames(ctx context.Context, codes []string) (map[string]string, error) {
	params := url.Values{}
	params.Set("airlineCodes", strings.Join(codes, ","))

	var payload airlinesResponse
	if err := c.getJSON(ctx, "/v1/reference-data/airlines", params, &payload); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(payload.Data))
	for _, airline := range payload.Data {
		if airline.IATACode == "" {
			continue
		}
		name := airline.BusinessName
		if name == "" {
			name = airline.CommonName
		}
		if name == "" {
			name = airline.IATACode
		}
		names[airline.IATACode] = name
	}

	return names, nil
}

func (c *Client) PriceMetrics(ctx context.Context, origin, destination, departureDate string) (*domain.PriceQuartiles, error) {
	params := url.Values{}
	params.Set("originIataCode", origin)
	params.Set("destinationIataCode", destination)
	params.Set("departureDate", departureDate)

	var payload priceMetricsResponse
	if err := c.getJSON(ctx, "/v1/analytics/itinerary-price-metrics", params, &payload); err != nil {
		return nil, err
	}

	return payload.toQuartiles(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &domain.ProviderError{Kind: domain.FailureNetwork, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &domain.ProviderError{Kind: domain.FailureNetwork, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return providerErrorFromStatus(response.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", path, err)
	}

	return nil
}

// token returns a cached access token, fetching a fresh one when the cached
// token is absent or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	now := c.clock.Now()
	if c.accessToken != "" && now.Before(c.tokenExpiry.Add(-tokenExpirySlack)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", &domain.ProviderError{Kind: domain.FailureNetwork, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", &domain.ProviderError{Kind: domain.FailureNetwork, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// Any token failure reads as an authentication problem.
		return "", &domain.ProviderError{
			Kind:       domain.FailureAuth,
			StatusCode: response.StatusCode,
			Body:       string(body),
		}
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}
	if payload.AccessToken == "" {
		return "", &domain.ProviderError{Kind: domain.FailureAuth, Body: string(body)}
	}

	c.accessToken = payload.AccessToken
	c.tokenExpiry = now.Add(time.Duration(payload.ExpiresIn) * time.Second)

	return c.accessToken, nil
}

func providerErrorFromStatus(status int, body []byte) *domain.ProviderError {
	kind := domain.FailureClient
	switch {
	case status == http.StatusUnauthorized:
		kind = domain.FailureAuth
	case status >= 500:
		kind = domain.FailureServer
	}

	return &domain.ProviderError{
		Kind:       kind,
		StatusCode: status,
		Body:       string(body),
	}
}
