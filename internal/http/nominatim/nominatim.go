package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client handles communication with a Nominatim geocoding endpoint.
// Nominatim requires a descriptive User-Agent on every request.
type Client struct {
	BaseURL    *url.URL
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a Nominatim client with default timeouts. baseURL
// may be empty to use the public OSM instance.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, _ := url.Parse(baseURL)
	return &Client{
		BaseURL:   u,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// SearchQuery represents parameters for forward geocoding requests.
type SearchQuery struct {
	Q              string `url:"q"`
	Format         string `url:"format"`
	Limit          *int   `url:"limit,omitempty"`
	AcceptLanguage string `url:"accept-language,omitempty"`
}

// Result is a single geocoding candidate. Coordinates arrive as strings.
type Result struct {
	PlaceID     int64   `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// Search performs forward geocoding for a free-text place query.
func (c *Client) Search(ctx context.Context, text string, limit int) ([]Result, error) {
	params := &SearchQuery{Q: text, Format: "json", AcceptLanguage: "en"}
	if limit > 0 {
		params.Limit = &limit
	}

	fullURL, err := c.buildURL("/search", params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating nominatim request")
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Language", "en")

	var results []Result
	if err := c.do(req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) buildURL(endpoint string, queryParams interface{}) (string, error) {
	rel := &url.URL{Path: endpoint}
	u := c.BaseURL.ResolveReference(rel)

	qs, err := query.Values(queryParams)
	if err != nil {
		return "", errors.Wrap(err, "encoding nominatim query params")
	}
	u.RawQuery = qs.Encode()
	return u.String(), nil
}

func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing nominatim request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decoding nominatim response")
	}
	return nil
}
