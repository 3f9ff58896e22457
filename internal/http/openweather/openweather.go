package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	maxRetries = 3
	retryDelay = 2 * time.Second
)

// Client fetches current weather. Auxiliary data only: callers must
// tolerate the Fallback payload.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	if apiKey == "" {
		log.Println("Warning: OpenWeather API Key is empty.")
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

type CurrentWeather struct {
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

// Current fetches current weather for a point, retrying with a fixed
// delay. Unlike geocoding, this lookup is retried: it is periodic
// background data, not a user-facing request on the hot path.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("units", "metric")
	params.Set("appid", c.APIKey)
	fullURL := fmt.Sprintf("%s?%s", c.BaseURL, params.Encode())

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying weather fetch... (%d/%d)", attempt+1, maxRetries)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		weather, err := c.fetch(ctx, fullURL)
		if err == nil {
			return weather, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, fullURL string) (*CurrentWeather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating weather request")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "executing weather request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var weather CurrentWeather
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, errors.Wrap(err, "decoding weather response")
	}
	return &weather, nil
}

// Fallback is the degraded payload served when every retry failed.
func Fallback() *CurrentWeather {
	w := &CurrentWeather{
		Weather: []Condition{{ID: 800, Description: "weather unavailable"}},
	}
	return w
}
