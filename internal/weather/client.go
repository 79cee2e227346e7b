// Package weather fetches hourly site forecasts from a WeatherAPI-compatible
// endpoint and maps them onto the canonical weather vocabulary.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

// DefaultURL is the public WeatherAPI forecast endpoint.
const DefaultURL = "https://api.weatherapi.com/v1/forecast.json"

const dateLayout = "2006-01-02"

var (
	// ErrNotConfigured indicates no API key was provided.
	ErrNotConfigured = errors.New("weather client not configured")

	// ErrNoObservations indicates the forecast contained no hours.
	ErrNoObservations = errors.New("weather forecast has no hourly data")
)

// Config holds the forecast endpoint and the site location.
type Config struct {
	URL       string
	APIKey    string
	Latitude  float64
	Longitude float64
	Timeout   time.Duration
}

// DefaultConfig points at WeatherAPI with the pilot site coordinates.
func DefaultConfig() Config {
	return Config{
		URL:       DefaultURL,
		Latitude:  36,
		Longitude: 129,
		Timeout:   5 * time.Second,
	}
}

// Observation is one forecast hour.
type Observation struct {
	Time        string // "YYYY-MM-DD HH:mm" as returned by the API
	Hour        int
	Weather     domain.WeatherType
	Temperature float64
	Humidity    float64
}

// Environment converts the observation into predictor input.
func (o Observation) Environment() domain.Environment {
	return domain.Environment{Weather: o.Weather, Temperature: o.Temperature, Humidity: o.Humidity}
}

// Client talks to the forecast API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client. A zero timeout falls back to the default.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string    `json:"date"`
			Hour []hourDTO `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type hourDTO struct {
	Time      string  `json:"time"`
	TempC     float64 `json:"temp_c"`
	Humidity  float64 `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	GustKph   float64 `json:"gust_kph"`
	Condition struct {
		Code int `json:"code"`
	} `json:"condition"`
}

// Hourly fetches the forecast for the given hours of day at (lat, lon). A
// zero day means today. Days outside the provider's forecast horizon fail
// with the provider's error.
func (c *Client) Hourly(ctx context.Context, lat, lon float64, day time.Time, hours []int) ([]Observation, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	hourParam := make([]string, len(hours))
	for i, h := range hours {
		hourParam[i] = strconv.Itoa(h)
	}
	q := url.Values{}
	q.Set("q", fmt.Sprintf("%g,%g", lat, lon))
	q.Set("key", c.cfg.APIKey)
	q.Set("days", "1")
	date := ""
	if !day.IsZero() {
		date = day.Format(dateLayout)
		q.Set("dt", date)
	}
	if len(hourParam) > 0 {
		q.Set("hour", strings.Join(hourParam, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading forecast: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}
	if len(raw.Forecast.ForecastDay) == 0 {
		return nil, ErrNoObservations
	}

	forecast := raw.Forecast.ForecastDay[0]
	for _, fd := range raw.Forecast.ForecastDay {
		if fd.Date == date {
			forecast = fd
			break
		}
	}

	var out []Observation
	for _, h := range forecast.Hour {
		out = append(out, Observation{
			Time:        h.Time,
			Hour:        hourOf(h.Time),
			Weather:     MapCondition(h.Condition.Code, h.WindKph, h.GustKph),
			Temperature: h.TempC,
			Humidity:    h.Humidity,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoObservations
	}
	return out, nil
}

// Current returns the site environment for the forecast hour closest to at,
// on at's calendar date. at should already be in the site's time zone.
func (c *Client) Current(ctx context.Context, at time.Time) (domain.Environment, error) {
	obs, err := c.Hourly(ctx, c.cfg.Latitude, c.cfg.Longitude, at, []int{at.Hour()})
	if err != nil {
		return domain.Environment{}, err
	}
	return Closest(obs, at.Hour()).Environment(), nil
}

// Closest picks the observation whose hour is nearest to hour, earliest on
// ties. obs must not be empty; entries with an unparseable time are only
// used as a last resort.
func Closest(obs []Observation, hour int) Observation {
	best := obs[0]
	bestDist := distance(best.Hour, hour)
	for _, o := range obs[1:] {
		if d := distance(o.Hour, hour); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

func distance(a, b int) int {
	if a < 0 {
		return 1 << 30
	}
	if a > b {
		return a - b
	}
	return b - a
}

// hourOf extracts HH from "YYYY-MM-DD HH:mm", or -1.
func hourOf(t string) int {
	parts := strings.Split(t, " ")
	if len(parts) != 2 || len(parts[1]) < 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[1][:2])
	if err != nil {
		return -1
	}
	return h
}
