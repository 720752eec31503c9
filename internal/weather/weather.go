// Package weather fetches the current conditions shown on the landing page.
package weather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/config"

	"github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

// Reading is the part of the provider payload the landing page displays.
type Reading struct {
	City        string
	Description string
	Icon        string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
}

type payload struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type Client struct {
	cfg  config.WeatherConfig
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg config.WeatherConfig, log *slog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.RequestTimeout()},
		log:  log,
	}
}

// Fetch returns nil whenever the reading is unavailable. The page renders without it.
func (c *Client) Fetch(ctx context.Context, city string) *Reading {
	if c.cfg.APIKey == "" {
		return nil
	}
	if city == "" {
		city = c.cfg.City
	}

	reading, err := c.fetch(ctx, city)
	if err != nil {
		c.log.WarnContext(ctx, "weather lookup failed", "city", city, "error", err)
		return nil
	}
	return reading
}

func (c *Client) fetch(ctx context.Context, city string) (*Reading, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", c.cfg.Units)
	q.Set("lang", c.cfg.Lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(apperror.ErrExternalService, err.Error())
	}

	res, err := c.http.Do(req)
	if err != nil {
		// the error text carries the full URL, api key included
		return nil, errors.Wrap(apperror.ErrExternalService, "request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(apperror.ErrExternalService, "unexpected status %d", res.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&p); err != nil {
		return nil, errors.Wrapf(apperror.ErrExternalService, "decoding body: %v", err)
	}

	r := &Reading{
		City:        p.Name,
		Temperature: p.Main.Temp,
		FeelsLike:   p.Main.FeelsLike,
		Humidity:    p.Main.Humidity,
		WindSpeed:   p.Wind.Speed,
	}
	if r.City == "" {
		r.City = city
	}
	if len(p.Weather) > 0 {
		r.Description = p.Weather[0].Description
		r.Icon = p.Weather[0].Icon
	}
	return r, nil
}
