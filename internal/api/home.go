package api

import (
	"context"
	"net/url"
)

// Weather is the current-conditions card of the dashboard.
type Weather struct {
	Temperature int     `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
	FeelsLike   int     `json:"feels_like"`
	Location    string  `json:"location"`
}

// MarketPrice is one commodity row of the market board.
type MarketPrice struct {
	Crop   string  `json:"crop"`
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Change float64 `json:"change"`
	Market string  `json:"market,omitempty"`
}

// Dashboard aggregates everything shown on the home page.
type Dashboard struct {
	Weather            *Weather          `json:"weather"`
	Advisory           string            `json:"advisory"`
	Stats              map[string]string `json:"stats"`
	MarketPrices       []MarketPrice     `json:"market_prices"`
	SeasonalActivities []string          `json:"seasonal_activities"`
	LastUpdated        string            `json:"last_updated"`
}

// ForecastDay is one entry of the multi-day outlook.
type ForecastDay struct {
	Date        string  `json:"date"`
	High        int     `json:"high"`
	Low         int     `json:"low"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	RainChance  float64 `json:"rain_chance"`
}

// Forecast is the weather-forecast response for a city.
type Forecast struct {
	Location string        `json:"location"`
	Days     []ForecastDay `json:"days"`
	Insights string        `json:"insights,omitempty"`
}

// Dashboard fetches the home dashboard for a location.
func (c *Client) Dashboard(ctx context.Context, location string) (Dashboard, error) {
	path := "/home/dashboard"
	if location != "" {
		path += "?location=" + url.QueryEscape(location)
	}
	var out struct {
		envelope
		Data Dashboard `json:"data"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return Dashboard{}, err
	}
	if err := out.check(); err != nil {
		return Dashboard{}, err
	}
	return out.Data, nil
}

// WeatherForecast fetches the multi-day forecast for a city.
func (c *Client) WeatherForecast(ctx context.Context, city string) (Forecast, error) {
	var out struct {
		envelope
		Data Forecast `json:"data"`
	}
	if err := c.getJSON(ctx, "/home/weather-forecast/"+url.PathEscape(city), &out); err != nil {
		return Forecast{}, err
	}
	if err := out.check(); err != nil {
		return Forecast{}, err
	}
	return out.Data, nil
}
