package upstream

import (
	"context"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

const weatherPath = "/weathers/today"

// weatherPayload is the OpenWeatherMap-shaped body of /weathers/today.
// Pointers distinguish a missing field from a zero reading.
type weatherPayload struct {
	Weather []struct {
		Main string `json:"main" validate:"required"`
	} `json:"weather" validate:"required,min=1,dive"`
	Main struct {
		Temp *float64 `json:"temp" validate:"required"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed" validate:"required"`
		Deg   *float64 `json:"deg" validate:"required"`
	} `json:"wind"`
}

// CurrentWeather implements dashboard.WeatherSource.
func (c *Client) CurrentWeather(ctx context.Context) (dashboard.WeatherReading, error) {
	var payload weatherPayload
	if err := c.getJSON(ctx, weatherPath, &payload); err != nil {
		return dashboard.WeatherReading{}, err
	}
	if err := validatePayload(weatherPath, payload); err != nil {
		return dashboard.WeatherReading{}, err
	}

	return dashboard.WeatherReading{
		Code:        payload.Weather[0].Main,
		TempC:       *payload.Main.Temp,
		WindSpeedMS: *payload.Wind.Speed,
		WindDeg:     *payload.Wind.Deg,
	}, nil
}

var _ dashboard.WeatherSource = (*Client)(nil)
