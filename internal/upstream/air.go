package upstream

import (
	"context"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

const airPath = "/airs/quality"

type airPayload struct {
	Data struct {
		AQI *float64 `json:"aqi" validate:"required"`
	} `json:"data"`
}

// AirQuality implements dashboard.AirQualitySource.
func (c *Client) AirQuality(ctx context.Context) (dashboard.AirReading, error) {
	var payload airPayload
	if err := c.getJSON(ctx, airPath, &payload); err != nil {
		return dashboard.AirReading{}, err
	}
	if err := validatePayload(airPath, payload); err != nil {
		return dashboard.AirReading{}, err
	}
	return dashboard.AirReading{AQI: *payload.Data.AQI}, nil
}

var _ dashboard.AirQualitySource = (*Client)(nil)
