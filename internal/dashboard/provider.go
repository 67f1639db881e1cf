package dashboard

import (
	"context"
)

// WeatherReading is the current weather as returned by the upstream endpoint.
type WeatherReading struct {
	Code        string
	TempC       float64
	WindSpeedMS float64
	WindDeg     float64
}

// AirReading carries the upstream pollution index (higher = worse).
type AirReading struct {
	AQI float64
}

// Alert is a single upstream traffic/network alert.
type Alert struct {
	Title string
}

// WeatherSource fetches the current weather.
type WeatherSource interface {
	CurrentWeather(ctx context.Context) (WeatherReading, error)
}

// AirQualitySource fetches the current pollution index.
type AirQualitySource interface {
	AirQuality(ctx context.Context) (AirReading, error)
}

// AlertSource fetches the active alerts.
type AlertSource interface {
	Alerts(ctx context.Context) ([]Alert, error)
}

// Sources groups the three upstream collaborators of the fetch actions.
type Sources struct {
	Weather    WeatherSource
	AirQuality AirQualitySource
	Alerts     AlertSource
}

// Catalog resolves weather codes and lists the proposable activities.
type Catalog interface {
	Status(code string) (WeatherStatus, bool)
	Fallback() WeatherStatus
	Activities() []Activity
}

// SessionStore is the contract the in-memory session registry must satisfy.
type SessionStore interface {
	Create() (string, *Store)
	Get(id string) (*Store, error)
	Delete(id string) error
	All() []*Store
	Prune() int
	Len() int
}
