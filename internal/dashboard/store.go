package dashboard

import (
	"sync"
)

// Store holds one session's dashboard state. Mutators are the only write path;
// each runs to completion under the write lock.
type Store struct {
	mu     sync.RWMutex
	state  State
	assets Assets
}

// NewStore returns a store in the page's initial state.
func NewStore(assets Assets) *Store {
	return &Store{
		assets: assets,
		state: State{
			ActiveBackground:   assets.PoorAir,
			ProposedActivities: []Activity{},
			Alerts:             []AlertPair{},
			ColorTemp:          DefaultPalette,
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SetAirQuality stores the score with its matching advisory and background.
func (s *Store) SetAirQuality(score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAirQualityLocked(score)
}

func (s *Store) setAirQualityLocked(score int) {
	tier := TierFor(score)
	s.state.AirQuality = &score
	s.state.AirQualityText = tier.Advisory()
	s.state.ActiveBackground = tier.Background(s.assets)
}

// SetTemperature stores the rounded temperature.
func (s *Store) SetTemperature(celsius float64) error {
	rounded, err := RoundTemperature(celsius)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Temperature = &rounded
	return nil
}

// SetWeather replaces the weather status.
func (s *Store) SetWeather(status WeatherStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Weather = &status
}

// SetWind stores the speed in km/h together with its rotation duration.
func (s *Store) SetWind(kmh float64) error {
	rotation, err := RotationFor(kmh)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.WindSpeed = &kmh
	s.state.SpeedRotation = rotation
	return nil
}

// SetOrientation stores the wind direction as a CSS transform.
func (s *Store) SetOrientation(deg float64) error {
	transform, err := OrientationTransform(deg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Orientation = transform
	return nil
}

// SetActivities replaces the proposed activities.
func (s *Store) SetActivities(activities []Activity) {
	cp := append([]Activity{}, activities...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ProposedActivities = cp
}

// SetAlerts replaces the parsed alerts.
func (s *Store) SetAlerts(alerts []AlertPair) {
	cp := append([]AlertPair{}, alerts...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Alerts = cp
}

// WeatherUpdate is every field written by the weather fetch, derived up front.
type WeatherUpdate struct {
	Temperature int
	Weather     WeatherStatus
	WindSpeed   float64
	Rotation    SpeedRotation
	Orientation string
	Activities  []Activity
}

// ApplyWeather writes a weather update as a single transition.
func (s *Store) ApplyWeather(u WeatherUpdate) {
	activities := append([]Activity{}, u.Activities...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Temperature = &u.Temperature
	s.state.Weather = &u.Weather
	s.state.WindSpeed = &u.WindSpeed
	s.state.SpeedRotation = u.Rotation
	s.state.Orientation = u.Orientation
	s.state.ProposedActivities = activities
}
