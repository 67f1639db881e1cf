package dashboard

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Patch is a typed partial update. Nil fields are left untouched. Derived
// fields (advisory text, background, rotation) and the palette are not
// patchable; they follow from the fields below.
type Patch struct {
	AirQuality  *int           `json:"airQuality"`
	Temperature *float64       `json:"temperature"`
	Weather     *WeatherStatus `json:"weather"`
	WindSpeed   *float64       `json:"windSpeed"`
	Orientation *float64       `json:"orientation"`
	Activities  *[]Activity    `json:"activitesProposees"`
	Alerts      *[]AlertPair   `json:"alertsRtm"`
	FanSpeed    *string        `json:"fanSpeed"`
	WeatherIcon *string        `json:"weatherIcon"`
	Show        *bool          `json:"show"`
}

var patchableKeys = map[string]struct{}{
	"airQuality":         {},
	"temperature":        {},
	"weather":            {},
	"windSpeed":          {},
	"orientation":        {},
	"activitesProposees": {},
	"alertsRtm":          {},
	"fanSpeed":           {},
	"weatherIcon":        {},
	"show":               {},
}

// DecodePatch parses a JSON object into a Patch, rejecting keys that are not patchable.
func DecodePatch(data []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := patchableKeys[k]; !ok {
			return Patch{}, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
	}

	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return p, nil
}

// ApplyPatch validates every field of p, then writes them all at once.
// On error the state is unchanged.
func (s *Store) ApplyPatch(p Patch) error {
	var (
		temperature int
		rotation    SpeedRotation
		orientation string
		err         error
	)
	if p.Temperature != nil {
		if temperature, err = RoundTemperature(*p.Temperature); err != nil {
			return err
		}
	}
	if p.WindSpeed != nil {
		if rotation, err = RotationFor(*p.WindSpeed); err != nil {
			return err
		}
	}
	if p.Orientation != nil {
		if orientation, err = OrientationTransform(*p.Orientation); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.AirQuality != nil {
		s.setAirQualityLocked(*p.AirQuality)
	}
	if p.Temperature != nil {
		s.state.Temperature = &temperature
	}
	if p.Weather != nil {
		w := *p.Weather
		s.state.Weather = &w
	}
	if p.WindSpeed != nil {
		kmh := *p.WindSpeed
		s.state.WindSpeed = &kmh
		s.state.SpeedRotation = rotation
	}
	if p.Orientation != nil {
		s.state.Orientation = orientation
	}
	if p.Activities != nil {
		s.state.ProposedActivities = append([]Activity{}, (*p.Activities)...)
	}
	if p.Alerts != nil {
		s.state.Alerts = append([]AlertPair{}, (*p.Alerts)...)
	}
	if p.FanSpeed != nil {
		s.state.FanSpeed = *p.FanSpeed
	}
	if p.WeatherIcon != nil {
		s.state.WeatherIcon = *p.WeatherIcon
	}
	if p.Show != nil {
		s.state.Show = *p.Show
	}
	return nil
}
