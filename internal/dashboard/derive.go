package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Advisory texts shown under the air-quality score.
const (
	AdvisoryPoor     = "Risque très élevé pour la santé, évitez les activités physiques à l'extérieur."
	AdvisoryModerate = "Risque modéré pour la santé. "
	AdvisoryGood     = "Faible risque pour la santé. La qualité de l'air est idéale pour les activités de plein air."
)

// AirTier is the bracket an air-quality score falls into.
type AirTier int

const (
	AirPoor     AirTier = iota // score <= 3
	AirModerate                // 3 < score <= 7
	AirGood                    // score > 7
)

// TierFor maps a score to its bracket. Upper bounds are inclusive.
func TierFor(score int) AirTier {
	switch {
	case score <= 3:
		return AirPoor
	case score <= 7:
		return AirModerate
	default:
		return AirGood
	}
}

// Advisory returns the health text for the tier.
func (t AirTier) Advisory() string {
	switch t {
	case AirPoor:
		return AdvisoryPoor
	case AirModerate:
		return AdvisoryModerate
	default:
		return AdvisoryGood
	}
}

// Background picks the tier's illustration from assets.
func (t AirTier) Background(assets Assets) string {
	switch t {
	case AirPoor:
		return assets.PoorAir
	case AirModerate:
		return assets.ModerateAir
	default:
		return assets.CleanAir
	}
}

// AirScore converts a pollution index (higher = worse) into the 0-10 display
// score (higher = better). The result is not clamped.
func AirScore(aqi float64) int {
	return int(math.Round(10 - aqi/10))
}

// RoundTemperature rounds half away from zero.
func RoundTemperature(celsius float64) (int, error) {
	if !isFinite(celsius) {
		return 0, fmt.Errorf("%w: temperature must be finite, got %v", ErrInvalidInput, celsius)
	}
	return int(math.Round(celsius)), nil
}

// WindKmh converts m/s to km/h, truncating toward zero.
func WindKmh(metersPerSecond float64) float64 {
	return math.Trunc(metersPerSecond * 3.6)
}

// RotationFor derives the turbine animation duration: 60s at 1 km/h, inversely
// proportional to the speed.
func RotationFor(kmh float64) (SpeedRotation, error) {
	if !isFinite(kmh) || kmh <= 0 {
		return SpeedRotation{}, fmt.Errorf("%w: wind speed must be positive, got %v", ErrInvalidInput, kmh)
	}
	seconds := 20 / kmh * 3
	return SpeedRotation{AnimationDuration: formatNumber(seconds) + "s"}, nil
}

// OrientationTransform embeds the angle in a CSS rotation. The angle is not normalized.
func OrientationTransform(deg float64) (string, error) {
	if !isFinite(deg) {
		return "", fmt.Errorf("%w: orientation must be finite, got %v", ErrInvalidInput, deg)
	}
	return "transform:rotate(" + formatNumber(deg) + "deg)", nil
}

// MatchActivities keeps, in catalog order, the activities whose conditions
// strictly bracket the temperature and wind and whose Beau flag equals status.Clear.
func MatchActivities(activities []Activity, temperature int, windKmh float64, status WeatherStatus) []Activity {
	t := float64(temperature)
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		c := a.Conditions
		if c.MinTemp < t && c.MaxTemp > t &&
			c.MinWind < windKmh && c.MaxWind > windKmh &&
			c.Beau == status.Clear {
			out = append(out, a)
		}
	}
	return out
}

// ParseAlertTitle drops the first "-" and splits the rest on the first ":".
// A title without a colon yields an empty detail.
func ParseAlertTitle(title string) AlertPair {
	cleaned := strings.Replace(title, "-", "", 1)
	head, tail, _ := strings.Cut(cleaned, ":")
	return AlertPair{head, tail}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
