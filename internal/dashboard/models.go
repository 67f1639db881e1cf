package dashboard

// ColorPalette is the static temperature palette shown next to the reading.
type ColorPalette struct {
	Cold   string `json:"cold"`
	Hot    string `json:"hot"`
	Normal string `json:"normal"`
}

// DefaultPalette never changes at runtime.
var DefaultPalette = ColorPalette{
	Cold:   "#7AE5ED",
	Hot:    "#F9B34D",
	Normal: "#AAEC76",
}

// SpeedRotation drives the CSS animation of the wind turbine icon.
type SpeedRotation struct {
	AnimationDuration string `json:"animationDuration,omitempty"`
}

// WeatherStatus is the display record resolved from an upstream weather code.
type WeatherStatus struct {
	Code  string `json:"code" yaml:"-"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
	Clear bool   `json:"clear" yaml:"clear"`
}

// Conditions bound the weather an activity is proposed for.
// Beau is matched against WeatherStatus.Clear.
type Conditions struct {
	MinTemp float64 `json:"minTemp" yaml:"minTemp" validate:"ltefield=MaxTemp"`
	MaxTemp float64 `json:"maxTemp" yaml:"maxTemp"`
	MinWind float64 `json:"minWind" yaml:"minWind" validate:"ltefield=MaxWind"`
	MaxWind float64 `json:"maxWind" yaml:"maxWind"`
	Beau    bool    `json:"beau" yaml:"beau"`
}

// Activity is an outdoor activity that can be proposed on the dashboard.
type Activity struct {
	Name       string     `json:"name" yaml:"name" validate:"required"`
	Icon       string     `json:"icon,omitempty" yaml:"icon"`
	Conditions Conditions `json:"conditions" yaml:"conditions"`
}

// AlertPair holds the two segments of a parsed alert title.
type AlertPair [2]string

// Title returns the segment before the first colon.
func (p AlertPair) Title() string { return p[0] }

// Detail returns everything after the first colon, untrimmed.
func (p AlertPair) Detail() string { return p[1] }

// State is the flat record of display fields read by the page.
// JSON keys are part of the page contract and must not be renamed.
type State struct {
	ActiveBackground   string         `json:"activeBackground"`
	ProposedActivities []Activity     `json:"activitesProposees"`
	AirQuality         *int           `json:"airQuality"`
	AirQualityText     string         `json:"airQualityText"`
	Alerts             []AlertPair    `json:"alertsRtm"`
	ColorTemp          ColorPalette   `json:"colorTemp"`
	FanSpeed           string         `json:"fanSpeed"`
	Orientation        string         `json:"orientation"`
	SpeedRotation      SpeedRotation  `json:"speedRotation"`
	Show               bool           `json:"show"`
	Temperature        *int           `json:"temperature"`
	WindSpeed          *float64       `json:"windSpeed"`
	Weather            *WeatherStatus `json:"weather"`
	WeatherIcon        string         `json:"weatherIcon"`
}

// clone returns a deep copy so readers never share slices or pointers with the store.
func (s State) clone() State {
	out := s
	out.ProposedActivities = append([]Activity{}, s.ProposedActivities...)
	out.Alerts = append([]AlertPair{}, s.Alerts...)
	if s.AirQuality != nil {
		v := *s.AirQuality
		out.AirQuality = &v
	}
	if s.Temperature != nil {
		v := *s.Temperature
		out.Temperature = &v
	}
	if s.WindSpeed != nil {
		v := *s.WindSpeed
		out.WindSpeed = &v
	}
	if s.Weather != nil {
		v := *s.Weather
		out.Weather = &v
	}
	return out
}

// Assets are the background illustrations, one per air-quality tier.
type Assets struct {
	PoorAir     string
	ModerateAir string
	CleanAir    string
}

// DefaultAssets returns the illustrations served under baseURL.
func DefaultAssets(baseURL string) Assets {
	return Assets{
		PoorAir:     baseURL + "/scuba.svg",
		ModerateAir: baseURL + "/lungs.svg",
		CleanAir:    baseURL + "/lavande.svg",
	}
}
