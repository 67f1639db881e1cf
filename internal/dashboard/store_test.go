package dashboard

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(DefaultAssets("/img"))
}

func TestInitialState(t *testing.T) {
	st := newTestStore().Snapshot()

	assert.Equal(t, "/img/scuba.svg", st.ActiveBackground)
	assert.Equal(t, DefaultPalette, st.ColorTemp)
	assert.Nil(t, st.AirQuality)
	assert.Nil(t, st.Temperature)
	assert.Nil(t, st.Weather)
	assert.Empty(t, st.ProposedActivities)
	assert.Empty(t, st.Alerts)
	assert.False(t, st.Show)

	raw, err := json.Marshal(st)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Nil(t, doc["airQuality"])
	assert.Equal(t, []any{}, doc["activitesProposees"])
	assert.Equal(t, []any{}, doc["alertsRtm"])
}

func TestSetAirQualityDerivesAdvisoryAndBackground(t *testing.T) {
	s := newTestStore()

	s.SetAirQuality(3)
	st := s.Snapshot()
	assert.Equal(t, 3, *st.AirQuality)
	assert.Equal(t, AdvisoryPoor, st.AirQualityText)
	assert.Equal(t, "/img/scuba.svg", st.ActiveBackground)

	s.SetAirQuality(7)
	st = s.Snapshot()
	assert.Equal(t, AdvisoryModerate, st.AirQualityText)
	assert.Equal(t, "/img/lungs.svg", st.ActiveBackground)

	s.SetAirQuality(8)
	st = s.Snapshot()
	assert.Equal(t, AdvisoryGood, st.AirQualityText)
	assert.Equal(t, "/img/lavande.svg", st.ActiveBackground)
}

func TestSetWindStoresRotation(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetWind(10))
	st := s.Snapshot()
	assert.Equal(t, 10.0, *st.WindSpeed)
	assert.Equal(t, "6s", st.SpeedRotation.AnimationDuration)

	err := s.SetWind(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, st, s.Snapshot())
}

func TestSetTemperatureAndOrientation(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetTemperature(21.5))
	require.NoError(t, s.SetOrientation(180))
	st := s.Snapshot()
	assert.Equal(t, 22, *st.Temperature)
	assert.Equal(t, "transform:rotate(180deg)", st.Orientation)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.SetAlerts([]AlertPair{{"a", "b"}})
	s.SetActivities([]Activity{{Name: "Vélo"}})
	s.SetAirQuality(5)

	st := s.Snapshot()
	st.Alerts[0] = AlertPair{"x", "y"}
	st.ProposedActivities[0].Name = "changed"
	*st.AirQuality = 99

	again := s.Snapshot()
	assert.Equal(t, AlertPair{"a", "b"}, again.Alerts[0])
	assert.Equal(t, "Vélo", again.ProposedActivities[0].Name)
	assert.Equal(t, 5, *again.AirQuality)
}

func TestSettersCopyInput(t *testing.T) {
	s := newTestStore()
	alerts := []AlertPair{{"a", "b"}}
	s.SetAlerts(alerts)
	alerts[0] = AlertPair{"x", "y"}

	assert.Equal(t, AlertPair{"a", "b"}, s.Snapshot().Alerts[0])
}

func TestApplyWeather(t *testing.T) {
	s := newTestStore()
	s.ApplyWeather(WeatherUpdate{
		Temperature: 19,
		Weather:     WeatherStatus{Code: "Clear", Label: "Ensoleillé", Clear: true},
		WindSpeed:   18,
		Rotation:    SpeedRotation{AnimationDuration: "3s"},
		Orientation: "transform:rotate(90deg)",
		Activities:  []Activity{{Name: "Vélo"}},
	})

	st := s.Snapshot()
	assert.Equal(t, 19, *st.Temperature)
	assert.Equal(t, "Clear", st.Weather.Code)
	assert.Equal(t, 18.0, *st.WindSpeed)
	assert.Equal(t, "3s", st.SpeedRotation.AnimationDuration)
	assert.Equal(t, "transform:rotate(90deg)", st.Orientation)
	assert.Len(t, st.ProposedActivities, 1)
}

func TestConcurrentMutators(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAirQuality(i % 11)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	st := s.Snapshot()
	require.NotNil(t, st.AirQuality)
	tier := TierFor(*st.AirQuality)
	assert.Equal(t, tier.Advisory(), st.AirQualityText)
	assert.Equal(t, tier.Background(DefaultAssets("/img")), st.ActiveBackground)
}

func TestSetWeatherReplacesWholesale(t *testing.T) {
	s := newTestStore()
	s.SetWeather(WeatherStatus{Code: "Rain", Label: "Pluie", Icon: "rain.svg"})
	s.SetWeather(WeatherStatus{Code: "Clear", Clear: true})

	st := s.Snapshot()
	require.NotNil(t, st.Weather)
	assert.Equal(t, WeatherStatus{Code: "Clear", Clear: true}, *st.Weather)
}
