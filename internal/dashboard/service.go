package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/micabrunel/marcelle-mobi/internal/observability"
)

// Fetch action names, used in errors, logs and metric labels.
const (
	ActionWeather    = "weather"
	ActionAirQuality = "air_quality"
	ActionAlerts     = "alerts"
)

// Service runs the fetch actions against the session stores.
type Service struct {
	sessions SessionStore
	sources  Sources
	catalog  Catalog
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewService creates a new Service.
func NewService(sessions SessionStore, sources Sources, catalog Catalog, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		sessions: sessions,
		sources:  sources,
		catalog:  catalog,
		logger:   logger.With("component", "dashboard.service"),
		metrics:  metrics,
	}
}

// CreateSession allocates a store for a new page session.
func (s *Service) CreateSession() (string, State) {
	id, st := s.sessions.Create()
	s.metrics.Sessions.Set(float64(s.sessions.Len()))
	s.logger.Debug("session created", "session", id)
	return id, st.Snapshot()
}

// Session returns the store of a live session.
func (s *Service) Session(id string) (*Store, error) {
	return s.sessions.Get(id)
}

// EndSession tears a session down.
func (s *Service) EndSession(id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	s.metrics.SessionsEnded.WithLabelValues("closed").Inc()
	s.metrics.Sessions.Set(float64(s.sessions.Len()))
	s.logger.Debug("session ended", "session", id)
	return nil
}

// PruneSessions drops expired sessions and returns how many were removed.
func (s *Service) PruneSessions() int {
	n := s.sessions.Prune()
	if n > 0 {
		s.metrics.SessionsEnded.WithLabelValues("expired").Add(float64(n))
		s.logger.Info("expired sessions pruned", "count", n)
	}
	s.metrics.Sessions.Set(float64(s.sessions.Len()))
	return n
}

// FetchWeather refreshes temperature, weather, wind, orientation and the
// proposed activities of one session. On error the session is unchanged.
func (s *Service) FetchWeather(ctx context.Context, sessionID string) error {
	st, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	update, err := s.weatherUpdate(ctx)
	if err != nil {
		return err
	}
	st.ApplyWeather(update)
	return nil
}

// FetchAirQuality refreshes the air-quality score of one session.
func (s *Service) FetchAirQuality(ctx context.Context, sessionID string) error {
	st, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	score, err := s.airScore(ctx)
	if err != nil {
		return err
	}
	st.SetAirQuality(score)
	return nil
}

// FetchAlerts refreshes the alerts of one session.
func (s *Service) FetchAlerts(ctx context.Context, sessionID string) error {
	st, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	alerts, err := s.alertPairs(ctx)
	if err != nil {
		return err
	}
	st.SetAlerts(alerts)
	return nil
}

// Refresh runs the three fetch actions for one session concurrently and
// returns their joined errors.
func (s *Service) Refresh(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return err
	}
	actions := []func(context.Context, string) error{s.FetchWeather, s.FetchAirQuality, s.FetchAlerts}

	var (
		wg   sync.WaitGroup
		errs = make([]error, len(actions))
	)
	for i, action := range actions {
		i, action := i, action
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = action(ctx, sessionID)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// RefreshAll fetches each upstream payload once and applies it to every live
// session. A failed fetch leaves the corresponding fields of every session untouched.
func (s *Service) RefreshAll(ctx context.Context) error {
	stores := s.sessions.All()
	if len(stores) == 0 {
		s.logger.Debug("no live sessions; skipping refresh")
		return nil
	}

	var (
		wg      sync.WaitGroup
		weather WeatherUpdate
		score   int
		alerts  []AlertPair
		errs    = make([]error, 3)
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		weather, errs[0] = s.weatherUpdate(ctx)
	}()
	go func() {
		defer wg.Done()
		score, errs[1] = s.airScore(ctx)
	}()
	go func() {
		defer wg.Done()
		alerts, errs[2] = s.alertPairs(ctx)
	}()
	wg.Wait()

	for _, st := range stores {
		if errs[0] == nil {
			st.ApplyWeather(weather)
		}
		if errs[1] == nil {
			st.SetAirQuality(score)
		}
		if errs[2] == nil {
			st.SetAlerts(alerts)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Warn("refresh completed with errors", "sessions", len(stores), "error", err)
	} else {
		s.logger.Info("refresh completed", "sessions", len(stores))
	}
	return err
}

func (s *Service) weatherUpdate(ctx context.Context) (WeatherUpdate, error) {
	var update WeatherUpdate
	err := s.track(ActionWeather, func() error {
		reading, err := s.sources.Weather.CurrentWeather(ctx)
		if err != nil {
			return err
		}
		update, err = s.buildWeatherUpdate(reading)
		return err
	})
	return update, err
}

// buildWeatherUpdate derives every weather field locally so the activity
// filter sees the same values that will be stored.
func (s *Service) buildWeatherUpdate(r WeatherReading) (WeatherUpdate, error) {
	temperature, err := RoundTemperature(r.TempC)
	if err != nil {
		return WeatherUpdate{}, err
	}

	status, ok := s.catalog.Status(r.Code)
	if !ok {
		status = s.catalog.Fallback()
		s.logger.Warn("unknown weather code, using fallback status", "code", r.Code, "fallback", status.Code)
	}

	wind := WindKmh(r.WindSpeedMS)
	rotation, err := RotationFor(wind)
	if err != nil {
		return WeatherUpdate{}, err
	}

	orientation, err := OrientationTransform(r.WindDeg)
	if err != nil {
		return WeatherUpdate{}, err
	}

	return WeatherUpdate{
		Temperature: temperature,
		Weather:     status,
		WindSpeed:   wind,
		Rotation:    rotation,
		Orientation: orientation,
		Activities:  MatchActivities(s.catalog.Activities(), temperature, wind, status),
	}, nil
}

func (s *Service) airScore(ctx context.Context) (int, error) {
	var score int
	err := s.track(ActionAirQuality, func() error {
		reading, err := s.sources.AirQuality.AirQuality(ctx)
		if err != nil {
			return err
		}
		score = AirScore(reading.AQI)
		return nil
	})
	return score, err
}

func (s *Service) alertPairs(ctx context.Context) ([]AlertPair, error) {
	var pairs []AlertPair
	err := s.track(ActionAlerts, func() error {
		alerts, err := s.sources.Alerts.Alerts(ctx)
		if err != nil {
			return err
		}
		pairs = make([]AlertPair, 0, len(alerts))
		for _, a := range alerts {
			pairs = append(pairs, ParseAlertTitle(a.Title))
		}
		return nil
	})
	return pairs, err
}

// track times fn, records its outcome and wraps any error in a FetchError.
func (s *Service) track(action string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.FetchDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchRequests.WithLabelValues(action, "error").Inc()
		s.logger.Error("fetch failed", "action", action, "error", err)
		return &FetchError{Action: action, Err: err}
	}
	s.metrics.FetchRequests.WithLabelValues(action, "success").Inc()
	return nil
}
