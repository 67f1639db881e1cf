package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

// Request bodies of the named mutators. Pointers distinguish a zero value from a missing one.
type airQualityRequest struct {
	AirQuality *int `json:"airQuality" validate:"required"`
}

type temperatureRequest struct {
	Temperature *float64 `json:"temperature" validate:"required"`
}

type weatherRequest struct {
	Weather *dashboard.WeatherStatus `json:"weather" validate:"required"`
}

type windRequest struct {
	WindSpeed *float64 `json:"windSpeed" validate:"required"`
}

type orientationRequest struct {
	Orientation *float64 `json:"orientation" validate:"required"`
}

type activitiesRequest struct {
	Activities []dashboard.Activity `json:"activities" validate:"required,dive"`
}

type alertsRequest struct {
	Alerts []dashboard.AlertPair `json:"alerts" validate:"required"`
}

type mutator func(c *fiber.Ctx, st *dashboard.Store) error

var mutators = map[string]mutator{
	"air-quality": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req airQualityRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		st.SetAirQuality(*req.AirQuality)
		return nil
	},
	"temperature": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req temperatureRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return st.SetTemperature(*req.Temperature)
	},
	"weather": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req weatherRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		st.SetWeather(*req.Weather)
		return nil
	},
	"wind": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req windRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return st.SetWind(*req.WindSpeed)
	},
	"orientation": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req orientationRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return st.SetOrientation(*req.Orientation)
	},
	"activities": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req activitiesRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		st.SetActivities(req.Activities)
		return nil
	},
	"alerts": func(c *fiber.Ctx, st *dashboard.Store) error {
		var req alertsRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		st.SetAlerts(req.Alerts)
		return nil
	},
}

// bind decodes the JSON body into req and validates it.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
