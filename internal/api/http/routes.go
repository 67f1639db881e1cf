package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
	"github.com/micabrunel/marcelle-mobi/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		id, state := service.CreateSession()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    id,
			"state": state,
		})
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := service.EndSession(c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	sessions := v1.Group("/sessions/:id")

	sessions.Get("/dashboard", func(c *fiber.Ctx) error {
		st, err := service.Session(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(st.Snapshot())
	})

	sessions.Patch("/dashboard", func(c *fiber.Ctx) error {
		st, err := service.Session(c.Params("id"))
		if err != nil {
			return err
		}
		patch, err := dashboard.DecodePatch(c.Body())
		if err != nil {
			return err
		}
		if err := st.ApplyPatch(patch); err != nil {
			return err
		}
		return c.JSON(st.Snapshot())
	})

	sessions.Put("/dashboard/:mutator", func(c *fiber.Ctx) error {
		mutate, ok := mutators[c.Params("mutator")]
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown mutator "+c.Params("mutator"))
		}
		st, err := service.Session(c.Params("id"))
		if err != nil {
			return err
		}
		if err := mutate(c, st); err != nil {
			return err
		}
		return c.JSON(st.Snapshot())
	})

	actions := map[string]func(*fiber.Ctx, string) error{
		"weather": func(c *fiber.Ctx, id string) error {
			return service.FetchWeather(c.UserContext(), id)
		},
		"air-quality": func(c *fiber.Ctx, id string) error {
			return service.FetchAirQuality(c.UserContext(), id)
		},
		"alerts": func(c *fiber.Ctx, id string) error {
			return service.FetchAlerts(c.UserContext(), id)
		},
	}

	sessions.Post("/fetch/:action", func(c *fiber.Ctx) error {
		action, ok := actions[c.Params("action")]
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown action "+c.Params("action"))
		}
		id := c.Params("id")
		if err := action(c, id); err != nil {
			return err
		}
		st, err := service.Session(id)
		if err != nil {
			return err
		}
		return c.JSON(st.Snapshot())
	})

	sessions.Post("/refresh", func(c *fiber.Ctx) error {
		id := c.Params("id")
		st, err := service.Session(id)
		if err != nil {
			return err
		}

		messages := []string{}
		if err := service.Refresh(c.UserContext(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return err
			}
			for _, e := range splitJoined(err) {
				messages = append(messages, e.Error())
			}
		}
		return c.JSON(fiber.Map{
			"state":  st.Snapshot(),
			"errors": messages,
		})
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...} with a
// status derived from the error chain.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownField):
		return fiber.StatusBadRequest
	// A FetchError may also wrap ErrInvalidInput.
	case errors.Is(err, dashboard.ErrFetchFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, dashboard.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func splitJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
