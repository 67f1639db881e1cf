package upstream

import (
	"context"
	"fmt"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

const alertsPath = "/alerts/rtm"

// alertPayload keeps only the title; the endpoint sends more fields.
type alertPayload struct {
	Title *string `json:"title" validate:"required"`
}

// Alerts implements dashboard.AlertSource.
func (c *Client) Alerts(ctx context.Context) ([]dashboard.Alert, error) {
	var payload []alertPayload
	if err := c.getJSON(ctx, alertsPath, &payload); err != nil {
		return nil, err
	}

	alerts := make([]dashboard.Alert, 0, len(payload))
	for i, a := range payload {
		if err := validatePayload(alertsPath, a); err != nil {
			return nil, fmt.Errorf("alert %d: %w", i, err)
		}
		alerts = append(alerts, dashboard.Alert{Title: *a.Title})
	}
	return alerts, nil
}

var _ dashboard.AlertSource = (*Client)(nil)
