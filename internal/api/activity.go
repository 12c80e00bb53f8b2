package api

import (
	"context"
	"fmt"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Activity is a farm log entry as returned by the backend, with bilingual
// display fields already resolved server-side.
type Activity struct {
	ID          int       `json:"id"`
	Name        i18n.Text `json:"name"`
	Date        string    `json:"date"` // DD/MM/YYYY
	Status      string    `json:"status"`
	Description i18n.Text `json:"description"`
	FarmName    string    `json:"farm_name"`
	CropName    string    `json:"crop_name,omitempty"`
	Cost        float64   `json:"cost"`
	LaborHours  float64   `json:"labor_hours"`
}

// NewActivity is the payload for creating or updating a log entry.
type NewActivity struct {
	FarmID       int     `json:"farm_id"`
	ActivityType string  `json:"activity_type"`
	Date         string  `json:"date,omitempty"` // DD/MM/YYYY
	Details      string  `json:"details,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	LaborHours   float64 `json:"labor_hours,omitempty"`
	CropID       int     `json:"crop_id,omitempty"`
	Status       string  `json:"status,omitempty"`
}

// ListActivities fetches all logged activities across farms.
func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var out struct {
		envelope
		Data []Activity `json:"data"`
	}
	if err := c.getJSON(ctx, "/activity", &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListFarmActivities fetches the activities of one farm.
func (c *Client) ListFarmActivities(ctx context.Context, farmID int) ([]Activity, error) {
	var out struct {
		envelope
		Data []Activity `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/activity/farm/%d", farmID), &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateActivity logs a new activity and returns its id.
func (c *Client) CreateActivity(ctx context.Context, in NewActivity) (int, error) {
	var out struct {
		envelope
		ID int `json:"id"`
	}
	if err := c.postJSON(ctx, "/activity", in, &out); err != nil {
		return 0, err
	}
	if err := out.check(); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateActivity modifies an existing activity.
func (c *Client) UpdateActivity(ctx context.Context, id int, in NewActivity) error {
	var out envelope
	if err := c.putJSON(ctx, fmt.Sprintf("/activity/%d", id), in, &out); err != nil {
		return err
	}
	return out.check()
}

// DeleteActivity removes an activity.
func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/activity/%d", id))
}
