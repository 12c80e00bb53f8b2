package api

import (
	"context"
	"fmt"
)

// Farmer is the profile record.
type Farmer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Farm describes one plot owned by a farmer.
type Farm struct {
	ID             int     `json:"id"`
	FarmerID       int     `json:"farmer_id"`
	Name           string  `json:"name,omitempty"`
	Size           float64 `json:"size"` // acres
	Location       string  `json:"location"`
	SoilType       string  `json:"soil_type,omitempty"`
	IrrigationType string  `json:"irrigation_type,omitempty"`
}

// GetFarmer fetches one farmer profile.
func (c *Client) GetFarmer(ctx context.Context, id int) (Farmer, error) {
	var out Farmer
	if err := c.getJSON(ctx, fmt.Sprintf("/farmer/%d", id), &out); err != nil {
		return Farmer{}, err
	}
	return out, nil
}

// ListFarmers fetches all farmer profiles.
func (c *Client) ListFarmers(ctx context.Context) ([]Farmer, error) {
	var out []Farmer
	if err := c.getJSON(ctx, "/farmer", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFarmer registers a new farmer.
func (c *Client) CreateFarmer(ctx context.Context, in Farmer) error {
	return c.postJSON(ctx, "/farmer", in, nil)
}

// GetFarm fetches one farm.
func (c *Client) GetFarm(ctx context.Context, id int) (Farm, error) {
	var out Farm
	if err := c.getJSON(ctx, fmt.Sprintf("/farm/%d", id), &out); err != nil {
		return Farm{}, err
	}
	return out, nil
}

// ListFarms fetches all farms.
func (c *Client) ListFarms(ctx context.Context) ([]Farm, error) {
	var out []Farm
	if err := c.getJSON(ctx, "/farm", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFarm registers a new farm for a farmer.
func (c *Client) CreateFarm(ctx context.Context, in Farm) error {
	return c.postJSON(ctx, "/farm", in, nil)
}
