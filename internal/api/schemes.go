package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Scheme is a government support program with bilingual content.
type Scheme struct {
	ID                 int       `json:"id"`
	Name               i18n.Text `json:"name"`
	Description        i18n.Text `json:"description"`
	Tag                i18n.Text `json:"tag"`
	Eligibility        i18n.Text `json:"eligibility"`
	ApplicationProcess i18n.Text `json:"applicationProcess"`
	OfficialLink       string    `json:"officialLink"`
	Category           string    `json:"category"`

	// Recommendation is present only on recommendation responses.
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// Recommendation explains why a scheme was suggested.
type Recommendation struct {
	SchemeID int    `json:"scheme_id"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// FarmerProfile is the input to personalized scheme recommendation.
type FarmerProfile struct {
	FarmSize     string        `json:"farmSize"`
	Crops        []string      `json:"crops"`
	Location     string        `json:"location"`
	FarmingType  string        `json:"farmingType"`
	AnnualIncome string        `json:"annualIncome"`
	Language     i18n.Language `json:"language"`
}

// Eligibility is the verdict of an eligibility check.
type Eligibility struct {
	Eligible            bool     `json:"eligible"`
	Status              string   `json:"status"`
	Reasons             []string `json:"reasons"`
	MissingRequirements []string `json:"missing_requirements"`
	NextSteps           []string `json:"next_steps"`
}

// ListSchemes fetches the full scheme catalogue.
func (c *Client) ListSchemes(ctx context.Context) ([]Scheme, error) {
	var out struct {
		envelope
		Data []Scheme `json:"data"`
	}
	if err := c.getJSON(ctx, "/schemes", &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetScheme fetches one scheme by id.
func (c *Client) GetScheme(ctx context.Context, id int) (Scheme, error) {
	var out struct {
		envelope
		Data Scheme `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/schemes/%d", id), &out); err != nil {
		return Scheme{}, err
	}
	if err := out.check(); err != nil {
		return Scheme{}, err
	}
	return out.Data, nil
}

// DefaultRecommendations fetches the seasonal stock recommendations.
func (c *Client) DefaultRecommendations(ctx context.Context) ([]Scheme, string, error) {
	var out struct {
		envelope
		Data          []Scheme `json:"data"`
		Season        string   `json:"season"`
		GeneralAdvice string   `json:"general_advice"`
	}
	if err := c.getJSON(ctx, "/schemes/default-recommendations", &out); err != nil {
		return nil, "", err
	}
	if err := out.check(); err != nil {
		return nil, "", err
	}
	return out.Data, out.GeneralAdvice, nil
}

// RecommendSchemes requests personalized recommendations for a profile.
func (c *Client) RecommendSchemes(ctx context.Context, profile FarmerProfile) ([]Scheme, error) {
	var out struct {
		envelope
		Data []Scheme `json:"data"`
	}
	if err := c.postJSON(ctx, "/schemes/recommend", profile, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CheckEligibility evaluates a farmer against one scheme.
func (c *Client) CheckEligibility(ctx context.Context, schemeID int, details map[string]string, language i18n.Language) (Eligibility, error) {
	in := map[string]any{
		"scheme_id":      schemeID,
		"farmer_details": details,
		"language":       language,
	}
	var out struct {
		envelope
		Data struct {
			Scheme      Scheme      `json:"scheme"`
			Eligibility Eligibility `json:"eligibility"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/schemes/eligibility-check", in, &out); err != nil {
		return Eligibility{}, err
	}
	if err := out.check(); err != nil {
		return Eligibility{}, err
	}
	return out.Data.Eligibility, nil
}

// SearchSchemes finds schemes matching a free-text query and optional
// category.
func (c *Client) SearchSchemes(ctx context.Context, query, category string, language i18n.Language) ([]Scheme, error) {
	values := url.Values{}
	values.Set("q", query)
	if category != "" {
		values.Set("category", category)
	}
	values.Set("language", string(language))

	var out struct {
		envelope
		Data []Scheme `json:"data"`
	}
	if err := c.getJSON(ctx, "/schemes/search?"+values.Encode(), &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}
