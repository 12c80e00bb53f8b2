package api

import (
	"context"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// KnowledgeArticle is generated advisory content for one topic.
type KnowledgeArticle struct {
	Content    string `json:"content"`
	CategoryID int    `json:"category_id"`
	Timestamp  string `json:"timestamp"`
}

// WeatherAnalysis is the farming-oriented weather digest of the knowledge
// base.
type WeatherAnalysis struct {
	Analysis    string `json:"analysis"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
}

// KnowledgeContent generates an article for a prompt within a category.
func (c *Client) KnowledgeContent(ctx context.Context, prompt string, categoryID int, language i18n.Language) (KnowledgeArticle, error) {
	in := map[string]any{
		"prompt":      prompt,
		"category_id": categoryID,
		"language":    language,
	}
	var out struct {
		envelope
		KnowledgeArticle
	}
	if err := c.postJSON(ctx, "/knowledge/content", in, &out); err != nil {
		return KnowledgeArticle{}, err
	}
	if err := out.check(); err != nil {
		return KnowledgeArticle{}, err
	}
	return out.KnowledgeArticle, nil
}

// KnowledgeMarketPrices fetches the knowledge-base market board.
func (c *Client) KnowledgeMarketPrices(ctx context.Context) ([]MarketPrice, error) {
	var out struct {
		envelope
		Data []MarketPrice `json:"data"`
	}
	if err := c.getJSON(ctx, "/knowledge/market-prices", &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// KnowledgeWeatherAnalysis fetches the weather digest.
func (c *Client) KnowledgeWeatherAnalysis(ctx context.Context) (WeatherAnalysis, error) {
	var out struct {
		envelope
		Data WeatherAnalysis `json:"data"`
	}
	if err := c.getJSON(ctx, "/knowledge/weather-analysis", &out); err != nil {
		return WeatherAnalysis{}, err
	}
	if err := out.check(); err != nil {
		return WeatherAnalysis{}, err
	}
	return out.Data, nil
}
