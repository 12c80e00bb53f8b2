package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

type dashboardMsg struct {
	dashboard api.Dashboard
	err       error
}

type forecastMsg struct {
	forecast api.Forecast
	err      error
}

type homeModel struct {
	client   *api.Client
	location string

	dashboard *api.Dashboard
	forecast  *api.Forecast
	err       error
	loading   bool
}

func newHomeModel(client *api.Client, location string) homeModel {
	return homeModel{client: client, location: location}
}

func (m homeModel) fetch() tea.Cmd {
	location := m.location
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			d, err := client.Dashboard(context.Background(), location)
			return dashboardMsg{dashboard: d, err: err}
		},
		func() tea.Msg {
			f, err := client.WeatherForecast(context.Background(), location)
			return forecastMsg{forecast: f, err: err}
		},
	)
}

func (m homeModel) update(msg tea.Msg, keys KeyMap) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.dashboard = &msg.dashboard
		return m, nil

	case forecastMsg:
		if msg.err == nil {
			m.forecast = &msg.forecast
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			m.loading = true
			return m, m.fetch()
		}
	}
	return m, nil
}

var homeTitle = i18n.Text{EN: "Good day, farmer!", ML: "നല്ല ദിവസം, കർഷകാ!"}

func (m homeModel) view(theme Theme, localizer *i18n.Localizer, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(localizer.T("home.title", homeTitle)) + "\n\n")

	if m.err != nil {
		b.WriteString(theme.Banner.Render("Could not load dashboard: "+m.err.Error()) + "\n")
		b.WriteString(theme.Help.Render("r: retry") + "\n")
		return b.String()
	}
	if m.dashboard == nil {
		return b.String() + theme.Meta.Render("loading…")
	}

	d := m.dashboard
	if d.Weather != nil {
		w := d.Weather
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s  %d°C  %s", w.Location, w.Temperature, w.Description)) + "\n")
		b.WriteString(theme.Label.Render(fmt.Sprintf("humidity %d%%  ·  wind %.1f m/s  ·  feels like %d°C", w.Humidity, w.WindSpeed, w.FeelsLike)) + "\n\n")
	}
	if d.Advisory != "" {
		b.WriteString(theme.Positive.Render("Advisory: ") + theme.Value.Render(d.Advisory) + "\n\n")
	}

	if len(d.MarketPrices) > 0 {
		b.WriteString(theme.Subtitle.Render("Market prices") + "\n")
		for _, p := range d.MarketPrices {
			change := theme.Positive.Render(fmt.Sprintf("+%.1f%%", p.Change))
			if p.Change < 0 {
				change = theme.Negative.Render(fmt.Sprintf("%.1f%%", p.Change))
			}
			b.WriteString(fmt.Sprintf("  %-14s ₹%-8.0f /%-8s %s\n", p.Crop, p.Price, p.Unit, change))
		}
		b.WriteString("\n")
	}

	if m.forecast != nil && len(m.forecast.Days) > 0 {
		b.WriteString(theme.Subtitle.Render("Forecast") + "\n")
		for _, day := range m.forecast.Days {
			b.WriteString(fmt.Sprintf("  %s  %d°/%d°  %-14s rain %.0f%%\n", day.Date, day.High, day.Low, day.Description, day.RainChance))
		}
		if m.forecast.Insights != "" {
			b.WriteString(theme.Meta.Render(m.forecast.Insights) + "\n")
		}
	}

	if len(d.SeasonalActivities) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("This season") + "\n  " + strings.Join(d.SeasonalActivities, " · ") + "\n")
	}
	return b.String()
}
