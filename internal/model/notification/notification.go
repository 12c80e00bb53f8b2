package notification

import (
	"time"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Kind classifies a notification for icon and color selection.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Notification is a single entry of the notification center.
type Notification struct {
	ID        int       `json:"id"`
	Kind      Kind      `json:"type"`
	Title     i18n.Text `json:"title"`
	Body      i18n.Text `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}

// Seed provides the notifications shown on first launch. Server-origin
// notifications are not implemented; the list only changes through user
// actions afterwards.
func Seed(now time.Time) []Notification {
	return []Notification{
		{
			ID:   1,
			Kind: Success,
			Title: i18n.Text{
				EN: "Weather Alert",
				ML: "കാലാവസ്ഥാ മുന്നറിയിപ്പ്",
			},
			Body: i18n.Text{
				EN: "Perfect weather conditions for planting rice this week",
				ML: "ഈ ആഴ്ച നെല്ല് നടാൻ അനുയോജ്യമായ കാലാവസ്ഥ",
			},
			Timestamp: now.Add(-30 * time.Minute),
		},
		{
			ID:   2,
			Kind: Info,
			Title: i18n.Text{
				EN: "New Scheme Available",
				ML: "പുതിയ പദ്ധതി ലഭ്യം",
			},
			Body: i18n.Text{
				EN: "PM-KISAN scheme benefits are now available for your region",
				ML: "PM-KISAN പദ്ധതിയുടെ ആനുകൂല്യങ്ങൾ നിങ്ങളുടെ പ്രദേശത്ത് ലഭ്യമാണ്",
			},
			Timestamp: now.Add(-2 * time.Hour),
			IsRead:    true,
		},
		{
			ID:   3,
			Kind: Warning,
			Title: i18n.Text{
				EN: "Pest Alert",
				ML: "കീട മുന്നറിയിപ്പ്",
			},
			Body: i18n.Text{
				EN: "Brown plant hopper detected in nearby farms. Take preventive measures",
				ML: "സമീപത്തെ കൃഷിയിടങ്ങളിൽ തവിട്ട് ചാടുന്ന പുഴു കണ്ടെത്തി. പ്രതിരോധ നടപടികൾ സ്വീകരിക്കുക",
			},
			Timestamp: now.Add(-6 * time.Hour),
		},
		{
			ID:   4,
			Kind: Info,
			Title: i18n.Text{
				EN: "Market Price Update",
				ML: "മാർക്കറ്റ് വില അപ്ഡേറ്റ്",
			},
			Body: i18n.Text{
				EN: "Rice prices increased by 5% in Kochi market",
				ML: "കൊച്ചി മാർക്കറ്റിൽ നെല്ലിന്റെ വില 5% വർദ്ധിച്ചു",
			},
			Timestamp: now.Add(-24 * time.Hour),
			IsRead:    true,
		},
		{
			ID:   5,
			Kind: Error,
			Title: i18n.Text{
				EN: "Activity Reminder",
				ML: "പ്രവർത്തന ഓർമ്മപ്പെടുത്തൽ",
			},
			Body: i18n.Text{
				EN: "You have 3 pending farming activities scheduled for today",
				ML: "ഇന്നത്തേക്ക് ഷെഡ്യൂൾ ചെയ്ത 3 കാർഷിക പ്രവർത്തനങ്ങൾ ബാക്കിയുണ്ട്",
			},
			Timestamp: now.Add(-48 * time.Hour),
		},
	}
}
