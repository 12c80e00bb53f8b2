package mockapi

import (
	"strings"
	"time"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Canned fixtures only. The stub never computes advisory, recommendation or
// weather content; the hosted backend owns that logic.

func seedSchemes() []api.Scheme {
	return []api.Scheme{
		{
			ID:   1,
			Name: i18n.Text{EN: "PM-KISAN Samman Nidhi", ML: "പിഎം-കിസാൻ സമ്മാൻ നിധി"},
			Description: i18n.Text{
				EN: "Direct income support to all landholding farmers' families. ₹6,000 per year in three installments.",
				ML: "എല്ലാ ഭൂവുടമസ്ഥ കർഷക കുടുംബങ്ങൾക്കും നേരിട്ടുള്ള വരുമാന പിന്തുണ. മൂന്ന് ഗഡുകളായി വർഷത്തിൽ ₹6,000.",
			},
			Tag: i18n.Text{EN: "Income Support", ML: "വരുമാന പിന്തുണ"},
			Eligibility: i18n.Text{
				EN: "All landholding farmers (except those in excluded categories)",
				ML: "എല്ലാ ഭൂവുടമസ്ഥ കർഷകർ (ഒഴിവാക്കപ്പെട്ട വിഭാഗങ്ങളിലുള്ളവർ ഒഴികെ)",
			},
			ApplicationProcess: i18n.Text{
				EN: "Apply online at pmkisan.gov.in or visit nearest Common Service Center",
				ML: "pmkisan.gov.in-ൽ ഓൺലൈനായി അപേക്ഷിക്കുക അല്ലെങ്കിൽ അടുത്തുള്ള കോമൺ സർവീസ് സെന്റർ സന്ദർശിക്കുക",
			},
			OfficialLink: "https://pmkisan.gov.in",
			Category:     "income_support",
		},
		{
			ID:   2,
			Name: i18n.Text{EN: "Pradhan Mantri Fasal Bima Yojana", ML: "പ്രധാനമന്ത്രി ഫസൽ ബീമ യോജന"},
			Description: i18n.Text{
				EN: "Crop insurance scheme providing financial support to farmers suffering crop loss/damage.",
				ML: "വിള നഷ്ടം/കേടുപാടുകൾ അനുഭവിക്കുന്ന കർഷകർക്ക് സാമ്പത്തിക പിന്തുണ നൽകുന്ന വിള ഇൻഷുറൻസ് പദ്ധതി.",
			},
			Tag: i18n.Text{EN: "Insurance", ML: "ഇൻഷുറൻസ്"},
			Eligibility: i18n.Text{
				EN: "All farmers growing notified crops in notified areas",
				ML: "അറിയിപ്പ് പ്രദേശങ്ങളിൽ അറിയിപ്പ് വിളകൾ കൃഷി ചെയ്യുന്ന എല്ലാ കർഷകരും",
			},
			ApplicationProcess: i18n.Text{
				EN: "Apply through banks, insurance companies, or online portal",
				ML: "ബാങ്കുകൾ, ഇൻഷുറൻസ് കമ്പനികൾ അല്ലെങ്കിൽ ഓൺലൈൻ പോർട്ടൽ വഴി അപേക്ഷിക്കുക",
			},
			OfficialLink: "https://pmfby.gov.in",
			Category:     "insurance",
		},
		{
			ID:   3,
			Name: i18n.Text{EN: "Kisan Credit Card", ML: "കിസാൻ ക്രെഡിറ്റ് കാർഡ്"},
			Description: i18n.Text{
				EN: "Short-term credit for cultivation expenses at subsidised interest rates.",
				ML: "സബ്‌സിഡി പലിശ നിരക്കിൽ കൃഷി ചെലവുകൾക്കുള്ള ഹ്രസ്വകാല വായ്പ.",
			},
			Tag: i18n.Text{EN: "Credit", ML: "വായ്പ"},
			Eligibility: i18n.Text{
				EN: "Farmers, sharecroppers and tenant farmers",
				ML: "കർഷകർ, പാട്ടക്കർഷകർ, വാടക കർഷകർ",
			},
			ApplicationProcess: i18n.Text{
				EN: "Apply at any commercial bank branch with land records",
				ML: "ഭൂമി രേഖകളുമായി ഏതെങ്കിലും വാണിജ്യ ബാങ്ക് ശാഖയിൽ അപേക്ഷിക്കുക",
			},
			OfficialLink: "https://www.myscheme.gov.in/schemes/kcc",
			Category:     "credit",
		},
	}
}

func seedMarketPrices() []api.MarketPrice {
	return []api.MarketPrice{
		{Crop: "Rice", Price: 2850, Unit: "quintal", Change: 5.0, Market: "Kochi"},
		{Crop: "Coconut", Price: 34, Unit: "piece", Change: -1.2, Market: "Thrissur"},
		{Crop: "Rubber", Price: 182, Unit: "kg", Change: 2.4, Market: "Kottayam"},
		{Crop: "Black Pepper", Price: 645, Unit: "kg", Change: 0.8, Market: "Idukki"},
	}
}

func seedDashboard(location string, now time.Time) api.Dashboard {
	if location == "" {
		location = "Kochi"
	}
	return api.Dashboard{
		Weather: &api.Weather{
			Temperature: 28,
			Description: "Partly Cloudy",
			Humidity:    74,
			WindSpeed:   3.6,
			Icon:        "02d",
			FeelsLike:   31,
			Location:    location,
		},
		Advisory: "Good week for transplanting rice seedlings. Watch for brown plant hopper after the rains.",
		Stats: map[string]string{
			"active_farms":     "2",
			"pending_tasks":    "3",
			"total_activities": "12",
		},
		MarketPrices:       seedMarketPrices(),
		SeasonalActivities: []string{"Transplanting", "Fertilizer application", "Pest monitoring"},
		LastUpdated:        now.Format(time.RFC3339),
	}
}

func seedForecast(city string) api.Forecast {
	return api.Forecast{
		Location: city,
		Days: []api.ForecastDay{
			{Date: "2025-06-02", High: 31, Low: 24, Description: "Light rain", Icon: "10d", RainChance: 60},
			{Date: "2025-06-03", High: 30, Low: 24, Description: "Cloudy", Icon: "04d", RainChance: 35},
			{Date: "2025-06-04", High: 32, Low: 25, Description: "Sunny", Icon: "01d", RainChance: 10},
		},
		Insights: "Rain early in the week favours paddy fields; delay pesticide spraying until Thursday.",
	}
}

func seedActivities() []api.Activity {
	return []api.Activity{
		{
			ID:          1,
			Name:        i18n.Text{EN: "Planting", ML: "നടൽ"},
			Date:        "01/06/2025",
			Status:      "completed",
			Description: i18n.Text{EN: "Transplanted rice seedlings in the east paddy", ML: "കിഴക്കേ പാടത്ത് നെൽ തൈകൾ നട്ടു"},
			FarmName:    "East Paddy",
			CropName:    "Rice",
			Cost:        1200,
			LaborHours:  6,
		},
		{
			ID:          2,
			Name:        i18n.Text{EN: "Watering", ML: "നീർ വിളകൽ"},
			Date:        "03/06/2025",
			Status:      "pending",
			Description: i18n.Text{EN: "Irrigation activity", ML: "ജലസേചന പ്രവർത്തനം"},
			FarmName:    "East Paddy",
			CropName:    "Rice",
		},
	}
}

// assistantReply picks a canned reply by keyword, mirroring what the real
// assistant answers for common farming questions.
func assistantReply(message string, language i18n.Language) string {
	replies := map[string]i18n.Text{
		"weather": {
			EN: "The current weather is perfect for outdoor activities. Temperature is 28°C with clear skies.",
			ML: "നിലവിലെ കാലാവസ്ഥ പുറത്തുള്ള പ്രവർത്തനങ്ങൾക്ക് അനുയോജ്യമാണ്. താപനില 28°C ആണ്, ആകാശം തെളിഞ്ഞിരിക്കുന്നു.",
		},
		"crop": {
			EN: "For this season, I recommend focusing on rice and wheat cultivation based on your region.",
			ML: "ഈ സീസണിൽ, നിങ്ങളുടെ പ്രദേശത്തെ അടിസ്ഥാനമാക്കി നെല്ലും ഗോതമ്പും കൃഷിയിൽ ശ്രദ്ധ കേന്ദ്രീകരിക്കാൻ ഞാൻ ശുപാർശ ചെയ്യുന്നു.",
		},
		"activity": {
			EN: "I see you've been active with sowing and watering. Remember to log your pest control activities for better tracking.",
			ML: "നിങ്ങൾ വിതയലും നീരൊഴിക്കലും സജീവമായി നടത്തുന്നത് ഞാൻ കാണുന്നു. മികച്ച ട്രാക്കിംഗിനായി കീട നിയന്ത്രണ പ്രവർത്തനങ്ങൾ രേഖപ്പെടുത്താൻ ഓർക്കുക.",
		},
		"default": {
			EN: "That's interesting! Can you tell me more about your specific farming needs?",
			ML: "അത് രസകരമാണ്! നിങ്ങളുടെ നിർദ്ദിഷ്ട കാർഷിക ആവശ്യങ്ങളെക്കുറിച്ച് കൂടുതൽ പറയാമോ?",
		},
	}

	key := "default"
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "weather"):
		key = "weather"
	case strings.Contains(lowered, "crop"), strings.Contains(lowered, "rice"), strings.Contains(lowered, "wheat"):
		key = "crop"
	case strings.Contains(lowered, "activity"), strings.Contains(lowered, "log"):
		key = "activity"
	}

	pair := replies[key]
	if language == i18n.Malayalam {
		return pair.ML
	}
	return pair.EN
}

// fakeAudio is a minimal valid WAV payload (44-byte header, silence) used
// by the stub TTS endpoint.
func fakeAudio() []byte {
	header := []byte{
		'R', 'I', 'F', 'F', 0x24, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		0x80, 0x3e, 0x00, 0x00, 0x00, 0x7d, 0x00, 0x00, 0x02, 0x00, 0x10, 0x00,
		'd', 'a', 't', 'a', 0x00, 0x00, 0x00, 0x00,
	}
	return header
}
