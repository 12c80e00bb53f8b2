// Package mockapi is a canned-response double of the Krishi Sakhi backend
// REST surface, used by package tests and runnable standalone for offline
// development. It serves fixtures only; advisory, recommendation and
// weather logic belong to the hosted backend and are not reproduced here.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/pkg/httpx"
)

// Server is the in-memory stub backend.
type Server struct {
	mu         sync.Mutex
	activities []api.Activity
	farmers    []api.Farmer
	farms      []api.Farm
	nextID     int
	now        func() time.Time
}

// NewServer returns a stub preloaded with fixtures.
func NewServer() *Server {
	return &Server{
		activities: seedActivities(),
		farmers:    []api.Farmer{{ID: 1, Name: "Ravi Kumar", PhoneNumber: "9447000001"}},
		farms:      []api.Farm{{ID: 1, FarmerID: 1, Name: "East Paddy", Size: 2.5, Location: "Kochi"}},
		nextID:     100,
		now:        time.Now,
	}
}

// Router mounts the full stub REST surface under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/chat/image", s.handleChatImage)
		r.Post("/translate", s.handleTranslate)
		r.Post("/tts", s.handleTTS)

		r.Get("/activity", s.handleListActivities)
		r.Post("/activity", s.handleCreateActivity)
		r.Put("/activity/{id}", s.handleUpdateActivity)
		r.Delete("/activity/{id}", s.handleDeleteActivity)
		r.Get("/activity/farm/{farmID}", s.handleListFarmActivities)

		r.Get("/farmer", s.handleListFarmers)
		r.Get("/farmer/{id}", s.handleGetFarmer)
		r.Post("/farmer", s.handleCreateFarmer)
		r.Get("/farm", s.handleListFarms)
		r.Get("/farm/{id}", s.handleGetFarm)
		r.Post("/farm", s.handleCreateFarm)

		r.Get("/home/dashboard", s.handleDashboard)
		r.Get("/home/weather-forecast/{city}", s.handleForecast)

		r.Get("/schemes", s.handleListSchemes)
		r.Get("/schemes/default-recommendations", s.handleDefaultRecommendations)
		r.Get("/schemes/search", s.handleSearchSchemes)
		r.Post("/schemes/recommend", s.handleRecommendSchemes)
		r.Post("/schemes/eligibility-check", s.handleEligibility)
		r.Get("/schemes/{id}", s.handleGetScheme)

		r.Post("/knowledge/content", s.handleKnowledgeContent)
		r.Get("/knowledge/market-prices", s.handleKnowledgeMarketPrices)
		r.Get("/knowledge/weather-analysis", s.handleKnowledgeWeatherAnalysis)
	})

	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == "" {
		httpx.RespondError(w, http.StatusBadRequest, "Please provide a message")
		return
	}
	lang := i18n.Detect(payload.Message)
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"response": assistantReply(payload.Message, lang),
	})
}

func (s *Server) handleChatImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "No image provided")
		return
	}
	file.Close()

	message := r.FormValue("message")
	reply := "I can see your crop photo. The leaves look healthy; keep monitoring for discoloration."
	if message != "" {
		reply = assistantReply(message, i18n.Detect(message))
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Text == "" {
		httpx.RespondError(w, http.StatusBadRequest, "Text is required")
		return
	}
	// Deterministic tagged echo; good enough for client development.
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"translatedText": fmt.Sprintf("[%s] %s", payload.To, payload.Text),
	})
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Text == "" {
		httpx.RespondError(w, http.StatusBadRequest, "No text provided")
		return
	}
	httpx.RespondAudio(w, "audio/wav", fakeAudio())
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	httpx.RespondEnvelope(w, http.StatusOK, s.activities)
}

func (s *Server) handleListFarmActivities(w http.ResponseWriter, r *http.Request) {
	// Fixtures carry no farm id; the stub returns everything.
	s.handleListActivities(w, r)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var in api.NewActivity
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.FarmID == 0 || in.ActivityType == "" {
		httpx.RespondFailure(w, http.StatusBadRequest, "farm_id and activity_type are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	status := in.Status
	if status == "" {
		status = "pending"
	}
	s.activities = append(s.activities, api.Activity{
		ID:          s.nextID,
		Name:        i18n.Text{EN: in.ActivityType, ML: in.ActivityType},
		Date:        in.Date,
		Status:      status,
		Description: i18n.Text{EN: in.Details, ML: in.Details},
		Cost:        in.Cost,
		LaborHours:  in.LaborHours,
	})
	httpx.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Activity created successfully",
		"id":      s.nextID,
	})
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondFailure(w, http.StatusBadRequest, "invalid activity id")
		return
	}
	var in api.NewActivity
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			if in.Status != "" {
				s.activities[i].Status = in.Status
			}
			if in.Details != "" {
				s.activities[i].Description = i18n.Text{EN: in.Details, ML: in.Details}
			}
			httpx.RespondJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "Activity updated successfully",
			})
			return
		}
	}
	httpx.RespondFailure(w, http.StatusNotFound, "Activity not found")
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondFailure(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			httpx.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	httpx.RespondFailure(w, http.StatusNotFound, "Activity not found")
}

func (s *Server) handleListFarmers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	httpx.RespondJSON(w, http.StatusOK, s.farmers)
}

func (s *Server) handleGetFarmer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.farmers {
		if f.ID == id {
			httpx.RespondJSON(w, http.StatusOK, f)
			return
		}
	}
	httpx.RespondError(w, http.StatusNotFound, "farmer not found")
}

func (s *Server) handleCreateFarmer(w http.ResponseWriter, r *http.Request) {
	var in api.Farmer
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.PhoneNumber == "" {
		httpx.RespondError(w, http.StatusBadRequest, "name and phone_number are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	in.ID = s.nextID
	s.farmers = append(s.farmers, in)
	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Farmer created successfully"})
}

func (s *Server) handleListFarms(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	httpx.RespondJSON(w, http.StatusOK, s.farms)
}

func (s *Server) handleGetFarm(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.farms {
		if f.ID == id {
			httpx.RespondJSON(w, http.StatusOK, f)
			return
		}
	}
	httpx.RespondError(w, http.StatusNotFound, "farm not found")
}

func (s *Server) handleCreateFarm(w http.ResponseWriter, r *http.Request) {
	var in api.Farm
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.FarmerID == 0 || in.Location == "" {
		httpx.RespondError(w, http.StatusBadRequest, "farmer_id and location are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	in.ID = s.nextID
	s.farms = append(s.farms, in)
	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Farm created successfully"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	httpx.RespondEnvelope(w, http.StatusOK, seedDashboard(location, s.now()))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	httpx.RespondEnvelope(w, http.StatusOK, seedForecast(chi.URLParam(r, "city")))
}

func (s *Server) handleListSchemes(w http.ResponseWriter, _ *http.Request) {
	schemes := seedSchemes()
	httpx.RespondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"data":         schemes,
		"total":        len(schemes),
		"last_fetched": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	for _, scheme := range seedSchemes() {
		if scheme.ID == id {
			httpx.RespondEnvelope(w, http.StatusOK, scheme)
			return
		}
	}
	httpx.RespondFailure(w, http.StatusNotFound, "Scheme not found")
}

func (s *Server) handleDefaultRecommendations(w http.ResponseWriter, _ *http.Request) {
	schemes := seedSchemes()[:2]
	for i := range schemes {
		schemes[i].Recommendation = &api.Recommendation{
			SchemeID: schemes[i].ID,
			Priority: "High",
			Reason:   "Applies to most smallholder farmers in Kerala",
		}
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"data":           schemes,
		"season":         "Monsoon",
		"general_advice": "Enroll before the sowing window closes.",
	})
}

func (s *Server) handleSearchSchemes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var matched []api.Scheme
	for _, scheme := range seedSchemes() {
		if category != "" && scheme.Category != category {
			continue
		}
		if query == "" || containsFold(scheme.Name.EN, query) || containsFold(scheme.Description.EN, query) {
			matched = append(matched, scheme)
		}
	}
	httpx.RespondEnvelope(w, http.StatusOK, matched)
}

func (s *Server) handleRecommendSchemes(w http.ResponseWriter, r *http.Request) {
	var in api.FarmerProfile
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	schemes := seedSchemes()[:2]
	for i := range schemes {
		schemes[i].Recommendation = &api.Recommendation{
			SchemeID: schemes[i].ID,
			Priority: "Medium",
			Reason:   "Matched on farm size and location",
		}
	}
	httpx.RespondEnvelope(w, http.StatusOK, schemes)
}

func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SchemeID int `json:"scheme_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var scheme *api.Scheme
	for _, sc := range seedSchemes() {
		if sc.ID == in.SchemeID {
			scheme = &sc
			break
		}
	}
	if scheme == nil {
		httpx.RespondFailure(w, http.StatusNotFound, "Scheme not found")
		return
	}

	httpx.RespondEnvelope(w, http.StatusOK, map[string]any{
		"scheme": scheme,
		"eligibility": api.Eligibility{
			Eligible:  true,
			Status:    "Eligible",
			Reasons:   []string{"Based on provided information"},
			NextSteps: []string{scheme.ApplicationProcess.EN},
		},
	})
}

func (s *Server) handleKnowledgeContent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Prompt     string `json:"prompt"`
		CategoryID int    `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Prompt == "" {
		httpx.RespondFailure(w, http.StatusBadRequest, "Prompt is required")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"content":     "## Crop Calendar\n\nJune is transplanting month for paddy in Kerala. Prepare nursery beds 25 days ahead and keep 5cm standing water after transplanting.",
		"category_id": in.CategoryID,
		"timestamp":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleKnowledgeMarketPrices(w http.ResponseWriter, _ *http.Request) {
	httpx.RespondEnvelope(w, http.StatusOK, seedMarketPrices())
}

func (s *Server) handleKnowledgeWeatherAnalysis(w http.ResponseWriter, _ *http.Request) {
	httpx.RespondEnvelope(w, http.StatusOK, api.WeatherAnalysis{
		Analysis:    "High humidity this week raises fungal risk in banana and vegetable plots; ensure drainage.",
		Temperature: 28,
		Description: "Partly Cloudy",
		Humidity:    74,
	})
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
