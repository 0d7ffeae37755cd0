package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/gully/internal/cache"
	"github.com/fortuna/gully/internal/service"
	"github.com/fortuna/gully/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db        *store.Database
	cache     *cache.RedisCache
	players   *service.PlayerService
	analytics *service.AnalyticsService
}

// NewHandler creates a new handler. cache may be nil, in which case every
// request recomputes from the store.
func NewHandler(db *store.Database, rc *cache.RedisCache, players *service.PlayerService, analytics *service.AnalyticsService) *Handler {
	return &Handler{
		db:        db,
		cache:     rc,
		players:   players,
		analytics: analytics,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "healthy",
		"service": "gully",
	}
	if err := h.db.DB().PingContext(r.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
		}
	}
	respondJSON(w, http.StatusOK, status)
}

// GetPlayers returns career summaries for every player
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		var cached []service.PlayerSummary
		if hit, err := h.cache.GetJSON(r.Context(), cache.KeyPlayerSummaries, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		} else if err != nil {
			log.Printf("cache read failed for %s: %v", cache.KeyPlayerSummaries, err)
		}
	}

	summaries, err := h.players.GetPlayerSummaries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player summaries", err)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetJSON(r.Context(), cache.KeyPlayerSummaries, summaries); err != nil {
			log.Printf("cache write failed for %s: %v", cache.KeyPlayerSummaries, err)
		}
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetPlayer returns one player's summary by display name
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	summary, err := h.players.GetPlayer(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetMatchResults returns per-match outcomes, newest first
func (h *Handler) GetMatchResults(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		var cached []service.MatchResultSummary
		if hit, err := h.cache.GetJSON(r.Context(), cache.KeyMatchResults, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	results, err := h.analytics.GetMatchResults(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch match results", err)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetJSON(r.Context(), cache.KeyMatchResults, results); err != nil {
			log.Printf("cache write failed for %s: %v", cache.KeyMatchResults, err)
		}
	}
	respondJSON(w, http.StatusOK, results)
}

// GetTeamAnalytics returns team win rates split by ground, toss and match type
func (h *Handler) GetTeamAnalytics(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		var cached service.TeamAnalytics
		if hit, err := h.cache.GetJSON(r.Context(), cache.KeyTeamAnalytics, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	analytics, err := h.analytics.GetTeamAnalytics(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team analytics", err)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetJSON(r.Context(), cache.KeyTeamAnalytics, analytics); err != nil {
			log.Printf("cache write failed for %s: %v", cache.KeyTeamAnalytics, err)
		}
	}
	respondJSON(w, http.StatusOK, analytics)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
