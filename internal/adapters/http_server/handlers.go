package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_qa/internal/app"
	"hotel_qa/internal/domain"
)

type Handlers struct {
	Agent  *app.Agent
	Search *app.SearchService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/chat", h.chat)
	s.mux.Get("/v1/hotels/search", h.searchHotels)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with session_id and message")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeProblem(w, http.StatusBadRequest, "Empty message", "message must not be empty")
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	reply, err := h.Agent.Turn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		log.Error().Err(err).Str("session", req.SessionID).Msg("chat turn failed")
		writeProblem(w, http.StatusBadGateway, "Model unavailable", "the language model could not be reached")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(chatResponse{SessionID: req.SessionID, Reply: reply}); err != nil {
		log.Error().Err(err).Msg("failed to write chat response")
	}
}

// searchHotels is the tool surface without the model in front of it. Bad
// parameter values are coerced or dropped, same as when the model calls.
func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := domain.QueryParams{
		City:    q.Get("city"),
		Country: q.Get("country"),
		SortBy:  q.Get("sort_by"),
	}
	p.MinStarRating = parseFloat(q.Get("min_star_rating"))
	p.MinCleanliness = parseFloat(q.Get("min_cleanliness"))
	p.MinComfort = parseFloat(q.Get("min_comfort"))
	p.MinFacilities = parseFloat(q.Get("min_facilities"))
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 1 {
				n = 1
			}
			p.NumResults = n
		}
	}

	out, err := h.Search.Search(r.Context(), p)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Dataset unavailable", "the hotel dataset could not be loaded")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Error().Err(err).Msg("failed to write search response")
	}
}

func parseFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
