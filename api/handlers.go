package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pricescout/cache"
	"pricescout/history"
	"pricescout/search"
)

// SearchRequest is the wire contract of POST /api/search.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SearchHandler validates input, consults the cache and invokes the
// aggregation pipeline on a miss. Per-source failure detail never
// reaches the response; the client only sees the aggregate outcome.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.SearchTerm) == "" || strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "search term and category are required")
		return
	}

	ctx := r.Context()
	key := cache.Key(req.Category, req.SearchTerm)
	if items, ok := s.cache.Get(ctx, key); ok {
		s.logger.Info("returning cached results", zap.String("key", key))
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := s.searcher.Search(ctx, req.SearchTerm, req.Category)
	switch {
	case err == nil:
	case errors.Is(err, search.ErrEmptyTerm), errors.Is(err, search.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, search.ErrNoResults):
		writeError(w, http.StatusNotFound, "could not find the product on any platform")
		return
	default:
		s.logger.Error("search failed", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an internal server error occurred")
		return
	}

	if err := s.cache.Set(ctx, key, items); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	s.recordHistory(items)

	writeJSON(w, http.StatusOK, items)
}

// HistoryHandler returns the recorded price points and trend for a
// product link.
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.history == nil {
		writeError(w, http.StatusNotFound, "price history is not enabled")
		return
	}

	link := r.URL.Query().Get("link")
	if link == "" {
		writeError(w, http.StatusBadRequest, "missing link parameter")
		return
	}

	points, err := s.history.Points(link)
	if err != nil {
		s.logger.Error("history read failed", zap.String("link", link), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an internal server error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"link":    link,
		"history": points,
		"trend":   history.TrendOf(points),
	})
}

// recordHistory stores the observed prices of freshly aggregated
// items. Best effort only; failures are log noise, not errors.
func (s *Server) recordHistory(items []search.ScoredItem) {
	if s.history == nil {
		return
	}
	now := time.Now()
	for _, item := range items {
		if err := s.history.Record(item.Link, item.NormalizedPrice, now); err != nil {
			s.logger.Warn("history record failed",
				zap.String("link", item.Link),
				zap.Error(err))
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
