package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pricescout/cache"
	"pricescout/history"
	"pricescout/search"
)

// Searcher runs the aggregation pipeline for a term and category.
type Searcher interface {
	Search(ctx context.Context, term, category string) ([]search.ScoredItem, error)
}

// Server is the HTTP front of the aggregation pipeline.
type Server struct {
	searcher Searcher
	cache    cache.Store
	history  *history.Store
	logger   *zap.Logger
	port     int
}

func NewServer(port int, searcher Searcher, store cache.Store, hist *history.Store, logger *zap.Logger) *Server {
	return &Server{
		searcher: searcher,
		cache:    store,
		history:  hist,
		logger:   logger,
		port:     port,
	}
}

// Start blocks serving the API.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", s.SearchHandler)
	mux.HandleFunc("/api/history", s.HistoryHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.logger.Info("starting API server", zap.Int("port", s.port))
	return http.ListenAndServe(":"+strconv.Itoa(s.port), s.withRequestLog(mux))
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("request_id", uuid.NewString()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}
