// Package api provides the HTTP REST API server for hknewsdesk.
//
// It exposes endpoints for aggregated ticker news, market-wide headlines,
// per-ticker filtering, price history, and credential status.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lokwah/hknewsdesk/internal/config"
	"github.com/lokwah/hknewsdesk/internal/market"
	"github.com/lokwah/hknewsdesk/internal/news"
	"github.com/lokwah/hknewsdesk/pkg/utils"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	agg    *news.Aggregator
	mkt    *market.Client
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) *Server {
	mkt := market.NewClient()

	srv := &Server{
		cfg: cfg,
		agg: news.NewAggregator(cfg, mkt),
		mkt: mkt,
	}

	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health (also available at /health)
		r.Get("/health", s.handleHealth)

		// Aggregated news
		r.Get("/news", s.handleNews)
		r.Get("/news/{ticker}", s.handleTickerNews)

		// Market-wide headlines
		r.Get("/headlines", s.handleHeadlines)

		// Market data
		r.Get("/quote/{ticker}", s.handleQuote)
		r.Get("/history/{ticker}", s.handleHistory)

		// Status (credential + pipeline config)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":        "ok",
			"version":       "dev",
			"market_status": utils.MarketStatus(),
			"time_hkt":      utils.FormatDateTimeHKT(utils.NowHKT()),
		},
	})
}

// handleNews serves GET /api/v1/news?tickers=0700.HK,9988.HK.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	tickers := splitTickers(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		writeError(w, http.StatusBadRequest, "tickers query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	articles, err := s.agg.GetAllNews(ctx, tickers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"tickers":  tickers,
			"count":    len(articles),
			"articles": articles,
		},
	})
}

// handleTickerNews serves GET /api/v1/news/{ticker}: the aggregated pool for
// that ticker, filtered down to articles that mention it.
func (s *Server) handleTickerNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	pool, err := s.agg.GetAllNews(ctx, []string{ticker})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	articles := news.TickerNews(ticker, pool)

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"ticker":   ticker,
			"count":    len(articles),
			"articles": articles,
		},
	})
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	articles, err := s.agg.GetHeadlines(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"count":    len(articles),
			"articles": articles,
		},
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	quote, err := s.mkt.GetQuote(ctx, strings.ToUpper(ticker))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    quote,
	})
}

// handleHistory serves GET /api/v1/history/{ticker}?days=30.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	days := 30
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	candles, err := s.mkt.GetHistory(ctx, strings.ToUpper(ticker), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"ticker":  strings.ToUpper(ticker),
			"days":    days,
			"candles": candles,
		},
	})
}

// handleStatus reports credential availability (masked) and the active
// pipeline settings. Key material never leaves the process unmasked.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"keys": config.CheckAPIKeys(s.cfg),
			"news": map[string]interface{}{
				"cache_ttl":          s.cfg.News.CacheTTL,
				"headline_cache_ttl": s.cfg.News.HeadlineCacheTTL,
				"max_articles":       s.cfg.News.MaxArticles,
				"max_headlines":      s.cfg.News.MaxHeadlines,
				"lookback_days":      s.cfg.News.LookbackDays,
			},
		},
	})
}

// ============================================================
// Helpers
// ============================================================

// splitTickers parses a comma-separated ticker list, dropping empty entries.
func splitTickers(raw string) []string {
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
