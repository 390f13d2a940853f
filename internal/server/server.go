// Package server exposes wrapped results over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/ghclient"
)

// Response headers and messages shared with the web frontend.
const (
	cacheControl        = "public, s-maxage=3600, stale-while-revalidate=86400"
	fetchFailedMessage  = "Failed to fetch GitHub data"
	invalidYearMessage  = "Invalid year"
	userNotFoundMessage = "User not found"

	shutdownTimeout = 30 * time.Second
)

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error     string `json:"error"`
	RateLimit bool   `json:"rateLimit"`
}

// Server serves wrapped results for arbitrary usernames.
type Server struct {
	cfg     *contract.Config
	fetcher contract.ActivityFetcher
	mgr     contract.CacheManager
	logger  *log.Logger
}

// NewServer creates a server that answers requests with the given fetcher and stores.
func NewServer(cfg *contract.Config, fetcher contract.ActivityFetcher, mgr contract.CacheManager) *Server {
	return &Server{
		cfg:     cfg,
		fetcher: fetcher,
		mgr:     mgr,
		logger:  log.New(os.Stderr, "gitwrapped: ", log.LstdFlags),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	router.HandleFunc("/api/github/{username}", s.handleWrapped).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// StartServer builds a GitHub client from cfg and serves until ctx is cancelled.
func StartServer(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	client, err := ghclient.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	return NewServer(cfg, client, mgr).ListenAndServe(ctx, cfg.Addr)
}

func (s *Server) handleWrapped(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := contract.ValidateUsername(username); err != nil {
		// No GitHub account can have this login.
		writeError(w, http.StatusNotFound, errorResponse{Error: userNotFoundMessage})
		return
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || contract.ValidateYear(parsed, time.Now().In(s.location()).Year()) != nil {
			writeError(w, http.StatusBadRequest, errorResponse{Error: invalidYearMessage})
			return
		}
		year = parsed
	}

	cfg := s.cfg.CloneForRequest(username, year)
	cfg.Explain = r.URL.Query().Get("explain") == "true"

	result, err := core.GetWrappedResult(core.WithSuppressHeader(r.Context()), cfg, s.fetcher, s.mgr)
	if err != nil {
		s.logger.Printf("wrapped %s failed: %v", username, err)
		status, body := errorFor(err)
		writeError(w, status, body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

// errorFor maps fetch errors onto the status and body returned to clients.
// Only rate limiting and unknown users are passed through.
func errorFor(err error) (int, errorResponse) {
	var apiErr *ghclient.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusForbidden, http.StatusNotFound:
			return apiErr.Status, errorResponse{Error: apiErr.Message, RateLimit: apiErr.RateLimit}
		}
	}
	return http.StatusInternalServerError, errorResponse{Error: fetchFailedMessage}
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) location() *time.Location {
	if s.cfg.Location == nil {
		return time.Local
	}
	return s.cfg.Location
}
