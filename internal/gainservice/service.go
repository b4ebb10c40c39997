// Package gainservice is a stand-in gain-computation service. It answers
// position queries with uniformly random channel gains; only the request and
// response shapes are meaningful.
package gainservice

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/surround-panner/internal/gain"
)

// Service serves the gain API.
type Service struct {
	allowedOrigin string
	rand          func() float64
	log           zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRand replaces the gain source.
func WithRand(f func() float64) Option {
	return func(s *Service) { s.rand = f }
}

// New creates a service that allows cross-origin calls from allowedOrigin.
// "*" allows any origin; an empty string disables CORS headers.
func New(allowedOrigin string, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		allowedOrigin: allowedOrigin,
		rand:          rand.Float64,
		log:           log.With().Str("component", "gain-service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed, CORS-wrapped, logged handler.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("GET "+gain.Path, s.handleGains)
	return s.logRequests(s.cors(mux))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleGains(w http.ResponseWriter, r *http.Request) {
	x, err := coordinate(r, "x")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := coordinate(r, "y")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp := gain.Response{
		L:    s.rand(),
		R:    s.rand(),
		C:    s.rand(),
		LS:   s.rand(),
		RS:   s.rand(),
		Echo: &gain.Echo{X: x, Y: y},
	}
	writeJSON(w, http.StatusOK, resp)
}

type paramError struct {
	name  string
	value string
}

func (e paramError) Error() string {
	if e.value == "" {
		return "missing query parameter " + e.name
	}
	return "invalid query parameter " + e.name + ": " + strconv.Quote(e.value)
}

func coordinate(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, paramError{name: name}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, paramError{name: name, value: raw}
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if s.allowedOrigin != "" && origin != "" {
			w.Header().Add("Vary", "Origin")
			if s.allowedOrigin == "*" || origin == s.allowedOrigin {
				w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
			}
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, X-Request-Id")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Str("requestId", r.Header.Get("X-Request-Id")).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("Request served")
	})
}
