// Package server exposes marking parsing and cursor-driven score editing over
// HTTP. Each editing session owns an in-memory score and one cursor.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/scof/constants"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

var ErrTooManySessions = errors.New("too many sessions")

type session struct {
	score  *model.Score
	cursor score.Cursor
}

type metrics struct {
	requests      *prometheus.CounterVec
	parseFailures prometheus.Counter
	sessions      prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scof_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scof_marking_parse_failures_total",
			Help: "Markings that failed to parse.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scof_sessions",
			Help: "Open editing sessions.",
		}),
	}
	reg.MustRegister(m.requests, m.parseFailures, m.sessions)
	return m
}

type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		sessions: make(map[string]*session),
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// Handler routes every endpoint, wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.observe)

	router.HandleFunc("/markings/parse", s.handleParse).Methods("POST")
	router.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	router.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	router.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/left", s.handleLeft).Methods("POST")
	router.HandleFunc("/sessions/{id}/right", s.handleRight).Methods("POST")
	router.HandleFunc("/sessions/{id}/insert", s.handleInsert).Methods("POST")
	router.HandleFunc("/sessions/{id}/remove", s.handleRemove).Methods("POST")
	router.HandleFunc("/sessions/{id}/pitch", s.handleSetPitch).Methods("PUT")
	router.HandleFunc("/sessions/{id}/duration", s.handleSetDuration).Methods("PUT")
	router.HandleFunc("/sessions/{id}/dots/{edit}", s.handleDot).Methods("POST")
	router.HandleFunc("/sessions/{id}/step/{direction}", s.handleStep).Methods("POST")
	router.HandleFunc("/sessions/{id}/measures", s.handleNewMeasure).Methods("POST")
	router.HandleFunc("/sessions/{id}/movement", s.handleMovement).Methods("GET")
	router.HandleFunc("/sessions/{id}/midi", s.handleMidi).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: strings.Split(constants.GetAllowedOrigins(), ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
	})
	return c.Handler(router)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.requests.WithLabelValues(route, http.StatusText(rec.code)).Inc()
		s.logger.Debug("Handled request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("code", rec.code),
			slog.Duration("elapsed", time.Since(start)))
	})
}

// add stores a new session and describes it under the same lock, so a
// concurrent delete can't remove it first.
func (s *Server) add(sc *model.Score) (string, model.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= constants.MaxSessions {
		return "", model.SessionResponse{}, ErrTooManySessions
	}
	id := uuid.New().String()
	sess := &session{score: sc}
	s.sessions[id] = sess
	s.metrics.sessions.Set(float64(len(s.sessions)))
	return id, sessionResponse(id, sess), nil
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.metrics.sessions.Set(float64(len(s.sessions)))
	return true
}

// withSession runs fn holding the store lock, so edits to one score never
// interleave.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, sess *session) error) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no such session"))
		return
	}
	if err := fn(id, sess); err != nil {
		s.writeEditError(w, err)
	}
}

func (s *Server) writeEditError(w http.ResponseWriter, err error) {
	var pe *note.ParseError
	switch {
	case errors.As(err, &pe):
		s.metrics.parseFailures.Inc()
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, score.ErrOutOfRange), errors.Is(err, score.ErrNoMeasures):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Could not encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	res := model.ErrorResponse{Error: err.Error()}
	var pe *note.ParseError
	if errors.As(err, &pe) {
		offset := pe.Offset
		res.Offset = &offset
	}
	writeJSON(w, code, res)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
