package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/elee1766/mcpchat/src/app"
	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
)

// server exposes the session manager over a small JSON API.
type server struct {
	app    *app.App
	logger *slog.Logger
}

type endpointRequest struct {
	Endpoint string `json:"endpoint"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Reply string `json:"reply"`
	Turns int    `json:"turns"`
}

type saveRequest struct {
	Title string `json:"title"`
}

type serversResponse struct {
	Default   string            `json:"default"`
	Endpoints []config.Endpoint `json:"endpoints"`
}

func newServer(a *app.App) http.Handler {
	s := &server{app: a, logger: a.Logger.With("component", "http")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/servers", s.handleServers)
	mux.HandleFunc("GET /api/examples", s.handleExamples)
	mux.HandleFunc("POST /api/connect", s.handleConnect)
	mux.HandleFunc("POST /api/test", s.handleTest)
	mux.HandleFunc("POST /api/disconnect", s.handleDisconnect)
	mux.HandleFunc("POST /api/message", s.handleMessage)
	mux.HandleFunc("POST /api/clear", s.handleClear)
	mux.HandleFunc("POST /api/transcripts", s.handleSave)

	return s.logRequests(mux)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONOK(w, map[string]string{"status": "ok"})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSONOK(w, s.app.Manager.Status())
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSONOK(w, map[string][]chat.Turn{"turns": s.app.Manager.History()})
}

func (s *server) handleServers(w http.ResponseWriter, r *http.Request) {
	writeJSONOK(w, serversResponse{
		Default:   s.app.Config.DefaultEndpoint,
		Endpoints: s.app.Config.Endpoints,
	})
}

func (s *server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSONOK(w, map[string][]string{"examples": s.app.Config.Examples})
}

func (s *server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req endpointRequest
	if !parseJSONBody(w, r, &req) {
		return
	}
	writeJSONOK(w, s.app.ConnectEndpoint(r.Context(), req.Endpoint))
}

func (s *server) handleTest(w http.ResponseWriter, r *http.Request) {
	var req endpointRequest
	if !parseJSONBody(w, r, &req) {
		return
	}
	writeJSONOK(w, s.app.TestEndpoint(r.Context(), req.Endpoint))
}

func (s *server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.app.Manager.Disconnect()
	writeJSONOK(w, s.app.Manager.Status())
}

// handleMessage always answers 200: failures are part of the reply text.
func (s *server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !parseJSONBody(w, r, &req) {
		return
	}
	reply, turns := s.app.Manager.Exchange(r.Context(), req.Text)
	writeJSONOK(w, messageResponse{Reply: reply, Turns: turns})
}

func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.app.Manager.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !parseJSONBody(w, r, &req) {
		return
	}
	transcript, _, err := s.app.SaveTranscript(r.Context(), req.Title)
	if err != nil {
		s.logger.Warn("save transcript failed", "error", err)
		writeErrorJSON(w, http.StatusUnprocessableEntity, "save_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, transcript)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeJSONOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func writeErrorJSON(w http.ResponseWriter, status int, errorCode, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// parseJSONBody decodes the request body as JSON into v. An empty body leaves
// v untouched. It reports false after writing a 400 response.
func parseJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return false
	}
	return true
}
