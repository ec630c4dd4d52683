package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"pathbatch/internal/analyze"
	"pathbatch/internal/model"
)

// Server exposes one run's results over HTTP as JSON.
type Server struct {
	res *analyze.Results
	log *logrus.Logger
}

func NewServer(res *analyze.Results, log *logrus.Logger) *Server {
	return &Server{res: res, log: log}
}

// Start serves until the listener fails. Blocks.
func (s *Server) Start(port string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/batches", s.handleBatches)
	mux.HandleFunc("/api/trimmed", s.handleTrimmed)
	mux.HandleFunc("/api/warnings", s.handleWarnings)
	mux.HandleFunc("/api/outliers", s.handleOutliers)
	mux.HandleFunc("/api/results", s.handleResults)

	if port == "" {
		port = "8080"
	}
	fmt.Printf("Starting pathbatch web server at http://localhost:%s\n", port)
	fmt.Printf("Go to http://localhost:%s/api/summary in your browser.\n", port)

	return http.ListenAndServe(":"+port, mux)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("failed to encode response")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	response := struct {
		analyze.Summary
		Config  model.Config `json:"config"`
		Version string       `json:"version"`
	}{
		Summary: s.res.Summary,
		Config:  s.res.Config,
		Version: model.Version,
	}
	s.writeJSON(w, response)
}

func (s *Server) handleBatches(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.res.Batches)
}

func (s *Server) handleTrimmed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.res.Trimmed)
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.res.Warnings)
}

func (s *Server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Outliers1 []analyze.Outlier1Row `json:"outliers1"`
		Outliers2 []analyze.Outlier2Row `json:"outliers2"`
	}{
		Outliers1: s.res.Outliers1,
		Outliers2: s.res.Outliers2,
	}
	s.writeJSON(w, response)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.res)
}
