package livescore

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type indexPage struct {
	Listing
	Filter      Filter
	Status      string
	SportLabel  string
	LeagueLabel string
	StatusLabel string
	PrevPage    int
	NextPage    int
	Error       string
}

// ErrorResponse is the JSON error body of the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ParseFilter(q.Get("sport"), q.Get("league"), q.Get("status"))
	page := parseIntParam(r, "page", 1)

	data := indexPage{
		Filter:      filter,
		Status:      string(filter.Status),
		SportLabel:  orDefault(filter.Sport, "Tous"),
		LeagueLabel: orDefault(filter.League, "Toutes"),
		StatusLabel: orDefault(string(filter.Status), "Tous"),
	}

	matches, err := s.svc.Matches(r.Context())
	if err != nil {
		slog.Error("Failed to load matches", "error", err)
		data.Error = err.Error()
		data.Listing = BuildListing(nil, filter, page, s.opts.PerPage)
		s.render(w, http.StatusBadGateway, "index.html", data)
		return
	}

	data.Listing = BuildListing(matches, filter, page, s.opts.PerPage)
	data.PrevPage = data.Page - 1
	data.NextPage = data.Page + 1
	s.render(w, http.StatusOK, "index.html", data)
}

func (s *Server) handleMatchPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	details, err := s.svc.Details(r.Context(), id)
	switch {
	case errors.Is(err, feed.ErrMatchNotFound):
		writeText(w, http.StatusNotFound, fmt.Sprintf("Aucun match trouvé pour l'identifiant %d", id))
		return
	case err != nil:
		slog.Error("Failed to build match details", "match_id", id, "error", err)
		writeText(w, http.StatusBadGateway, "Erreur lors de l'affichage des détails du match : "+err.Error())
		return
	}
	s.render(w, http.StatusOK, "details.html", details)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ParseFilter(q.Get("sport"), q.Get("league"), q.Get("status"))
	page := parseIntParam(r, "page", 1)
	perPage := parseIntParam(r, "per_page", s.opts.PerPage)
	if perPage > 100 {
		perPage = 100
	}

	matches, err := s.svc.Matches(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load live feed", err)
		return
	}
	respondJSON(w, http.StatusOK, BuildListing(matches, filter, page, perPage))
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "match id must be an integer", nil)
		return
	}

	details, err := s.svc.Details(r.Context(), id)
	switch {
	case errors.Is(err, feed.ErrMatchNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("Aucun match trouvé pour l'identifiant %d", id), nil)
	case err != nil:
		respondError(w, http.StatusBadGateway, "failed to load live feed", err)
	default:
		respondJSON(w, http.StatusOK, details)
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Failed to render page", "template", name, "error", err)
		writeText(w, http.StatusInternalServerError, "Erreur : "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		slog.Warn("API error", "message", message, "error", err)
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
