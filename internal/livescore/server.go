package livescore

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Vodeneev/livescore/internal/pkg/health/handlers"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"join": strings.Join,
	"price": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"percent": func(f float64) string {
		return strconv.FormatFloat(f*100, 'f', 1, 64) + " %"
	},
}

var pages = template.Must(template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))

// Options configures the HTTP surface.
type Options struct {
	ServiceName    string
	PerPage        int
	RequestTimeout time.Duration
	CORSOrigins    []string
	Tracker        *performance.Tracker
}

// Server holds the HTTP handlers.
type Server struct {
	svc  *Service
	opts Options
}

// NewRouter builds the chi router: HTML pages, JSON API and service endpoints.
func NewRouter(svc *Service, opts Options) http.Handler {
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "livescore"
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{svc: svc, opts: opts}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	r.Get("/ping", handlers.HandlePing)
	r.Get("/health", handlers.Health(opts.ServiceName, opts.Tracker))
	r.Get("/metrics", handlers.Metrics(opts.Tracker))

	r.Get("/", s.handleIndex)
	r.Get("/match/{id:-?[0-9]+}", s.handleMatchPage)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/matches", s.handleListMatches)
		r.Get("/matches/{id}", s.handleGetMatch)
	})

	return r
}

// requestLogger logs one line per request with slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}
