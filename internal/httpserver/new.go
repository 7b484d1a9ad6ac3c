package httpserver

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// multipartOverhead is added to the upload limit to leave room for the
// multipart envelope and the other form fields.
const multipartOverhead = 1 << 20

type implServer struct {
	cfg       *config.Config
	processor processor.Processor
	logger    logger.Logger
	page      *template.Template
	accept    string
}

// New constructs the HTTP handler: upload page, report download, JSON API,
// health and, when gatherer is non-nil, Prometheus metrics.
func New(cfg *config.Config, proc processor.Processor, log logger.Logger, gatherer prometheus.Gatherer) http.Handler {
	accept := make([]string, 0, len(cfg.Upload.Extensions))
	for _, ext := range cfg.Upload.Extensions {
		accept = append(accept, "."+ext)
	}

	s := &implServer{
		cfg:       cfg,
		processor: proc,
		logger:    log,
		page:      pageTemplate,
		accept:    strings.Join(accept, ","),
	}

	r := chi.NewRouter()
	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}
	r.Use(chiMiddleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/transcribe", s.handleTranscribe)
	r.Post("/report", s.handleReport)
	r.Route("/api/v1", func(ar chi.Router) {
		ar.Post("/transcriptions", s.handleAPITranscribe)
	})
	r.Get("/healthz", s.handleHealth)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
