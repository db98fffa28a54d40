package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/domain"
	"github.com/merchly/order-lookup/internal/lookup"
	"github.com/merchly/order-lookup/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type LookupService interface {
	LookupWithStats(ctx context.Context, contactType, contactInfo string) ([]domain.OrderSummary, lookup.Stats, error)
}

type Options struct {
	CORSOrigins  []string
	RateLimitRPM int
}

type Server struct {
	service LookupService
	logger  *zap.Logger
	metrics observability.Metrics
	router  chi.Router
}

func New(service LookupService, logger *zap.Logger, metrics observability.Metrics, opts Options) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
	s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(s.logger, s.metrics),
		middleware.Recoverer,
	)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if opts.RateLimitRPM > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitRPM, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/api/lookup", s.handleLookup)

	s.router = r
}

type lookupRequest struct {
	ContactType string `json:"contact_type"`
	ContactInfo string `json:"contact_info"`
}

type lookupResponse struct {
	Orders []domain.OrderSummary `json:"orders"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.ContactInfo == "" {
		http.Error(w, "contact_info is required", http.StatusBadRequest)
		return
	}

	orders, st, err := s.service.LookupWithStats(r.Context(), req.ContactType, req.ContactInfo)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContactType) {
			http.Error(w, "contact_type must be email or phone", http.StatusBadRequest)
			return
		}
		// Upstream detail stays in the logs.
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	if orders == nil {
		orders = []domain.OrderSummary{}
	}

	w.Header().Set("X-Source", string(st.Source))
	observability.AppendServerTiming(w, "lookup", st.DurMs, string(st.Source))
	writeJSON(w, lookupResponse{Orders: orders})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}
