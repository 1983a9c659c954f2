package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"prompt-template-store/internal/catalog"
	"prompt-template-store/internal/config"
	"prompt-template-store/internal/render"
	"prompt-template-store/internal/usecase"
)

// WebhookVerifier turns a raw provider payload plus its signature
// header into an event the webhook use case can consume.
type WebhookVerifier interface {
	Parse(payload []byte, sigHeader string) (usecase.PaymentEvent, error)
}

type Server struct {
	cat       *catalog.Catalog
	estimator *render.TokenEstimator
	gate      usecase.EntitlementUseCase
	checkout  usecase.CheckoutUseCase
	webhook   usecase.WebhookUseCase
	verifier  WebhookVerifier
	stripeCfg config.StripeConfig
	jwtSecret string
	log       *zerolog.Logger
}

func NewServer(
	cat *catalog.Catalog,
	estimator *render.TokenEstimator,
	gate usecase.EntitlementUseCase,
	checkout usecase.CheckoutUseCase,
	webhook usecase.WebhookUseCase,
	verifier WebhookVerifier,
	stripeCfg config.StripeConfig,
	jwtSecret string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cat:       cat,
		estimator: estimator,
		gate:      gate,
		checkout:  checkout,
		webhook:   webhook,
		verifier:  verifier,
		stripeCfg: stripeCfg,
		jwtSecret: jwtSecret,
		log:       logger,
	}
}

// Router builds the full route tree. The webhook route sits outside
// the identity middleware: it authenticates by signature, not token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(Timeout(15 * time.Second))
			r.Use(Identity(s.jwtSecret))

			r.Get("/templates", s.handleListTemplates)
			r.Post("/templates/{id}/render", s.handleRender)
			r.Post("/checkout/session", s.handleCreateCheckout)
			r.Get("/payments", s.handleListPayments)
		})

		r.Post("/webhooks/stripe", s.handleStripeWebhook)
	})

	return r
}
