package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/internal/verify/store"
	"github.com/aussiebroadwan/verify/pkg/httpx"
	"github.com/aussiebroadwan/verify/pkg/slogx"

	_ "github.com/aussiebroadwan/verify/api/verify" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	registry       *prometheus.Registry
	callbackSecret string

	VerificationService *service.VerificationService
}

func NewRouter(
	buildVersion, callbackSecret string,
	st store.Store,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		registry:       registry,
		callbackSecret: callbackSecret,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerVerifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Verification Service API
//	@version		0.1.0
//	@description	Single-use verification tokens for chat-platform principals. Tokens
//	@description	are minted per principal, redeemed at most once by the verification
//	@description	page, and rendered into a deterministic operator report on completion.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/verify
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	ApiSecretAuth
//	@in							header
//	@name						X-Api-Secret
//	@description				Shared secret for the completion callback.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerVerifications() {
	issueHandler := &IssueHandler{VerificationService: r.VerificationService}
	completeHandler := &CompleteHandler{VerificationService: r.VerificationService}
	statusHandler := &StatusHandler{VerificationService: r.VerificationService}

	// POST /verifications - strict rate limit (token minting)
	r.Mux.Handle("POST /v1/verifications",
		httpx.Chain(issueHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /verifications/complete - shared-secret guard, strict rate limit
	// (the collection page is the only expected caller)
	r.Mux.Handle("POST /v1/verifications/complete",
		httpx.Chain(completeHandler,
			httpx.RequireSecret(r.callbackSecret),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /verifications/status - read-only, lenient rate limit
	r.Mux.Handle("GET /v1/verifications/status",
		httpx.Chain(statusHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics",
		promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}),
	)
}
