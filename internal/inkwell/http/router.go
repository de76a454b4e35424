package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"

	_ "github.com/aussiebroadwan/inkwell/api/inkwell" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// EnrollmentPath is where the gate sends accounts without confirmed MFA.
const EnrollmentPath = "/v1/mfa/enrollment"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	limits       httpx.RateLimits
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AccountService    *service.AccountService
	EnrollmentService *service.EnrollmentService
	GuardService      *service.GuardService
	BootstrapService  *service.BootstrapService
	TokenService      *service.TokenService
}

func NewRouter(
	verifier jwtx.Verifier,
	limits httpx.RateLimits,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerEnrollment()
	r.registerAdmin()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Inkwell API
//	@version		0.1.0
//	@description	Accounts, mandatory TOTP enrollment and role administration for the Inkwell blog.
//	@description
//	@description				Accounts without confirmed MFA are redirected (303) to the enrollment endpoint from every other authenticated route.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/inkwell
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				EdDSA signed access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// gated wraps h for an authenticated route behind the enrollment gate.
func (r *Router) gated(h http.Handler, endpoint service.Endpoint, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByAccount(limit),
		EnrollmentGate(r.AccountService, endpoint),
	}
	return httpx.Chain(h, append(mws, extra...)...)
}

func (r *Router) registerAccounts() {
	register := &RegisterHandler{
		AccountService:    r.AccountService,
		EnrollmentService: r.EnrollmentService,
		TokenService:      r.TokenService,
	}
	login := &LoginHandler{
		AccountService: r.AccountService,
		TokenService:   r.TokenService,
	}
	me := &MeHandler{AccountService: r.AccountService}

	// Public signup and credential checks - strict rate limit by IP
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(register, httpx.RateLimitByIP(r.limits.Strict)),
	)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login, httpx.RateLimitByIP(r.limits.Strict)),
	)

	r.Mux.Handle("GET /v1/me",
		r.gated(http.HandlerFunc(me.HandleMe), service.EndpointProtected, r.limits.Lenient),
	)
	r.Mux.Handle("GET /v1/dashboard",
		r.gated(http.HandlerFunc(me.HandleDashboard), service.EndpointProtected, r.limits.Lenient),
	)
}

func (r *Router) registerEnrollment() {
	h := &EnrollmentHandler{EnrollmentService: r.EnrollmentService}

	r.Mux.Handle("GET "+EnrollmentPath,
		r.gated(http.HandlerFunc(h.HandleShow), service.EndpointEnrollment, r.limits.Lenient),
	)
	r.Mux.Handle("GET "+EnrollmentPath+"/qr.png",
		r.gated(http.HandlerFunc(h.HandleQR), service.EndpointEnrollment, r.limits.Lenient),
	)

	// Confirm - strict rate limit by account (prevent brute force of TOTP codes)
	r.Mux.Handle("POST "+EnrollmentPath+"/confirm",
		r.gated(http.HandlerFunc(h.HandleConfirm), service.EndpointEnrollment, r.limits.Strict),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		AccountService: r.AccountService,
		GuardService:   r.GuardService,
	}
	master := httpx.RequireRole(r.AccountService.RoleOf, domain.RoleMaster.String())

	r.Mux.Handle("GET /v1/admin/admins",
		r.gated(http.HandlerFunc(h.HandleListAdmins), service.EndpointProtected, r.limits.Lenient, master),
	)
	r.Mux.Handle("GET /v1/admin/members",
		r.gated(http.HandlerFunc(h.HandleListMembers), service.EndpointProtected, r.limits.Lenient, master),
	)
	r.Mux.Handle("POST /v1/admin/accounts",
		r.gated(http.HandlerFunc(h.HandleCreate), service.EndpointProtected, r.limits.Moderate, master),
	)
	r.Mux.Handle("PATCH /v1/admin/accounts/{id}/role",
		r.gated(http.HandlerFunc(h.HandleChangeRole), service.EndpointProtected, r.limits.Moderate, master),
	)
	r.Mux.Handle("DELETE /v1/admin/accounts/{id}",
		r.gated(http.HandlerFunc(h.HandleDelete), service.EndpointProtected, r.limits.Moderate, master),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h, httpx.RateLimitByIP(r.limits.Strict)),
	)
	r.Mux.Handle("GET /v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleStatus), httpx.RateLimitByIP(r.limits.Public)),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
