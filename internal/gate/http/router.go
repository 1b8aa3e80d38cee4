package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/httpx"
	"github.com/harborchat/gatehouse/pkg/jwtx"
	"github.com/harborchat/gatehouse/pkg/slogx"

	_ "github.com/harborchat/gatehouse/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	hooks *service.Hooks

	// CookieName is "<namespace>.invite-code"; CookieKey signs its value.
	CookieName string
	CookieKey  []byte

	// SigninURL is where a failed redeem redirects the browser.
	SigninURL string

	InviteService    *service.InviteService
	LifecycleService *service.LifecycleService
	SignupService    *service.SignupService
	OTPService       *service.OTPService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		hooks:        &service.Hooks{},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.LifecycleService.AttachHooks(r.hooks)

	r.registerInvites()
	r.registerAuth()
	r.registerOTP()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatehouse Invitation Service API
//	@version		0.1.0
//	@description	Invitation-gated signup and role escalation. Accounts are created
//	@description	through invite codes staged in a signed cookie; consuming a code
//	@description	promotes the new account past the default role.
//
//	@contact.name				HarborChat Team
//	@contact.url				https://github.com/harborchat/gatehouse
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
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	createHandler := &InviteCreateHandler{InviteService: r.InviteService}
	redeemHandler := &InviteRedeemHandler{
		InviteService: r.InviteService,
		CookieName:    r.CookieName,
		CookieKey:     r.CookieKey,
		SigninURL:     r.SigninURL,
	}
	activateHandler := &InviteActivateHandler{
		InviteService: r.InviteService,
		CookieName:    r.CookieName,
		CookieKey:     r.CookieKey,
	}

	// POST /invites/create - authenticated, moderate rate limit by user
	securedCreate := httpx.Chain(createHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("POST /v1/invites/create", securedCreate)

	// Redeem/activate are pre-signup, so rate limited strictly by IP.
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invites/activate",
		httpx.Chain(activateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	signUpHandler := &SignUpHandler{
		SignupService: r.SignupService,
		Hooks:         r.hooks,
		CookieName:    r.CookieName,
		CookieKey:     r.CookieKey,
	}
	signInHandler := &SignInHandler{SignupService: r.SignupService}

	// Signup and signin attempts are brute-forceable; strict limits by IP.
	r.Mux.Handle("POST /v1/sign-up/email",
		httpx.Chain(signUpHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/sign-in/email",
		httpx.Chain(signInHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerOTP() {
	h := &OTPHandler{
		OTPService:    r.OTPService,
		SignupService: r.SignupService,
		Hooks:         r.hooks,
		CookieName:    r.CookieName,
		CookieKey:     r.CookieKey,
	}

	// POST /otp/enroll - authenticated, moderate rate limit by user
	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("POST /v1/otp/enroll", securedEnroll)

	// POST /sign-in/otp - strict rate limit by IP (prevent TOTP brute force)
	r.Mux.Handle("POST /v1/sign-in/otp",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{
		BootstrapService: r.BootstrapService,
		SignupService:    r.SignupService,
	}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
