package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"

	_ "github.com/harsh-khulbe03/Minutron/api/tracker" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	jwtSecret    []byte
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	UserService      *service.UserService
	ProjectService   *service.ProjectService
	TimeEntryService *service.TimeEntryService
	ReportService    *service.ReportService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	jwtSecret []byte,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		jwtSecret:    jwtSecret,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerProjects()
	r.registerTimeEntries()
	r.registerReports()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Minutron Work Time Tracker API
//	@version		0.1.0
//	@description	Multi-tenant work time tracking service with timer lifecycle management, project
//	@description	assignments and role-based authorization. Callers authenticate with JWT bearer
//	@description	tokens issued by an external identity provider; the token subject is the user id.
//
//	@contact.name				Minutron
//	@contact.url				https://github.com/harsh-khulbe03/Minutron
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn verifies the bearer token and binds the actor id into the
// request context. Every /v1 endpoint except bootstrap goes through it.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.jwtSecret, r.issuer)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Provisioning and role grants are admin operations - moderate limits
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)

	// Profile reads and updates - lenient limits
	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandlePatch),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/users/{id}/roles",
		httpx.Chain(http.HandlerFunc(h.HandleGrantRole),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/users/{id}/roles/{role}",
		httpx.Chain(http.HandlerFunc(h.HandleRevokeRole),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	r.Mux.Handle("POST /v1/projects",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/projects",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/projects/{id}/toggle",
		httpx.Chain(http.HandlerFunc(h.HandleToggle),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/projects/{id}/assignments",
		httpx.Chain(http.HandlerFunc(h.HandleAssign),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/projects/{id}/assignments/{user_id}",
		httpx.Chain(http.HandlerFunc(h.HandleUnassign),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTimeEntries() {
	h := &TimeEntriesHandler{TimeEntryService: r.TimeEntryService}

	// Timer start/stop are the hot path - lenient limits by actor
	r.Mux.Handle("POST /v1/timers/start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/timers/{id}/stop",
		httpx.Chain(http.HandlerFunc(h.HandleStop),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/entries",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/entries",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByActor(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	// Reports scan entries - moderate limit by actor
	r.Mux.Handle("GET /v1/reports/summary",
		httpx.Chain(http.HandlerFunc(h.HandleSummary),
			r.authn(),
			httpx.RateLimitByActor(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
