package handlers

import (
	"github.com/SscSPs/enterprise_ledger/cmd/docs"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/session"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies are the process-wide collaborators the routes need besides
// the services.
type Dependencies struct {
	Sessions     session.Store
	Stores       portsrepo.StoreProvider
	LoginLimiter *limiter.Limiter
	Posthog      *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", metrics.Handler())

	// Everything below runs with a session and an optional principal.
	root := r.Group("/",
		middleware.SessionMiddleware(deps.Sessions, middleware.SessionConfig{
			CookieName: cfg.SessionCookieName,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.IsProduction,
		}),
		middleware.PrincipalMiddleware(cfg.JWTSecret),
	)
	registerAuthRoutes(root, cfg.JWTSecret)

	setupEnterpriseRoutes(root, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupEnterpriseRoutes configures /enterprise. Organization selection and
// business login only need a signed-in user; every other route runs behind
// the enterprise gate.
func setupEnterpriseRoutes(root *gin.RouterGroup, services *portssvc.ServiceContainer, deps Dependencies) {
	signedIn := root.Group("/enterprise", middleware.RequireUser(deps.Stores))
	public := root.Group("/enterprise", middleware.PublicStore(deps.Stores))

	registerOrganizationRoutes(signedIn, services.Organization)
	registerBusinessAuthRoutes(signedIn, public, services.BusinessAuth, middleware.RateLimit(deps.LoginLimiter))

	gated := root.Group("/enterprise",
		middleware.EnterpriseGate(deps.Stores),
		middleware.PosthogMiddleware(deps.Posthog),
	)
	registerReportingRoutes(gated, services.Reporting)
	registerLedgerRoutes(gated, services.Ledger)
	registerHoldingPaymentRoutes(gated, services.Holding)
	registerMemberRoutes(gated, services.Member)
	registerBankRoutes(gated, services.Bank)
	registerExportRoutes(gated, services.Export)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
