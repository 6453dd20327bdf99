package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/cmd/docs"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
	"github.com/sarrafhq/sarraf-backend/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouterDeps carries everything route registration needs besides the engine
// and config: the service container, the failed-login lockout, and the three
// rate limiters. The limiter stores are injected so tests and multi-instance
// deployments can swap them.
type RouterDeps struct {
	Services      *portssvc.ServiceContainer
	Lockout       *middleware.Lockout
	PublicLimiter *limiter.Limiter
	AdminLimiter  *limiter.Limiter
	AuthLimiter   *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies
// through interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps RouterDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, deps)
	setupSwaggerRoutes(r, cfg)
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, deps RouterDeps) {
	services := deps.Services
	priceH := newPriceHandler(services.Price)
	instrumentH := newInstrumentHandler(services.GoldType, services.Currency)
	settingsH := newSettingsHandler(services.Settings)
	authH := newAuthHandler(services.Auth, services.APIToken, deps.Lockout, cfg)

	v1 := r.Group("/api/v1")

	// adminChain authenticates mutating/admin traffic: API tokens first so
	// programmatic clients skip cookies, then CSRF, then the session cookie.
	adminChain := []gin.HandlerFunc{
		middleware.RateLimit(deps.AdminLimiter),
		middleware.APITokenAuth(services.APIToken, services.Auth),
		middleware.CSRFProtect(services.Auth, services.Audit, cfg.SessionCookieName),
		middleware.SessionAuth(services.Auth, cfg.SessionCookieName),
	}
	editors := middleware.RequireRoles(services.Audit, domain.RoleAdmin, domain.RoleEditor)
	adminsOnly := middleware.RequireRoles(services.Audit, domain.RoleAdmin)
	anyStaff := middleware.RequireRoles(services.Audit, domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer)

	// Public quoting surface.
	goldPublic := v1.Group("/gold", middleware.RateLimit(deps.PublicLimiter))
	{
		registerPublicPriceRoutes(goldPublic, priceH, domain.InstrumentGold, "prices")
		goldPublic.GET("/types", instrumentH.listGoldTypes)
	}
	currencyPublic := v1.Group("/currencies", middleware.RateLimit(deps.PublicLimiter))
	{
		registerPublicPriceRoutes(currencyPublic, priceH, domain.InstrumentCurrency, "rates")
		currencyPublic.GET("/codes", instrumentH.listCurrencies)
	}
	v1.GET("/settings/market-status", middleware.RateLimit(deps.PublicLimiter), settingsH.marketStatus)

	// Price and instrument administration.
	goldAdmin := v1.Group("/gold", append(adminChain, editors)...)
	{
		registerAdminPriceRoutes(goldAdmin, priceH, domain.InstrumentGold)
		goldAdmin.POST("/auto-update", priceH.autoUpdateGold)
		goldAdmin.POST("/types", instrumentH.createGoldType)
		goldAdmin.PUT("/types/:id", instrumentH.updateGoldType)
	}
	currencyAdmin := v1.Group("/currencies", append(adminChain, editors)...)
	{
		registerAdminPriceRoutes(currencyAdmin, priceH, domain.InstrumentCurrency)
		currencyAdmin.POST("/bulk-update", priceH.bulkUpdateCurrencies)
		currencyAdmin.POST("/codes", instrumentH.createCurrency)
		currencyAdmin.PUT("/codes/:id", instrumentH.updateCurrency)
	}

	// Settings administration. Reads are open to all staff, writes to admins.
	settingsAdmin := v1.Group("/settings", adminChain...)
	{
		settingsAdmin.GET("", anyStaff, settingsH.list)
		settingsAdmin.GET("/groups/store-info", anyStaff, settingsH.storeInfo)
		settingsAdmin.GET("/groups/market-hours", anyStaff, settingsH.marketHours)
		settingsAdmin.GET("/groups/margins", anyStaff, settingsH.margins)
		settingsAdmin.GET("/groups/security", anyStaff, settingsH.security)
		settingsAdmin.GET("/:key", anyStaff, settingsH.get)
		settingsAdmin.PUT("/:key", adminsOnly, settingsH.put)
		settingsAdmin.POST("/reset", adminsOnly, settingsH.reset)
	}

	// Authentication.
	auth := v1.Group("/auth", middleware.RateLimit(deps.AuthLimiter))
	{
		auth.POST("/login", deps.Lockout.Middleware(), authH.login)
		auth.POST("/google/exchange-code", deps.Lockout.Middleware(), authH.googleExchangeCode)
		auth.POST("/logout", authH.logout)

		authPriv := auth.Group("",
			middleware.APITokenAuth(services.APIToken, services.Auth),
			middleware.CSRFProtect(services.Auth, services.Audit, cfg.SessionCookieName),
			middleware.SessionAuth(services.Auth, cfg.SessionCookieName),
		)
		authPriv.GET("/session", authH.session)
		authPriv.GET("/csrf", authH.csrf)
		authPriv.POST("/refresh", authH.refresh)
		authPriv.POST("/change-password", authH.changePassword)
		authPriv.POST("/api-tokens", adminsOnly, authH.mintAPIToken)
	}
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
