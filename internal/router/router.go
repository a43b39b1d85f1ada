package router

import (
	"github.com/gin-gonic/gin"

	"billkit/internal/config"
	"billkit/internal/domain"
	"billkit/internal/handler"
	"billkit/internal/middleware"
	"billkit/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	healthH *handler.HealthHandler,
	totalsH *handler.TotalsHandler,
	catalogH *handler.CatalogHandler,
	verificationH *handler.VerificationHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Protected routes - require valid JWT
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	// Stateless totals computation
	totals := v1.Group("/totals")
	totals.POST("", totalsH.Compute)
	totals.GET("/words", totalsH.Words)

	// SAC catalog
	catalog := v1.Group("/catalog")
	catalog.GET("/sac", catalogH.List)
	catalog.PUT("/sac", middleware.RequireRole(domain.RoleAdmin), catalogH.Import)

	// Verifications
	verifications := v1.Group("/verifications")
	verifications.POST("", middleware.BodyLimit(cfg.Verification.MaxPayloadKB*1024), verificationH.Verify)
	verifications.GET("", verificationH.List)
	verifications.GET("/export", middleware.RequireRole(domain.RoleAdmin), verificationH.Export)
	verifications.GET("/:id", verificationH.GetByID)
	verifications.GET("/:id/snapshot", verificationH.Snapshot)

	return r
}
