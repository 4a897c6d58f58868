// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rm-entrenador/backend/internal/integration/entrypoint/controller"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	clientController    *controller.ClientController
	paymentController   *controller.PaymentController
	dashboardController *controller.DashboardController
	reminderController  *controller.ReminderController
	ingestController    *controller.IngestController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	clientController *controller.ClientController,
	paymentController *controller.PaymentController,
	dashboardController *controller.DashboardController,
	reminderController *controller.ReminderController,
	ingestController *controller.IngestController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		clientController:    clientController,
		paymentController:   paymentController,
		dashboardController: dashboardController,
		reminderController:  reminderController,
		ingestController:    ingestController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Client routes (require authentication)
		if r.clientController != nil && r.authMiddleware != nil {
			clients := v1.Group("/alumnos")
			clients.Use(r.authMiddleware.Authenticate())
			{
				clients.GET("", r.clientController.List)
				clients.POST("", r.clientController.Create)
				clients.PUT("/:id", r.clientController.Update)
				clients.DELETE("/:id", r.clientController.Delete)
			}
		}

		// Payment routes (require authentication)
		if r.paymentController != nil && r.authMiddleware != nil {
			payments := v1.Group("/pagos")
			payments.Use(r.authMiddleware.Authenticate())
			{
				payments.GET("", r.paymentController.List)
				payments.POST("", r.paymentController.Create)
				payments.PUT("/:id", r.paymentController.Update)
				payments.DELETE("/:id", r.paymentController.Delete)
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/overview", r.dashboardController.GetOverview)
			}
		}

		// Reminder routes (require authentication)
		if r.reminderController != nil && r.authMiddleware != nil {
			reminders := v1.Group("/reminders")
			reminders.Use(r.authMiddleware.Authenticate())
			{
				reminders.POST("/send", r.reminderController.Send)
			}
		}

		// Import routes (require authentication)
		if r.ingestController != nil && r.authMiddleware != nil {
			imports := v1.Group("/import")
			imports.Use(r.authMiddleware.Authenticate())
			{
				imports.POST("/alumnos", r.ingestController.ImportClients)
				imports.POST("/pagos", r.ingestController.ImportPayments)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
