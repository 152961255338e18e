package routes

import (
	"net/http"
	"time"

	"riverwood/handlers"
	"riverwood/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries every handler the router needs.
type HandlerBundle struct {
	Webhook      *handlers.WebhookHandler
	Reservations *handlers.ReservationHandler
	Cabins       *handlers.CabinHandler
	Activities   *handlers.ActivityHandler
	Guests       *handlers.GuestHandler
}

// RegisterHealthRoutes registers liveness and queue dashboards.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Riverwood"})
	})
}

// RegisterWebhookRoutes registers the inbound chat boundary.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/webhook/chat", hb.Webhook.HandleInboundMessage)
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/admin/login", handlers.AdminLoginHandler)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())

		adminGroup.GET("/queue/health", handlers.QueueHealthHandler)

		adminGroup.GET("/reservations", hb.Reservations.ListReservations)
		adminGroup.GET("/reservations/pending/latest", hb.Reservations.GetLatestPendingReservation)
		adminGroup.GET("/reservations/:id", hb.Reservations.GetReservationByID)
		adminGroup.PATCH("/reservations/:id/status", hb.Reservations.UpdateReservationStatus)

		adminGroup.GET("/cabins", hb.Cabins.ListCabins)
		adminGroup.POST("/cabins", hb.Cabins.CreateCabin)
		adminGroup.GET("/cabins/:id", hb.Cabins.GetCabinByID)
		adminGroup.PUT("/cabins/:id", hb.Cabins.UpdateCabin)
		adminGroup.DELETE("/cabins/:id", hb.Cabins.DeleteCabin)

		adminGroup.GET("/cabin-types", hb.Cabins.ListCabinTypes)
		adminGroup.POST("/cabin-types", hb.Cabins.CreateCabinType)
		adminGroup.PUT("/cabin-types/:id", hb.Cabins.UpdateCabinType)
		adminGroup.DELETE("/cabin-types/:id", hb.Cabins.DeleteCabinType)

		adminGroup.GET("/activities", hb.Activities.ListActivities)
		adminGroup.POST("/activities", hb.Activities.CreateActivity)
		adminGroup.PUT("/activities/:id", hb.Activities.UpdateActivity)
		adminGroup.DELETE("/activities/:id", hb.Activities.DeleteActivity)

		adminGroup.GET("/guests", hb.Guests.ListGuests)
		adminGroup.DELETE("/guests/:id", hb.Guests.DeleteGuest)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)
	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
