package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rustico-backend/controllers"
	"rustico-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	gc *controllers.GuestController,
	bc *controllers.BookingController,
	sc *controllers.ServiceController,
	stc *controllers.SettingsController,
	rc *controllers.ReportController,
	uc *controllers.UserController,
	uploadsDir string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Static("/uploads", uploadsDir)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "rustico-backend", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.POST("/verify", ac.Verify)
	}

	authed := r.Group("", middleware.RequireAuth())

	guests := authed.Group("/guests")
	{
		guests.GET("", gc.GetGuests)
		guests.POST("", gc.CreateGuest)

		// fixed segments before /:id
		guests.GET("/active", gc.GetActiveGuests)
		guests.GET("/registration/:number", gc.GetGuestByRegistrationNumber)

		guests.GET("/:id", gc.GetGuestByID)
		guests.PATCH("/:id", gc.UpdateGuest)
		guests.PATCH("/:id/regenerate-registration", gc.RegenerateRegistrationNumber)
		guests.DELETE("/:id", middleware.RequireAction("guests.delete"), gc.DeleteGuest)
	}

	bookings := authed.Group("/bookings")
	{
		bookings.GET("", bc.GetBookings)
		bookings.POST("", bc.CreateBooking)
		bookings.GET("/upcoming", bc.GetUpcomingBookings)
		bookings.GET("/dashboard-stats", bc.GetDashboardStats)
		bookings.GET("/:id", bc.GetBookingByID)
		bookings.PATCH("/:id", bc.UpdateBooking)
		bookings.DELETE("/:id", bc.DeleteBooking)
	}

	servicesGroup := authed.Group("/services")
	{
		servicesGroup.GET("", sc.GetServices)
		servicesGroup.POST("", sc.CreateService)
		servicesGroup.GET("/active", sc.GetActiveServices)
		servicesGroup.GET("/:id", sc.GetServiceByID)
		servicesGroup.PATCH("/:id", sc.UpdateService)
		servicesGroup.DELETE("/:id", sc.DeleteService)
	}

	settings := authed.Group("/settings")
	{
		settings.GET("", stc.GetSettings)
		settings.GET("/company-info", stc.GetCompanyInfo)
		settings.PUT("", middleware.RequireAction("settings.manage"), stc.UpdateSettings)
		settings.POST("/logo", middleware.RequireAction("settings.manage"), stc.UploadLogo)
		settings.DELETE("/logo", middleware.RequireAction("settings.manage"), stc.DeleteLogo)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/confirmation/:id", rc.BookingConfirmationPDF)
		reports.GET("/invoice/:id", rc.InvoicePDF)
		reports.GET("/period", rc.PeriodReport)
	}

	users := authed.Group("/users", middleware.RequireAction("users.manage"))
	{
		users.GET("", uc.GetUsers)
		users.POST("", uc.CreateUser)
		users.GET("/:id", uc.GetUserByID)
		users.PATCH("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeleteUser)
	}

	return r
}
