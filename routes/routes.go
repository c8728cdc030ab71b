package routes

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router hands to controllers.
type Deps struct {
	Bookings       *services.BookingService
	Catalog        *services.CatalogService
	Auth           *services.AuthService
	Profile        controllers.SalonProfile
	Health         *utils.HealthMonitor
	Logger         *zap.Logger
	AllowedOrigins []string
	BookingLimiter *utils.RateLimiterStore
	SecureCookie   bool
}

func SetupRouter(d Deps) *gin.Engine {
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if d.BookingLimiter == nil {
		d.BookingLimiter = utils.NewRateLimiterStore(10, 3)
	}

	r := gin.New()
	r.Use(utils.ErrorHandler(d.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger(d.Logger))

	bookingController := &controllers.BookingController{Bookings: d.Bookings}
	calendarController := &controllers.CalendarController{Bookings: d.Bookings}
	catalogController := &controllers.CatalogController{Catalog: d.Catalog}
	dashboardController := &controllers.DashboardController{Bookings: d.Bookings}
	profileController := &controllers.ProfileController{Profile: d.Profile}
	authController := &controllers.AuthController{Auth: d.Auth, SecureCookie: d.SecureCookie}

	r.GET("/health", func(c *gin.Context) {
		if d.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := d.Health.Status()
		code := http.StatusOK
		if !status.Database || (status.Redis != nil && !*status.Redis) {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	{
		api.GET("/salon", profileController.GetProfile)
		api.GET("/services", catalogController.GetPublicServices)
		api.GET("/availability", bookingController.GetAvailability)
		api.GET("/booking-window", bookingController.GetBookingWindow)

		bookingLimit := utils.RateLimitMiddleware(d.BookingLimiter, d.Logger)
		api.POST("/bookings", bookingLimit, utils.OptionalAuth(), bookingController.CreateBooking)
		api.GET("/bookings/mine", utils.AuthMiddleware(), bookingController.GetMyBookings)
	}

	admin := r.Group("/api/admin", utils.AuthMiddleware(), utils.AdminOnly())
	{
		bookings := admin.Group("/bookings")
		{
			bookings.GET("", bookingController.ListBookings)
			bookings.POST("", bookingController.AdminCreateBooking)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.PUT("/:id/approve", bookingController.ApproveBooking)
			bookings.PUT("/:id/reject", bookingController.RejectBooking)
			bookings.DELETE("/:id", bookingController.DeleteBooking)
		}

		admin.GET("/calendar", calendarController.GetWeek)
		admin.GET("/dashboard", dashboardController.GetDashboardOverview)

		catalog := admin.Group("/services")
		{
			catalog.GET("", catalogController.GetServices)
			catalog.POST("", catalogController.CreateService)
			catalog.POST("/seed", catalogController.SeedServices)
			catalog.PUT("/:id", catalogController.UpdateService)
			catalog.PUT("/:id/deactivate", catalogController.DeactivateService)
			catalog.PUT("/:id/activate", catalogController.ActivateService)
			catalog.DELETE("/:id", catalogController.DeleteService)
		}
	}

	return r
}
