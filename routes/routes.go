package routes

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"staybook-backend/controllers"
	"staybook-backend/middleware"
	"staybook-backend/models"
	"staybook-backend/services"
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

// Router bundles everything SetupRouter needs to wire the route tree.
type Router struct {
	Auth      *controllers.AuthController
	Listings  *controllers.ListingController
	Bookings  *controllers.BookingController
	Reviews   *controllers.ReviewController
	Reports   *controllers.ReportController
	Users     *services.UserService
	JWTSecret []byte
	Logger    *slog.Logger
}

func SetupRouter(rt Router) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(rt.Logger), gin.Recovery())

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
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.Authenticate(rt.JWTSecret)

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/users", rt.Auth.Register)
			auth.POST("/login", rt.Auth.Login)
		}

		listing := v1.Group("/listing")
		{
			listing.POST("/insert_listing",
				authn,
				middleware.RequireRole(rt.Users, models.RoleHost),
				rt.Listings.InsertListing)
			listing.GET("/listings",
				middleware.OptionalAuthenticate(rt.JWTSecret),
				rt.Listings.GetListings)
		}

		booking := v1.Group("/booking")
		{
			booking.POST("/insert_booking",
				authn,
				middleware.RequireRole(rt.Users, models.RoleGuest),
				rt.Bookings.InsertBooking)
			booking.GET("/get_bookings",
				authn,
				middleware.RequireRole(rt.Users, models.RoleGuest, models.RoleHost, models.RoleAdmin),
				rt.Bookings.GetBookings)
		}

		review := v1.Group("/review")
		{
			review.POST("/insert_review",
				authn,
				middleware.RequireRole(rt.Users, models.RoleGuest),
				rt.Reviews.InsertReview)
		}

		report := v1.Group("/report")
		{
			report.GET("/report_listings",
				authn,
				middleware.RequireRole(rt.Users, models.RoleAdmin),
				rt.Reports.ReportListings)
		}
	}

	return r
}
