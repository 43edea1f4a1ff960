package api

import (
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/Harshith-45/Assignment-Twilight-Bus/internal/config"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	h "github.com/Harshith-45/Assignment-Twilight-Bus/internal/http/handlers"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/http/middleware"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/endpoints", hd.Endpoints)
		api.GET("/routes", hd.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", hd.Login)
		auth.POST("/register", hd.Register)

		admin := api.Group("/admin", middleware.Auth(hd.Auth()), middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/stats", hd.AdminStats)
		admin.GET("/drivers", hd.ListDrivers)
		admin.PUT("/drivers/:id/approve", hd.ApproveDriver)
		admin.PUT("/drivers/:id/reject", hd.RejectDriver)
		admin.GET("/trips", hd.ListTrips)

		settlements := admin.Group("/settlements")
		settlements.GET("/preview", hd.PreviewSettlement)
		settlements.POST("", hd.ProcessSettlement)
		settlements.GET("", hd.ListSettlements)
		settlements.GET("/:id", hd.GetSettlement)
		settlements.GET("/:id/statement", hd.SettlementStatement)

		driver := api.Group("/driver", middleware.Auth(hd.Auth()), middleware.RequireRoles(models.RoleDriver))
		driver.GET("/profile", hd.DriverProfile)
		driver.POST("/trips", hd.LogTrip)
		driver.GET("/trips", hd.MyTrips)
		driver.GET("/earnings", hd.MyEarnings)
	}

	hd.SetRouter(r)
	return r
}
