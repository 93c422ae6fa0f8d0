// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drover/internal/http/handlers"
	"drover/internal/http/middleware"
	"drover/internal/modules/dispatch"
)

func NewRouter(svc *dispatch.Service, apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(apiKey))

	dispatchHandler := handlers.NewDispatchHandler(svc)
	api.POST("/dispatch/cluster", dispatchHandler.Cluster)
	api.POST("/dispatch/assign", dispatchHandler.Assign)

	jobHandler := handlers.NewJobHandler(svc)
	api.POST("/jobs/:id/complete", jobHandler.Complete)
	api.GET("/jobs/:id/events", jobHandler.Events)

	driverHandler := handlers.NewDriverHandler(svc)
	api.GET("/drivers/:name/queue", driverHandler.Queue)

	locationHandler := handlers.NewLocationHandler(svc)
	api.POST("/postcodes/lookup", locationHandler.Lookup)

	return r
}
