package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/crm-service/api"
	"github.com/psds-microservice/crm-service/internal/handler"
	"github.com/psds-microservice/helpy/paths"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Customer    *handler.CustomerHandler
	Suggestion  *handler.SuggestionHandler
	Interaction *handler.InteractionHandler
	Job         *handler.JobHandler
}

func New(h Handlers) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(paths.PathHealth, gin.WrapF(handler.Health))
	r.GET(paths.PathReady, gin.WrapF(handler.Ready))
	r.GET(paths.PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, paths.PathSwagger+"/") })
	r.GET(paths.PathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = paths.PathSwagger + "/index.html"
			c.Request.RequestURI = paths.PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/customers", h.Customer.Create)
		v1.GET("/customers/:id", h.Customer.Get)
		v1.GET("/customers", h.Customer.List)
		v1.PUT("/customers/:id", h.Customer.Update)
		v1.DELETE("/customers/:id", h.Customer.Delete)

		v1.POST("/suggestions", h.Suggestion.Create)
		v1.GET("/suggestions/:id", h.Suggestion.Get)
		v1.GET("/suggestions", h.Suggestion.List)
		v1.PUT("/suggestions/:id/status", h.Suggestion.UpdateStatus)
		v1.POST("/suggestions/refresh", h.Suggestion.Refresh)
		v1.DELETE("/suggestions/:id", h.Suggestion.Delete)
		v1.GET("/workflows/:type", h.Suggestion.Workflows)

		v1.POST("/interactions", h.Interaction.Create)
		v1.GET("/interactions/:id", h.Interaction.Get)
		v1.GET("/interactions", h.Interaction.List)
		v1.PUT("/interactions/:id", h.Interaction.Update)
		v1.DELETE("/interactions/:id", h.Interaction.Delete)

		v1.POST("/jobs", h.Job.Create)
		v1.GET("/jobs/:id", h.Job.Get)
		v1.GET("/jobs", h.Job.List)
		v1.PUT("/jobs/:id", h.Job.Update)
		v1.DELETE("/jobs/:id", h.Job.Delete)
	}

	return r
}
