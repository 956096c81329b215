package rest

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterConfig controls optional router middleware
type RouterConfig struct {
	// ServiceName is used by the tracing middleware when tracing is enabled
	ServiceName string
	// EnableTracing attaches the otelgin middleware to every route
	EnableTracing bool
}

// NewRouter builds the gin engine with all API routes registered
func NewRouter(handler *Handler, config RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if config.EnableTracing {
		r.Use(otelgin.Middleware(config.ServiceName))
	}

	r.GET("/health", handler.HealthCheck)

	r.GET("/materials", handler.ListMaterials)
	r.POST("/materials", handler.CreateMaterial)
	r.PUT("/materials/:id", handler.UpdateMaterial)
	r.DELETE("/materials/:id", handler.DeleteMaterial)

	r.GET("/products", handler.ListProducts)
	r.POST("/products", handler.CreateProduct)
	r.PUT("/products/:id", handler.UpdateProduct)
	r.DELETE("/products/:id", handler.DeleteProduct)
	r.GET("/products/suggestion", handler.Suggestion)

	return r
}
