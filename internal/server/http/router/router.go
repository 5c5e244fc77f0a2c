package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/enershare/ewhflex/internal/server/http/handlers"
	"github.com/enershare/ewhflex/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FlexFacade, logger *slog.Logger, metricsHandler http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	ewh := api.Group("/ewh")
	ewh.POST("/request", orderHandler.Submit)
	ewh.GET("/result", orderHandler.Result)

	engine.GET("/metrics", gin.WrapH(metricsHandler))

	return engine
}
