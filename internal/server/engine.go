package server

import (
	"log/slog"

	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/pkg/event"
	"github.com/gatherly/event-manager/pkg/health"
	"github.com/gatherly/event-manager/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func GetEngine(logger *slog.Logger, basePath string, userHandler user.Handler, eventHandler event.Handler, authentication middleware.AuthenticationMiddleware, authorization middleware.AuthorizationMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authentication, authorization, userHandler)
	event.Routes(router, authentication, eventHandler)

	return r
}
