package user

import (
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authentication middleware.AuthenticationMiddleware, authorization middleware.AuthorizationMiddleware, handler Handler) {
	router := r.Group("/user")

	router.POST("/signup", handler.SignUp)
	router.POST("/signin", handler.SignIn)

	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authentication.TokenAuthentication)
	tokenAuthenticationRouter.POST("/logout", handler.LogOut)
	tokenAuthenticationRouter.POST("/logout-all", handler.LogOutFromAllDevices)
	tokenAuthenticationRouter.POST("/change-password", handler.ChangePassword)
	tokenAuthenticationRouter.GET("/user/:userId", handler.FindUserByID)

	administratorRouter := tokenAuthenticationRouter.Group("")
	administratorRouter.Use(authorization.RequireAdministrator)
	administratorRouter.GET("/users", handler.FindAllUsers)
}
