package event

import (
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authentication middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/event")

	router.GET("", handler.ListEvents)
	router.GET("/:id", handler.FindEventByID)

	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authentication.TokenAuthentication)
	tokenAuthenticationRouter.POST("", handler.CreateEvent)
	tokenAuthenticationRouter.PUT("/:id", handler.UpdateEvent)
	tokenAuthenticationRouter.DELETE("/:id", handler.DeleteEvent)
	tokenAuthenticationRouter.POST("/:id/rsvp", handler.Rsvp)
	tokenAuthenticationRouter.GET("/:id/attendees", handler.GetEventAttendees)
	tokenAuthenticationRouter.POST("/:id/reminder", handler.SendReminder)
	tokenAuthenticationRouter.POST("/:id/notify", handler.SendInAppNotification)
	tokenAuthenticationRouter.GET("/:id/notifications", handler.ListNotifications)
	tokenAuthenticationRouter.POST("/:id/attendance", handler.MarkAttendance)
	tokenAuthenticationRouter.GET("/:id/attendance", handler.ListAttendance)
	tokenAuthenticationRouter.GET("/users/:id/activity", handler.GetUserActivity)
}
