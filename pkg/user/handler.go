package user

import (
	"context"
	"net/http"

	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(userService userService, tokenService tokenService) Handler {
	return Handler{
		userService:  userService,
		tokenService: tokenService,
	}
}

type Handler struct {
	userService  userService
	tokenService tokenService
}

type userService interface {
	SignUp(ctx context.Context, name, email, password, role string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.User, error)
	ChangePassword(ctx context.Context, id uint, newPassword string) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
}

type tokenService interface {
	IssueToken(ctx context.Context, user *model.User) (string, error)
	RevokeSession(ctx context.Context, userID uint, tokenString string) error
	RevokeAllSessions(ctx context.Context, userID uint) error
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,gte=2,lte=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,gte=5,lte=128"`
	Role     string `json:"role" binding:"omitempty,enum=admin user"`
}

// SignUp registers a new user. The created user never carries the password
// hash, a reused email is a conflict.
func (h Handler) SignUp(c *gin.Context) {
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn validates the credentials and issues a session token bound to the
// user's identity.
func (h Handler) SignIn(c *gin.Context) {
	var request SignInRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	token, err := h.tokenService.IssueToken(ctx, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

type LogOutRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

// LogOut revokes exactly the one session matching the supplied token, other
// devices stay signed in.
func (h Handler) LogOut(c *gin.Context) {
	var request LogOutRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.userService.FindByID(ctx, request.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.RevokeSession(ctx, request.UserID, request.Token); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out successfully"})
}

type LogOutAllRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// LogOutFromAllDevices clears the user's entire active session set.
func (h Handler) LogOutFromAllDevices(c *gin.Context) {
	var request LogOutAllRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.userService.FindByID(ctx, request.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.RevokeAllSessions(ctx, request.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out from all devices"})
}

type ChangePasswordRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,gte=8,lte=128"`
}

func (h Handler) ChangePassword(c *gin.Context) {
	var request ChangePasswordRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), request.UserID, request.NewPassword); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated successfully"})
}

func (h Handler) FindUserByID(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h Handler) FindAllUsers(c *gin.Context) {
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}
