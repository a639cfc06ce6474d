package event

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func NewHandler(eventService eventService, uploader imageUploader) Handler {
	return Handler{
		eventService: eventService,
		uploader:     uploader,
	}
}

type Handler struct {
	eventService eventService
	uploader     imageUploader
}

type eventService interface {
	Create(ctx context.Context, actor *model.User, event *model.Event) (*model.Event, error)
	FindAll(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	Update(ctx context.Context, actor *model.User, id uint, data UpdateEventData) (*model.Event, error)
	Delete(ctx context.Context, actor *model.User, id uint) (*model.Event, error)
	Rsvp(ctx context.Context, eventID, userID uint, status string) (*model.RSVP, error)
	Attendees(ctx context.Context, eventID uint) ([]*model.User, error)
	SendReminder(ctx context.Context, eventID uint, message string) error
	SendInAppNotification(ctx context.Context, eventID uint, message string) (*model.Notification, error)
	Notifications(ctx context.Context, eventID uint) ([]*model.Notification, error)
	MarkAttendance(ctx context.Context, actor *model.User, eventID, userID uint, status string) (*model.Attendee, error)
	Attendance(ctx context.Context, eventID uint) ([]*model.Attendee, error)
	UserActivity(ctx context.Context, userID uint) ([]*model.RSVP, error)
}

type imageUploader interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type CreateEventRequest struct {
	Title       string     `json:"title" form:"title" binding:"required,gte=3,lte=100"`
	Description string     `json:"description" form:"description" binding:"omitempty,gte=5,lte=500"`
	Location    string     `json:"location" form:"location" binding:"omitempty,gte=3,lte=200"`
	StartTime   time.Time  `json:"startTime" form:"startTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	EndTime     *time.Time `json:"endTime" form:"endTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty"`
}

// CreateEvent persists a new event owned by the authenticated caller. The
// request may be JSON or multipart with an optional image part, the uploaded
// image's durable URL is stored on the event.
func (h Handler) CreateEvent(c *gin.Context) {
	actor, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event := &model.Event{
		Title:       request.Title,
		Description: request.Description,
		Location:    request.Location,
		ImageURL:    imageURL,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
	}

	created, err := h.eventService.Create(c.Request.Context(), actor, event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": created})
}

func (h Handler) ListEvents(c *gin.Context) {
	events, err := h.eventService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

func (h Handler) FindEventByID(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

type UpdateEventRequest struct {
	Title       string     `json:"title" form:"title" binding:"omitempty,gte=3,lte=100"`
	Description string     `json:"description" form:"description" binding:"omitempty,gte=5,lte=500"`
	Location    string     `json:"location" form:"location" binding:"omitempty,gte=3,lte=200"`
	StartTime   *time.Time `json:"startTime" form:"startTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty"`
	EndTime     *time.Time `json:"endTime" form:"endTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty"`
}

// UpdateEvent applies a partial update, only supplied fields replace stored
// values.
func (h Handler) UpdateEvent(c *gin.Context) {
	actor, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := UpdateEventData{
		Title:       request.Title,
		Description: request.Description,
		Location:    request.Location,
		ImageURL:    imageURL,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
	}

	event, err := h.eventService.Update(c.Request.Context(), actor, id, data)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

func (h Handler) DeleteEvent(c *gin.Context) {
	actor, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Delete(c.Request.Context(), actor, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event, "message": "event deleted"})
}

type RsvpRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Status string `json:"status" binding:"omitempty,enum=accepted declined pending"`
}

func (h Handler) Rsvp(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request RsvpRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	rsvp, err := h.eventService.Rsvp(c.Request.Context(), id, request.UserID, request.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rsvp": rsvp})
}

func (h Handler) GetEventAttendees(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	attendees, err := h.eventService.Attendees(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendees": attendees})
}

type ReminderRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h Handler) SendReminder(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request ReminderRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.eventService.SendReminder(c.Request.Context(), id, request.Message); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reminders sent successfully"})
}

type NotificationRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h Handler) SendInAppNotification(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request NotificationRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	notification, err := h.eventService.SendInAppNotification(c.Request.Context(), id, request.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notification": notification})
}

func (h Handler) ListNotifications(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	notifications, err := h.eventService.Notifications(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

type AttendanceRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Status string `json:"status" binding:"required,enum=attended absent"`
}

func (h Handler) MarkAttendance(c *gin.Context) {
	actor, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request AttendanceRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	attendee, err := h.eventService.MarkAttendance(c.Request.Context(), actor, id, request.UserID, request.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": attendee})
}

func (h Handler) ListAttendance(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	attendance, err := h.eventService.Attendance(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": attendance})
}

func (h Handler) GetUserActivity(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	activity, err := h.eventService.UserActivity(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": activity})
}

// uploadImage stores the optional multipart image part and returns its
// durable URL, or "" when the request carries no image.
func (h Handler) uploadImage(c *gin.Context) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return "", nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("error reading image part: %v", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("error opening image part: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	key := fmt.Sprintf("events/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.uploader.Put(c.Request.Context(), key, file, fileHeader.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("error uploading image: %v", err)
	}

	return url, nil
}
