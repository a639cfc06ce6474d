package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/go-mail/mail"
	"golang.org/x/sync/errgroup"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository eventRepository, dialer dialer, mailFrom string) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		dialer:     dialer,
		mailFrom:   mailFrom,
	}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type eventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Save(ctx context.Context, event *model.Event) error
	FindAll(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
	UpsertRSVP(ctx context.Context, rsvp *model.RSVP) error
	FindRSVPsByEvent(ctx context.Context, eventID uint) ([]*model.RSVP, error)
	FindRSVPsByUser(ctx context.Context, userID uint) ([]*model.RSVP, error)
	AddAttendee(ctx context.Context, eventID, userID uint) error
	UpsertAttendance(ctx context.Context, attendee *model.Attendee) error
	FindAttendanceByEvent(ctx context.Context, eventID uint) ([]*model.Attendee, error)
	CreateNotification(ctx context.Context, notification *model.Notification) error
	FindNotificationsByEvent(ctx context.Context, eventID uint) ([]*model.Notification, error)
}

type Service struct {
	logger     *slog.Logger
	repository eventRepository
	dialer     dialer
	mailFrom   string
}

// Create persists a new event owned by the actor. The owner always comes from
// the authenticated caller, never from client input.
func (s Service) Create(ctx context.Context, actor *model.User, event *model.Event) (*model.Event, error) {
	event.CreatedByID = actor.ID

	if err := s.repository.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %v", err)
	}

	return event, nil
}

func (s Service) FindAll(ctx context.Context) ([]*model.Event, error) {
	return s.repository.FindAll(ctx)
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.FindByID(ctx, id)
}

// UpdateEventData carries the optional fields of a partial event update. Nil
// or empty fields leave the stored value untouched.
type UpdateEventData struct {
	Title       string
	Description string
	Location    string
	ImageURL    string
	StartTime   *time.Time
	EndTime     *time.Time
}

func (s Service) Update(ctx context.Context, actor *model.User, id uint, data UpdateEventData) (*model.Event, error) {
	event, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwner(actor, event); err != nil {
		return nil, err
	}

	if data.Title != "" {
		event.Title = data.Title
	}
	if data.Description != "" {
		event.Description = data.Description
	}
	if data.Location != "" {
		event.Location = data.Location
	}
	if data.ImageURL != "" {
		event.ImageURL = data.ImageURL
	}
	if data.StartTime != nil {
		event.StartTime = *data.StartTime
	}
	if data.EndTime != nil {
		event.EndTime = data.EndTime
	}

	if err := s.repository.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("error updating event %d: %v", id, err)
	}

	return event, nil
}

// Delete removes the event and returns the deleted record. Only the owner or
// an administrator may delete an event.
func (s Service) Delete(ctx context.Context, actor *model.User, id uint) (*model.Event, error) {
	event, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwner(actor, event); err != nil {
		return nil, err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) authorizeOwner(actor *model.User, event *model.Event) error {
	if event.CreatedByID != actor.ID && !actor.IsAdministrator() {
		return errdef.NewForbidden("only the event owner can modify event %d", event.ID)
	}
	return nil
}

// Rsvp records the user's intent to attend. At most one RSVP exists per
// (event, user) pair, a repeated RSVP updates the previous status.
func (s Service) Rsvp(ctx context.Context, eventID, userID uint, status string) (*model.RSVP, error) {
	event, err := s.repository.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = model.RSVPPending
	}

	rsvp := &model.RSVP{
		EventID: event.ID,
		UserID:  userID,
		Status:  status,
	}
	if err := s.repository.UpsertRSVP(ctx, rsvp); err != nil {
		return nil, fmt.Errorf("error saving rsvp for event %d: %v", eventID, err)
	}

	if err := s.repository.AddAttendee(ctx, event.ID, userID); err != nil {
		return nil, fmt.Errorf("error resolving attendee for event %d: %v", eventID, err)
	}

	return rsvp, nil
}

// Attendees resolves the event's RSVPs to user records.
func (s Service) Attendees(ctx context.Context, eventID uint) ([]*model.User, error) {
	if _, err := s.repository.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	rsvps, err := s.repository.FindRSVPsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error finding rsvps for event %d: %v", eventID, err)
	}

	attendees := make([]*model.User, 0, len(rsvps))
	for _, rsvp := range rsvps {
		if rsvp.User != nil {
			attendees = append(attendees, rsvp.User)
		}
	}

	return attendees, nil
}

// SendReminder mails the reminder to every RSVP'd user. All sends are issued
// concurrently and the call returns only once every one of them has settled,
// an aggregate error stands in for any individual failure.
func (s Service) SendReminder(ctx context.Context, eventID uint, message string) error {
	event, err := s.repository.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	rsvps, err := s.repository.FindRSVPsByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error finding rsvps for event %d: %v", eventID, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, rsvp := range rsvps {
		if rsvp.User == nil {
			continue
		}
		recipient := rsvp.User.Email
		g.Go(func() error {
			m := mail.NewMessage()
			m.SetHeader("From", s.mailFrom)
			m.SetHeader("To", recipient)
			m.SetHeader("Subject", fmt.Sprintf("Reminder for %s", event.Title))
			m.SetBody("text/plain", message)
			return s.dialer.DialAndSend(m)
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Reminder dispatch failed", "event", eventID, "error", err)
		return fmt.Errorf("error sending reminders for event %d: %v", eventID, err)
	}

	return nil
}

// SendInAppNotification persists one event-wide notification record. Nothing
// is pushed to connected clients.
func (s Service) SendInAppNotification(ctx context.Context, eventID uint, message string) (*model.Notification, error) {
	event, err := s.repository.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		EventID: event.ID,
		Message: message,
	}
	if err := s.repository.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("error saving notification for event %d: %v", eventID, err)
	}

	return notification, nil
}

func (s Service) Notifications(ctx context.Context, eventID uint) ([]*model.Notification, error) {
	if _, err := s.repository.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	return s.repository.FindNotificationsByEvent(ctx, eventID)
}

// MarkAttendance records what actually happened after the event, attended or
// absent. It is kept separate from the RSVP lifecycle on purpose.
func (s Service) MarkAttendance(ctx context.Context, actor *model.User, eventID, userID uint, status string) (*model.Attendee, error) {
	event, err := s.repository.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwner(actor, event); err != nil {
		return nil, err
	}

	attendee := &model.Attendee{
		EventID: event.ID,
		UserID:  userID,
		Status:  status,
	}
	if err := s.repository.UpsertAttendance(ctx, attendee); err != nil {
		return nil, fmt.Errorf("error saving attendance for event %d: %v", eventID, err)
	}

	return attendee, nil
}

func (s Service) Attendance(ctx context.Context, eventID uint) ([]*model.Attendee, error) {
	if _, err := s.repository.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	return s.repository.FindAttendanceByEvent(ctx, eventID)
}

// UserActivity returns the user's RSVPs with event details resolved.
func (s Service) UserActivity(ctx context.Context, userID uint) ([]*model.RSVP, error) {
	return s.repository.FindRSVPsByUser(ctx, userID)
}
