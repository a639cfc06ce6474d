package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r repository) Save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(&event).Error
}

func (r repository) FindAll(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		WithContext(ctx).
		Preload("Attendees").
		Order("start_time").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all events: %v", err)
	}

	return events, nil
}

func (r repository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("Attendees").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	return event, err
}

func (r repository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Unscoped().Delete(&model.Event{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete event with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find event with id %d", id)
	}

	return nil
}

// UpsertRSVP keeps the composite unique index on (event_id, user_id)
// authoritative, a second RSVP replaces the previous status instead of
// creating a duplicate row.
func (r repository) UpsertRSVP(ctx context.Context, rsvp *model.RSVP) error {
	return r.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(&rsvp).Error
}

func (r repository) FindRSVPsByEvent(ctx context.Context, eventID uint) ([]*model.RSVP, error) {
	var rsvps []*model.RSVP
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&rsvps).Error
	return rsvps, err
}

func (r repository) FindRSVPsByUser(ctx context.Context, userID uint) ([]*model.RSVP, error) {
	var rsvps []*model.RSVP
	err := r.db.
		WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rsvps).Error
	return rsvps, err
}

// AddAttendee resolves the RSVP into the event's attendee association so
// event listings carry full user records.
func (r repository) AddAttendee(ctx context.Context, eventID, userID uint) error {
	event := model.Event{ID: eventID}
	return r.db.
		WithContext(ctx).
		Model(&event).
		Association("Attendees").
		Append(&model.User{ID: userID})
}

func (r repository) UpsertAttendance(ctx context.Context, attendee *model.Attendee) error {
	return r.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&attendee).Error
}

func (r repository) FindAttendanceByEvent(ctx context.Context, eventID uint) ([]*model.Attendee, error) {
	var attendance []*model.Attendee
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&attendance).Error
	return attendance, err
}

func (r repository) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(&notification).Error
}

func (r repository) FindNotificationsByEvent(ctx context.Context, eventID uint) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.
		WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&notifications).Error
	return notifications, err
}
