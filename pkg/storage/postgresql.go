package storage

import (
	"fmt"
	"log/slog"

	"github.com/gatherly/event-manager/pkg/config"
	"github.com/gatherly/event-manager/pkg/model"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(logger *slog.Logger, c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger: slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		// repositories rely on gorm.ErrDuplicatedKey for unique violations
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.RSVP{},
		&model.Attendee{},
		&model.Notification{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
