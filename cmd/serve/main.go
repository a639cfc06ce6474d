package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gatherly/event-manager/internal/handler"
	internalLog "github.com/gatherly/event-manager/internal/log"
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/internal/server"
	"github.com/gatherly/event-manager/pkg/config"
	"github.com/gatherly/event-manager/pkg/event"
	"github.com/gatherly/event-manager/pkg/storage"
	"github.com/gatherly/event-manager/pkg/token"
	"github.com/gatherly/event-manager/pkg/user"
	"github.com/go-mail/mail"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.New(internalLog.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	cfg := config.ProvideConfig()

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		return err
	}

	objectStore, err := storage.NewObjectStore(cfg.ObjectStore)
	if err != nil {
		return err
	}
	if err := objectStore.EnsureBucket(context.Background()); err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(logger, tokenRepository, cfg.PrivateKey)

	userRepository := user.NewRepository(db)
	userService := user.NewService(userRepository, tokenService)
	userHandler := user.NewHandler(userService, tokenService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(logger, eventRepository, dialer, cfg.SMTP.From)
	eventHandler := event.NewHandler(eventService, objectStore)

	authentication := middleware.NewAuthentication(logger, &cfg.PrivateKey.PublicKey, tokenService)
	authorization := middleware.NewAuthorization(logger)

	r := server.GetEngine(logger, cfg.BasePath, userHandler, eventHandler, authentication, authorization)

	return r.Run(fmt.Sprintf(":%d", cfg.ServerPort))
}
