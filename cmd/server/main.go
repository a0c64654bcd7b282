package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/config"
	"github.com/iliyamo/chat-service/internal/handler"
	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/queue"
	"github.com/iliyamo/chat-service/internal/repository"
	"github.com/iliyamo/chat-service/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env; real env vars win

	cfg := config.Load()

	// The in-memory stores are the database; their lifetime is the
	// process's lifetime.
	users := repository.NewUserRepo()
	sessions := repository.NewSessionRepo()
	messages := repository.NewMessageRepo(nil)

	// Seed the reserved admin account (id 0) and welcome message (id 0).
	users.SeedAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	messages.SeedWelcome(cfg.WelcomeMessage)

	authHandler := handler.NewAuthHandler(users, sessions, messages)
	userHandler := handler.NewUserHandler(users, sessions, messages)
	messageHandler := handler.NewMessageHandler(messages, users, cfg.EventsEnabled)

	e := echo.New()

	if rl := config.LoadRateLimitConfig(); rl.Enabled {
		e.Use(middleware.NewFixedWindow(rl, config.NewRedisClient()))
	}

	router.RegisterRoutes(e, authHandler, userHandler, messageHandler, sessions)

	if cfg.EventsEnabled {
		go func() {
			if err := queue.StartActivityConsumer(); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
