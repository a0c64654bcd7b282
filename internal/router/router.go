package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/handler"
	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/repository"
)

// RegisterRoutes wires every endpoint onto the provided Echo
// instance. Account creation, public user reads, login and the health
// check stay outside the session gate; everything identity-scoped
// goes through middleware.SessionAuth. Logout also stays outside the
// gate because it validates and consumes its own cookie.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, m *handler.MessageHandler, sessions *repository.SessionRepo) {
	e.GET("/healthz", handler.Health)

	// Public routes: registration, user lookups and the auth
	// endpoints that manage their own session state.
	e.POST("/users", u.Create)
	e.GET("/users", u.List)
	e.GET("/users/:userId", u.GetOne)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout)

	// Session-scoped routes. SessionAuth resolves the cookie into a
	// verified user id before any of these handlers run.
	g := e.Group("")
	g.Use(middleware.SessionAuth(sessions))
	g.GET("/profile", a.Profile)
	g.PATCH("/users/:userId", u.Update)
	g.DELETE("/users/:userId", u.Delete)
	g.POST("/messages", m.Create)
	g.PATCH("/messages/:msgId", m.Edit)
	g.GET("/messages/mine", m.Mine)
	g.GET("/messages", m.List)
	g.DELETE("/messages/:msgId", m.Delete)
}
