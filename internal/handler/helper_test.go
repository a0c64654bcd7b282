package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/chat-service/internal/handler"
	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/repository"
	"github.com/iliyamo/chat-service/internal/router"
)

// env wires the full router against fresh stores, so tests exercise
// the same middleware chain the server runs.
type env struct {
	e        *echo.Echo
	users    *repository.UserRepo
	sessions *repository.SessionRepo
	messages *repository.MessageRepo
}

func newEnv(t *testing.T, clock repository.Clock) *env {
	t.Helper()
	e := echo.New()
	users := repository.NewUserRepo()
	sessions := repository.NewSessionRepo()
	messages := repository.NewMessageRepo(clock)
	router.RegisterRoutes(e,
		handler.NewAuthHandler(users, sessions, messages),
		handler.NewUserHandler(users, sessions, messages),
		handler.NewMessageHandler(messages, users, false),
		sessions,
	)
	return &env{e: e, users: users, sessions: sessions, messages: messages}
}

func (v *env) do(t *testing.T, method, target, body string, cookie *http.Cookie, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its id.
func (v *env) register(t *testing.T, username, email, password string) uint64 {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q}`, username, email, password)
	rec := v.do(t, http.MethodPost, "/users", body, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		UserID uint64 `json:"userId"`
	}
	decodeBody(t, rec, &resp)
	return resp.UserID
}

// login authenticates through the API and returns the session cookie.
func (v *env) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := v.do(t, http.MethodPost, "/login", body, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	t.Fatal("login did not issue a session cookie")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
