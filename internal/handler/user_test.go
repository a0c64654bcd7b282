package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	v := newEnv(t, nil)

	rec := v.do(t, http.MethodPost, "/users", `{"username":"alice","email":"alice@x.com","password":"pw1"}`, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		UserID   uint64 `json:"userId"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, uint64(1), resp.UserID)
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "alice@x.com", resp.Email)
	require.NotContains(t, rec.Body.String(), "pw1")
}

func TestCreateUserConflictCaseInsensitive(t *testing.T) {
	v := newEnv(t, nil)
	v.register(t, "alice", "A@x.com", "pw1")

	rec := v.do(t, http.MethodPost, "/users", `{"username":"carol","email":"a@x.com","password":"pw"}`, nil, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = v.do(t, http.MethodPost, "/users", `{"username":"ALICE","email":"carol@x.com","password":"pw"}`, nil, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUserValidation(t *testing.T) {
	v := newEnv(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "not json"},
		{"unknown field", `{"username":"a","email":"a@x.com","password":"pw","isAdmin":true}`},
		{"missing username", `{"email":"a@x.com","password":"pw"}`},
		{"missing email", `{"username":"a","password":"pw"}`},
		{"missing password", `{"username":"a","email":"a@x.com"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := v.do(t, http.MethodPost, "/users", tc.body, nil, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetUser(t *testing.T) {
	v := newEnv(t, nil)
	id := v.register(t, "alice", "alice@x.com", "pw1")

	rec := v.do(t, http.MethodGet, fmt.Sprintf("/users/%d", id), "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID   uint64 `json:"userId"`
		Username string `json:"username"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, id, resp.UserID)
	require.Equal(t, "alice", resp.Username)
	// only the public projection is exposed
	require.NotContains(t, rec.Body.String(), "email")
	require.NotContains(t, rec.Body.String(), "password")

	rec = v.do(t, http.MethodGet, "/users/999", "", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(t, http.MethodGet, "/users/abc", "", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers(t *testing.T) {
	v := newEnv(t, nil)

	// no users at all answers 204 with no body
	rec := v.do(t, http.MethodGet, "/users", "", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	v.register(t, "alice", "alice@x.com", "pw")
	v.register(t, "bob", "bob@x.com", "pw")

	rec = v.do(t, http.MethodGet, "/users", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		UserID   uint64 `json:"userId"`
		Username string `json:"username"`
	}
	decodeBody(t, rec, &items)
	require.Len(t, items, 2)
	require.Equal(t, "alice", items[0].Username)
	require.Equal(t, "bob", items[1].Username)

	rec = v.do(t, http.MethodGet, "/users?username=BOB", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = items[:0]
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	require.Equal(t, "bob", items[0].Username)

	// a filter that matches nobody is an empty result, not an error
	rec = v.do(t, http.MethodGet, "/users?username=nobody", "", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = v.do(t, http.MethodGet, "/users?role=admin", "", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	v := newEnv(t, nil)
	aliceID := v.register(t, "alice", "alice@x.com", "pw1")
	bobID := v.register(t, "bob", "bob@x.com", "pw")
	cookie := v.login(t, "alice", "pw1")

	// email only: response echoes the new email, no password key
	rec := v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{"email":"new@x.com"}`, cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "new@x.com")
	require.NotContains(t, rec.Body.String(), "password")

	// password only: echoed as an acknowledgement, never the value
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{"password":"pw2"}`, cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "password has been updated")
	require.NotContains(t, rec.Body.String(), "pw2")

	// the new password is live
	rec = v.do(t, http.MethodPost, "/logout", "", cookie, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	v.login(t, "alice", "pw2")
	cookie = v.login(t, "alice", "pw2")

	// conflicting email
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{"email":"BOB@x.com"}`, cookie, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// someone else's account
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", bobID), `{"email":"x@x.com"}`, cookie, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// schema violations
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{}`, cookie, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{"username":"eve"}`, cookie, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// no session at all
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), `{"email":"x@x.com"}`, nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	v := newEnv(t, nil)
	aliceID := v.register(t, "alice", "alice@x.com", "pw1")
	v.register(t, "bob", "bob@x.com", "pw")
	aliceCookie := v.login(t, "alice", "pw1")
	bobCookie := v.login(t, "bob", "pw")

	rec := v.do(t, http.MethodPost, "/messages", `{"content":"from alice"}`, aliceCookie, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = v.do(t, http.MethodPost, "/messages", `{"content":"also alice"}`, aliceCookie, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// bob cannot delete alice
	rec = v.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", aliceID), "", bobCookie, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// unknown id is 404 even for an authenticated caller
	rec = v.do(t, http.MethodDelete, "/users/999", "", bobCookie, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", aliceID), "", aliceCookie, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// the session died with the account
	rec = v.do(t, http.MethodGet, "/profile", "", aliceCookie, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// the account is gone
	rec = v.do(t, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), "", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// and so are all of alice's messages
	rec = v.do(t, http.MethodGet, "/messages", "", bobCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		Username string `json:"username"`
	}
	decodeBody(t, rec, &items)
	require.Empty(t, items)
}
