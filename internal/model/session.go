package model

// Session binds an opaque token to the user it authenticates. A user
// may hold several live sessions at once; nothing deduplicates them.
//
// Fields:
//  Token  – opaque random identifier handed to the client as a cookie.
//  UserID – the authenticated user.
type Session struct {
	Token  string
	UserID uint64
}
