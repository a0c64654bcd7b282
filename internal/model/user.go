package model

// User represents a registered chat account held in the in-memory
// store. The password is kept exactly as supplied and compared
// verbatim at login; there is no hashing step. Handlers define
// separate response types with appropriate JSON tags, so none are
// attached here.
//
// Fields:
//  ID       – unique numeric identifier, assigned once and never reused.
//  Username – login name, unique case-insensitively, immutable.
//  Email    – contact address, unique case-insensitively, owner-mutable.
//  Password – plaintext credential, owner-mutable.
//  IsAdmin  – set only on the seeded administrator account.
type User struct {
	ID       uint64
	Username string
	Email    string
	Password string
	IsAdmin  bool
}
