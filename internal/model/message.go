package model

import "time"

// Message represents a single chat message. CreatedAt is assigned
// exactly once when the message is stored; EditedAt stays nil until
// the first edit and is refreshed on every subsequent one. Both
// timestamps are taken from the store's freshness watermark, so a
// message can never be newer than the watermark.
//
// Fields:
//  ID        – unique numeric identifier, assigned once and never reused.
//  UserID    – owning author, immutable.
//  CreatedAt – instant of creation.
//  EditedAt  – instant of the latest edit, nil before the first edit.
//  Content   – message body, author-mutable.
type Message struct {
	ID        uint64
	UserID    uint64
	CreatedAt time.Time
	EditedAt  *time.Time
	Content   string
}
