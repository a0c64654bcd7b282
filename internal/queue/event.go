// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the queue carrying chat activity events.
const ActivityQueueName = "chat.activity"

// Event kinds published for message lifecycle changes.
const (
	KindCreated = "created"
	KindEdited  = "edited"
	KindDeleted = "deleted"
)

// MessageActivityEvent is published whenever a chat message is
// created, edited or deleted. It carries enough context for
// downstream consumers to log or notify without querying the store.
type MessageActivityEvent struct {
	EventID    string `json:"event_id"`
	Kind       string `json:"kind"` // created | edited | deleted
	MsgID      uint64 `json:"msg_id"`
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	Content    string `json:"content"`
	OccurredAt string `json:"occurred_at"`
}
