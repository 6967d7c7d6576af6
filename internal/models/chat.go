package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatSender string

const (
	SenderVisitor   ChatSender = "visitor"
	SenderAssistant ChatSender = "assistant"
)

type ChatSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID   string             `bson:"session_id" json:"session_id"` // uuid v4
	VisitorName string             `bson:"visitor_name,omitempty" json:"visitor_name,omitempty"`

	Status string `bson:"status" json:"status"` // active|ended

	StartedAt    time.Time  `bson:"started_at" json:"started_at"`
	EndedAt      *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	LastActiveAt time.Time  `bson:"last_active_at" json:"last_active_at"`

	MessageCount int64 `bson:"message_count" json:"message_count"`
}

// ChatMessage is append-only: messages accumulate per session and are never
// edited.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Sender    ChatSender         `bson:"sender" json:"sender"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
