package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterviewRecord is a completed interview as stored in the interviews collection.
type InterviewRecord struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	SessionID   string             `json:"session_id" bson:"session_id"`
	Topic       string             `json:"topic" bson:"topic"`
	ChatHistory string             `json:"chat_history" bson:"chat_history"`
	Summary     string             `json:"summary" bson:"summary"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
