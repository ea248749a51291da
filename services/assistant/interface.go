package assistant

import (
	"context"

	"calendrix/models"
)

// ChatModel is the language model behind the dialogue engine. It receives the
// ordered turn history plus one fixed system instruction and returns a
// free-text reply that may contain the booking JSON block.
type ChatModel interface {
	Converse(ctx context.Context, system string, turns []models.ChatTurn) (string, error)
}

// SessionStore holds per-session conversation state. Get on an unknown
// session returns a fresh empty session, not an error.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Set(ctx context.Context, session *models.ChatSession) error
	Clear(ctx context.Context, sessionID string) error
}

// AssistantService drives the slot-filling conversation. One Advance call is
// one atomic turn: read session, call the model, extract, write session back.
type AssistantService interface {
	Start(ctx context.Context, sessionID string) (string, error)
	Advance(ctx context.Context, sessionID, utterance string) (*models.AssistantReply, error)
	PendingPayload(ctx context.Context, sessionID string) (*models.BookingPayload, error)
	MarkCommitted(ctx context.Context, sessionID string) error
}
