package models

import "time"

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single message in the conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionState tracks where the slot-filling conversation is. The state is
// stored explicitly rather than inferred from which fields happen to be set.
type SessionState string

const (
	StateCollecting           SessionState = "collecting"
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
	StateCommitted            SessionState = "committed"
)

// ChatSession holds per-session conversation state between turns.
// Pending is the last payload the model proposed that the user has not yet
// confirmed; it is overwritten by a newer extraction and cleared on commit.
type ChatSession struct {
	SessionID string          `json:"sessionId"`
	State     SessionState    `json:"state"`
	Turns     []ChatTurn      `json:"turns"`
	Pending   *BookingPayload `json:"pending,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Outcome tags what the assistant's latest reply amounted to. The model is
// best-effort: its output may contain no payload, a partial one, or one that
// does not parse at all, and callers must branch on that explicitly.
type Outcome string

const (
	OutcomeContinue   Outcome = "continue"   // plain reply, still collecting
	OutcomeIncomplete Outcome = "incomplete" // payload emitted but fields missing
	OutcomeProposal   Outcome = "proposal"   // full payload extracted
	OutcomeMalformed  Outcome = "malformed"  // payload block present but unparseable
)

// AssistantReply is the result of one conversation turn.
type AssistantReply struct {
	Outcome      Outcome         `json:"outcome"`
	Message      string          `json:"message"`
	CleanMessage string          `json:"clean_message"`
	Booking      *BookingPayload `json:"booking,omitempty"`
}
