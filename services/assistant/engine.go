package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"calendrix/models"
	"calendrix/utils"

	"go.uber.org/zap"
)

const restateTimePrompt = "That time range doesn't work: the end must come after the start. What time? (e.g., 4 PM to 6 PM or 4:00-6:00)"

// DefaultAssistantService implements AssistantService.
type DefaultAssistantService struct {
	Model    ChatModel
	Sessions SessionStore
	Now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDefaultAssistantService(model ChatModel, sessions SessionStore) *DefaultAssistantService {
	return &DefaultAssistantService{
		Model:    model,
		Sessions: sessions,
		Now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing turns for one session. Turns must
// be applied in arrival order; concurrent requests for the same session would
// otherwise race on the read-modify-write cycle.
func (s *DefaultAssistantService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// Start resets the session and returns the opening greeting.
func (s *DefaultAssistantService) Start(ctx context.Context, sessionID string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := &models.ChatSession{
		SessionID: sessionID,
		State:     models.StateCollecting,
		Turns:     []models.ChatTurn{{Role: models.RoleAssistant, Content: Greeting}},
	}
	if err := s.Sessions.Set(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return Greeting, nil
}

// Advance runs one conversation turn: append the utterance, call the model
// with the full history, extract any payload, and write the session back.
// A model failure leaves the session untouched so the turn can be retried.
func (s *DefaultAssistantService) Advance(ctx context.Context, sessionID, utterance string) (*models.AssistantReply, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, ErrEmptyUtterance
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	turns := make([]models.ChatTurn, 0, len(session.Turns)+1)
	turns = append(turns, session.Turns...)
	turns = append(turns, models.ChatTurn{Role: models.RoleUser, Content: utterance})

	replyText, err := s.Model.Converse(ctx, SystemInstruction(s.Now()), turns)
	if err != nil {
		return nil, &ConversationUnavailableError{Cause: err}
	}

	session.Turns = append(turns, models.ChatTurn{Role: models.RoleAssistant, Content: replyText})

	reply := &models.AssistantReply{
		Outcome:      models.OutcomeContinue,
		Message:      replyText,
		CleanMessage: StripPayload(replyText),
	}

	payload, extractErr := ExtractPayload(replyText)
	switch {
	case extractErr == nil && payload != nil:
		// A newer extraction always overwrites the previous pending payload.
		session.Pending = payload
		session.State = models.StateAwaitingConfirmation
		reply.Outcome = models.OutcomeProposal
		reply.Booking = payload
	case extractErr != nil:
		var incomplete *IncompletePayloadError
		var badRange *InvalidTimeRangeError
		switch {
		case errors.As(extractErr, &incomplete):
			// Missing fields are never an error for the user; keep collecting.
			reply.Outcome = models.OutcomeIncomplete
		case errors.As(extractErr, &badRange):
			session.Pending = nil
			session.State = models.StateCollecting
			reply.Outcome = models.OutcomeMalformed
			reply.CleanMessage = restateTimePrompt
		default:
			utils.GetLogger().Warn("assistant: discarding malformed payload block",
				zap.String("sessionID", sessionID), zap.Error(extractErr))
			reply.Outcome = models.OutcomeMalformed
		}
	}

	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return reply, nil
}

// PendingPayload returns the last proposed-but-uncommitted payload, if any.
func (s *DefaultAssistantService) PendingPayload(ctx context.Context, sessionID string) (*models.BookingPayload, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Pending, nil
}

// MarkCommitted clears the pending payload after a successful commit.
func (s *DefaultAssistantService) MarkCommitted(ctx context.Context, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Pending = nil
	session.State = models.StateCommitted
	return s.Sessions.Set(ctx, session)
}
