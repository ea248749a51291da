package handlers

import (
	"errors"
	"io"
	"net/http"

	"calendrix/middleware"
	"calendrix/services/assistant"
	"calendrix/services/speech"
	"calendrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const modelUnavailableReply = "I'm having a little trouble thinking right now. Could you say that again in a moment?"

// AssistantHandler serves the conversational endpoints.
type AssistantHandler struct {
	Svc assistant.AssistantService
	STT speech.Transcriber
}

func NewAssistantHandler(svc assistant.AssistantService, stt speech.Transcriber) *AssistantHandler {
	return &AssistantHandler{Svc: svc, STT: stt}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Start resets the conversation for the resolved session and returns the
// opening greeting.
func (h *AssistantHandler) Start(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	greeting, err := h.Svc.Start(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start conversation", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"message":    greeting,
	})
}

// Chat advances the conversation one turn with a typed message.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	h.respondWithTurn(c, req.Message, "")
}

// VoiceChat transcribes an uploaded recording and advances the conversation
// with the transcript, exactly as if it had been typed.
func (h *AssistantHandler) VoiceChat(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "No audio file provided", err.Error())
		return
	}
	defer file.Close()

	recording, err := io.ReadAll(io.LimitReader(file, speech.MaxRecordingBytes+1))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read audio file", err.Error())
		return
	}
	if len(recording) > speech.MaxRecordingBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "Audio file too large", "recordings are capped at 5 MB")
		return
	}
	if len(recording) < speech.MinRecordingBytes {
		utils.JSONError(c, http.StatusBadRequest, "Recording too short", "the recording does not contain enough audio to transcribe")
		return
	}

	transcript, err := h.STT.Transcribe(c.Request.Context(), recording, c.PostForm("language"))
	if err != nil {
		var transcriptionErr *speech.TranscriptionFailedError
		if errors.As(err, &transcriptionErr) {
			utils.JSONError(c, http.StatusBadRequest, "Could not transcribe audio", transcriptionErr.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Transcription service error", err.Error())
		return
	}

	h.respondWithTurn(c, transcript, transcript)
}

func (h *AssistantHandler) respondWithTurn(c *gin.Context, utterance, transcript string) {
	sessionID := middleware.SessionID(c)

	reply, err := h.Svc.Advance(c.Request.Context(), sessionID, utterance)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyUtterance) {
			utils.JSONError(c, http.StatusBadRequest, "Empty message", "say something for me to work with")
			return
		}
		var unavailableErr *assistant.ConversationUnavailableError
		if errors.As(err, &unavailableErr) {
			// The turn was not recorded; the client retries the same message.
			utils.GetLogger().Warn("Model unavailable", zap.String("sessionID", sessionID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{
				"message":       modelUnavailableReply,
				"clean_message": modelUnavailableReply,
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Conversation failed", err.Error())
		return
	}

	resp := gin.H{
		"outcome":       reply.Outcome,
		"message":       reply.Message,
		"clean_message": reply.CleanMessage,
	}
	if reply.Booking != nil {
		resp["booking"] = reply.Booking
	}
	if transcript != "" {
		resp["transcript"] = transcript
	}
	c.JSON(http.StatusOK, resp)
}
