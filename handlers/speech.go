package handlers

import (
	"net/http"

	"calendrix/services/speech"
	"calendrix/utils"

	"github.com/gin-gonic/gin"
)

// SpeechHandler serves text-to-speech for assistant replies.
type SpeechHandler struct {
	TTS speech.Synthesizer
}

func NewSpeechHandler(tts speech.Synthesizer) *SpeechHandler {
	return &SpeechHandler{TTS: tts}
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// Synthesize renders the given text as MP3 audio. Synthesis failures are
// reported as unavailable; the client falls back to showing text only.
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	audio, err := h.TTS.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Speech synthesis unavailable", err.Error())
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
