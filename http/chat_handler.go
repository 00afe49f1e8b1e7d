package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/service"
)

type ChatHandler struct {
	advisor *service.AdvisorService
	logger  logrus.FieldLogger
}

func NewChatHandler(advisor *service.AdvisorService, logger logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{advisor: advisor, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	domain.ChatMessage
	Sources   []domain.Passage `json:"sources,omitempty"`
	Generated bool             `json:"generated"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	answer, err := h.advisor.Ask(r.Context(), req.Message)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ChatMessage: domain.ChatMessage{Role: "assistant", Content: answer.Content},
		Sources:     answer.Sources,
		Generated:   answer.Generated,
	}, h.logger)
}
