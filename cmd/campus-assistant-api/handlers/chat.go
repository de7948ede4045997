// Package handlers provides HTTP handlers for the Campus Assistant API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campushq/campus-assistant/cmd/campus-assistant-api/middleware"
	"github.com/campushq/campus-assistant/internal/assemble"
	"github.com/campushq/campus-assistant/internal/campuserr"
	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/observability"
)

// ChatHandler handles chat requests.
type ChatHandler struct {
	logger       *observability.Logger
	orchestrator *chat.Orchestrator
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, orchestrator *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// ChatRequestDTO represents the API request for a chat message.
type ChatRequestDTO struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

// ChatResponseDTO represents the API response.
type ChatResponseDTO struct {
	Response       *assemble.StructuredResponse `json:"response"`
	AIAnswer       string                       `json:"aiAnswer"`
	ConversationID string                       `json:"conversationId,omitempty"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	requesterID := reqDTO.UserID
	if requesterID == "" {
		requesterID = middleware.UserFromContext(ctx)
	}

	result, err := h.orchestrator.Ask(ctx, reqDTO.Message, requesterID)
	if err != nil {
		status := campuserr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("Chat failed")
		}
		WriteError(w, status, "chat failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, ChatResponseDTO{
		Response:       result.Structured,
		AIAnswer:       result.AIAnswer,
		ConversationID: result.ConversationID,
	})
}

// WriteJSON writes a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	WriteJSON(w, status, resp)
}
