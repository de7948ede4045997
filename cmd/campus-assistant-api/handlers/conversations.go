package handlers

import (
	"net/http"
	"strconv"

	"github.com/campushq/campus-assistant/cmd/campus-assistant-api/middleware"
	"github.com/campushq/campus-assistant/internal/campuserr"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

// ConversationsHandler serves chat transcript history.
type ConversationsHandler struct {
	logger *observability.Logger
	store  store.Store
}

// NewConversationsHandler creates a new conversations handler.
func NewConversationsHandler(logger *observability.Logger, s store.Store) *ConversationsHandler {
	return &ConversationsHandler{
		logger: logger,
		store:  s,
	}
}

// List handles GET /conversations?userId=&limit=.
func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = middleware.UserFromContext(ctx)
	}
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "userId is required", "")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			WriteError(w, http.StatusBadRequest, "invalid limit", "")
			return
		}
		limit = parsed
	}

	convs, err := h.store.ListConversations(ctx, userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("List conversations failed")
		WriteError(w, campuserr.HTTPStatus(err), "list conversations failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"userId":        userID,
		"count":         len(convs),
		"conversations": convs,
	})
}
