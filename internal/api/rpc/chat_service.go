// Package rpc provides Connect service implementations for the Campus
// Assistant, so agent runtimes can call the chat pipeline over
// Connect/gRPC-Web without the JSON REST surface.
package rpc

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/campushq/campus-assistant/internal/assemble"
	"github.com/campushq/campus-assistant/internal/campuserr"
	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/observability"
)

// AskProcedure is the Connect procedure path for ChatService.Ask.
const AskProcedure = "/campus.v1.ChatService/Ask"

// ChatService implements the Connect chat service.
type ChatService struct {
	logger       *observability.Logger
	orchestrator *chat.Orchestrator
}

// NewChatService creates a new chat service.
func NewChatService(logger *observability.Logger, orchestrator *chat.Orchestrator) *ChatService {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &ChatService{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// AskRequest represents the Connect request message.
type AskRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// AskResponse represents the Connect response message.
type AskResponse struct {
	Sections       []*Section `json:"sections"`
	TotalResults   int32      `json:"total_results"`
	AIAnswer       string     `json:"ai_answer"`
	ConversationID string     `json:"conversation_id,omitempty"`
}

// Section represents one response section in the Connect message.
type Section struct {
	Type    string        `json:"type"`
	Title   string        `json:"title"`
	Message string        `json:"message,omitempty"`
	Items   []interface{} `json:"items,omitempty"`
}

// Ask handles Connect chat queries.
func (s *ChatService) Ask(ctx context.Context, req *connect.Request[AskRequest]) (*connect.Response[AskResponse], error) {
	msg := req.Msg

	result, err := s.orchestrator.Ask(ctx, msg.Message, msg.UserID)
	if err != nil {
		if campuserr.IsValidation(err) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		if errors.Is(err, campuserr.ErrStoreUnavailable) {
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		s.logger.Error().Err(err).Msg("Ask failed")
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(s.toResponse(result)), nil
}

// NewAskHandler returns the Connect handler for the Ask procedure, for
// mounting on an HTTP mux.
func NewAskHandler(service *ChatService) (string, *connect.Handler) {
	return AskProcedure, connect.NewUnaryHandler(AskProcedure, service.Ask)
}

func (s *ChatService) toResponse(result *chat.Result) *AskResponse {
	resp := &AskResponse{
		TotalResults:   int32(result.Structured.TotalResults),
		AIAnswer:       result.AIAnswer,
		ConversationID: result.ConversationID,
		Sections:       make([]*Section, 0, len(result.Structured.Sections)),
	}

	for _, section := range result.Structured.Sections {
		resp.Sections = append(resp.Sections, toSection(section))
	}
	return resp
}

func toSection(section assemble.Section) *Section {
	return &Section{
		Type:    string(section.Type),
		Title:   section.Title,
		Message: section.Message,
		Items:   section.Items,
	}
}
