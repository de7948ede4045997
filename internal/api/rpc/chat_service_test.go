package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/contextual"
	"github.com/campushq/campus-assistant/internal/store"
)

func newChatService(t *testing.T) *ChatService {
	t.Helper()

	s := store.NewMemoryStore()
	ctx := context.Background()
	_, err := s.Add(ctx, store.CategoryEvents, store.Record{
		"title": "Freshers Day", "date": "2026-09-12",
	})
	require.NoError(t, err)

	retriever := contextual.NewRetriever(s, nil, contextual.Options{})
	orchestrator := chat.NewOrchestrator(s, retriever, nil, nil, chat.Options{SkipTranscript: true})
	return NewChatService(nil, orchestrator)
}

func TestChatServiceAsk(t *testing.T) {
	svc := newChatService(t)

	resp, err := svc.Ask(context.Background(), connect.NewRequest(&AskRequest{
		Message: "list all events",
		UserID:  "agent-1",
	}))
	require.NoError(t, err)

	assert.Equal(t, int32(1), resp.Msg.TotalResults)
	require.NotEmpty(t, resp.Msg.Sections)
	assert.Equal(t, "events", resp.Msg.Sections[0].Type)
	assert.NotEmpty(t, resp.Msg.AIAnswer)
}

func TestChatServiceAskValidation(t *testing.T) {
	svc := newChatService(t)

	_, err := svc.Ask(context.Background(), connect.NewRequest(&AskRequest{Message: ""}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAskHandlerOverHTTP(t *testing.T) {
	svc := newChatService(t)
	path, handler := NewAskHandler(svc)
	assert.Equal(t, AskProcedure, path)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := connect.NewClient[AskRequest, AskResponse](
		server.Client(), server.URL+AskProcedure,
	)

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&AskRequest{
		Message: "list all events",
	}))
	require.NoError(t, err)
	assert.Equal(t, int32(1), resp.Msg.TotalResults)
}
