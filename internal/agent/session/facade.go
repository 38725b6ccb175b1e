// Package session exposes the single entry point callers use to talk to the
// support workflow: message processing, history access and state inspection.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smart-support-core/server/internal/agent/agents"
	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/workflow"
	"github.com/smart-support-core/server/internal/observability"
	logx "github.com/smart-support-core/server/pkg/logger"
)

const fallbackResponseContent = "I'm sorry, I encountered an error processing your message. Please try again."

var fallbackSuggestions = []string{
	"Try asking your question differently",
	"Contact human support",
}

// Facade coordinates one workflow run per inbound message and owns the
// surrounding conversation bookkeeping. It never returns an error to the
// caller; every failure mode degrades to a well-formed reply.
type Facade struct {
	engine       workflow.Runner
	store        model.ConversationStore
	historyLimit int

	// last completed state per conversation, kept for inspection only
	states sync.Map
}

func NewFacade(engine workflow.Runner, store model.ConversationStore, conv model.ConversationConfig) *Facade {
	return &Facade{
		engine:       engine,
		store:        store,
		historyLimit: conv.HistoryLimit,
	}
}

// ProcessMessage runs one message through the workflow and shapes the result.
// A missing conversation id starts a new conversation. History persistence is
// best-effort: a store failure is logged and the run continues.
func (f *Facade) ProcessMessage(ctx context.Context, in model.QueryInput) *model.Reply {
	start := time.Now()

	conversationID := in.ConversationID
	if conversationID == "" {
		conversationID = "conv_" + uuid.NewString()[:8]
	}

	f.persist(ctx, model.NewMessage(model.RoleUser, in.Query, in.UserID, conversationID))

	state, err := f.run(ctx, model.NewConversationState(in.UserID, conversationID, in.Query))
	if err != nil {
		logx.Error().
			Err(err).
			Str("conversation_id", conversationID).
			Msg("Workflow run failed outside the error stage")
		observability.RecordWorkflowRun(agents.AgentErrorHandler, "fallback", int(time.Since(start).Milliseconds()))
		return f.fallbackReply(in.ConversationID, time.Since(start))
	}

	f.persist(ctx, assistantMessage(state))
	f.states.Store(conversationID, state)

	status := "success"
	if state.SelectedAgent == agents.AgentErrorHandler {
		status = "error"
	}
	observability.RecordWorkflowRun(state.SelectedAgent, status, int(time.Since(start).Milliseconds()))

	return &model.Reply{
		Response:       state.AgentResponse,
		AgentUsed:      state.SelectedAgent,
		Confidence:     state.ResponseConfidence,
		ResponseTime:   time.Since(start).Seconds(),
		ConversationID: conversationID,
		Suggestions:    state.Suggestions,
	}
}

// run invokes the engine with a recover guard. The workflow already funnels
// stage faults into its error terminal; this guard only covers engine-level
// failures and panics that would otherwise escape to the caller.
func (f *Facade) run(ctx context.Context, state *model.ConversationState) (out *model.ConversationState, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("workflow panic: %v", r)
		}
	}()

	out, err = f.engine.Invoke(ctx, state)
	if err == nil && out == nil {
		err = fmt.Errorf("workflow returned nil state")
	}
	return out, err
}

// fallbackReply is the outer safety net: a fixed apology with a fresh error
// conversation id when the caller did not supply one.
func (f *Facade) fallbackReply(conversationID string, elapsed time.Duration) *model.Reply {
	if conversationID == "" {
		conversationID = "error_" + uuid.NewString()[:8]
	}
	return &model.Reply{
		Response:       fallbackResponseContent,
		AgentUsed:      agents.AgentErrorHandler,
		Confidence:     0.1,
		ResponseTime:   elapsed.Seconds(),
		ConversationID: conversationID,
		Suggestions:    append([]string{}, fallbackSuggestions...),
	}
}

func (f *Facade) persist(ctx context.Context, msg *model.Message) {
	if err := f.store.AddMessage(ctx, msg.ConversationID, msg); err != nil {
		logx.Warn().
			Err(err).
			Str("conversation_id", msg.ConversationID).
			Str("role", string(msg.Role)).
			Msg("Failed to persist conversation message")
		return
	}
	observability.RecordConversationMessage(string(msg.Role))
}

func assistantMessage(state *model.ConversationState) *model.Message {
	msg := model.NewMessage(model.RoleAssistant, state.AgentResponse, state.UserID, state.ConversationID)
	msg.AgentName = state.SelectedAgent
	return msg
}

// History returns up to limit recent messages, newest first. A non-positive
// limit falls back to the configured default; requests above the default are
// capped.
func (f *Facade) History(ctx context.Context, conversationID string, limit int) ([]*model.Message, error) {
	if limit <= 0 || limit > f.historyLimit {
		limit = f.historyLimit
	}
	return f.store.RecentMessages(ctx, conversationID, limit)
}

// ClearConversation drops the persisted history and the state snapshot.
func (f *Facade) ClearConversation(ctx context.Context, conversationID string) error {
	f.states.Delete(conversationID)
	return f.store.ClearHistory(ctx, conversationID)
}

// DebugState returns the final workflow state of the conversation's most
// recent run, when one exists.
func (f *Facade) DebugState(conversationID string) (*model.ConversationState, bool) {
	v, ok := f.states.Load(conversationID)
	if !ok {
		return nil, false
	}
	return v.(*model.ConversationState), true
}
