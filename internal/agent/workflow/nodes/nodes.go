package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/smart-support-core/server/internal/agent/agents"
	"github.com/smart-support-core/server/internal/agent/model"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// Node names double as the stage identifiers in the workflow graph.
const (
	NodeClassifyIntent      = "ClassifyIntent"
	NodeRouteToAgent        = "RouteToAgent"
	NodeProcessWithAgent    = "ProcessWithAgent"
	NodeGenerateSuggestions = "GenerateSuggestions"
	NodeHandleError         = "HandleError"
)

// agentMapping is the deterministic intent → responder lookup table.
// general_question deliberately maps to the product responder, which doubles
// as the default catch-all.
var agentMapping = map[string]string{
	"product_inquiry":  agents.AgentProduct,
	"refund_request":   agents.AgentRefund,
	"technical_issue":  agents.AgentTechnical,
	"general_question": agents.AgentProduct,
}

const defaultAgent = agents.AgentProduct

const errorResponseContent = "I apologize, but I'm experiencing technical difficulties. Please try again or contact support."

var errorSuggestions = []string{
	"Try asking your question differently",
	"Contact human support",
	"Check system status",
}

// NewErrorEscapeCondition builds the transition selector placed after each
// non-terminal node: a recorded fault escapes to HandleError, otherwise the
// run proceeds to next. This single policy makes failure handling uniform
// across all stages.
func NewErrorEscapeCondition(next string) func(context.Context, *model.ConversationState) (string, error) {
	return func(_ context.Context, state *model.ConversationState) (string, error) {
		if state.Failed() {
			logx.Debug().
				Str("conversation_id", state.ConversationID).
				Str("error", state.Error).
				Str("next", NodeHandleError).
				Msg("Stage fault recorded - escaping to error handler")
			return NodeHandleError, nil
		}
		return next, nil
	}
}

// NewClassifyIntentNode creates the ClassifyIntent stage: score the current
// message against the intent vocabulary and keep the arg-max label. Ties are
// broken by the first-encountered label in classifier order. Classifier
// faults and empty score lists are recorded into the state, never propagated.
func NewClassifyIntentNode(classifier model.IntentClassifier, labels []string) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error) {
		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Msg("Classifying intent")

		scores, err := classifier.Classify(ctx, state.CurrentMessage, labels)
		if err != nil {
			state.Error = fmt.Sprintf("Intent classification failed: %v", err)
			return state, nil
		}
		if len(scores) == 0 {
			state.Error = "Intent classification failed: empty score list"
			return state, nil
		}

		// strict greater-than keeps the first-encountered label on ties
		best := scores[0]
		for _, s := range scores[1:] {
			if s.Score > best.Score {
				best = s
			}
		}

		state.Intent = best.Label
		state.IntentConfidence = best.Score

		scoreMap := make(map[string]float64, len(scores))
		for _, s := range scores {
			scoreMap[s.Label] = s.Score
		}
		state.Annotate("intent_scores", scoreMap)

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("intent", best.Label).
			Float64("confidence", best.Score).
			Msg("Intent classified")
		return state, nil
	})
}

// NewRouteToAgentNode creates the RouteToAgent stage: look the intent up in
// the agent mapping, overriding to the default responder when the
// classification confidence is at or below the threshold. A routed name
// missing from the registry is an invariant violation and still takes the
// error path.
func NewRouteToAgentNode(registry agents.Registry, threshold float64) *compose.Lambda {
	return compose.InvokableLambda(func(_ context.Context, state *model.ConversationState) (*model.ConversationState, error) {
		selected := defaultAgent
		if state.IntentConfidence > threshold {
			if mapped, ok := agentMapping[state.Intent]; ok {
				selected = mapped
			}
		}

		if _, ok := registry.Lookup(selected); !ok {
			state.Error = fmt.Sprintf("Routing failed: agent %q not configured", selected)
			return state, nil
		}

		state.SelectedAgent = selected
		state.Annotate("routing_reason", fmt.Sprintf("Intent: %s, Confidence: %.2f", state.Intent, state.IntentConfidence))

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("intent", state.Intent).
			Str("agent", selected).
			Msg("Routed to agent")
		return state, nil
	})
}

// NewProcessWithAgentNode creates the ProcessWithAgent stage: invoke the
// selected responder and copy its result into the state. Responders promise
// not to fault, but a misbehaving one (error, nil response, confidence
// outside [0,1]) is still folded into the error path.
func NewProcessWithAgentNode(registry agents.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error) {
		responder, ok := registry.Lookup(state.SelectedAgent)
		if !ok {
			state.Error = fmt.Sprintf("Agent processing failed: agent %q not configured", state.SelectedAgent)
			return state, nil
		}

		resp, err := responder.Process(ctx, state.CurrentMessage)
		if err != nil {
			state.Error = fmt.Sprintf("Agent processing failed: %v", err)
			return state, nil
		}
		if resp == nil {
			state.Error = "Agent processing failed: nil response"
			return state, nil
		}
		if resp.Confidence < 0 || resp.Confidence > 1 {
			state.Error = fmt.Sprintf("Agent processing failed: confidence %.3f out of range", resp.Confidence)
			return state, nil
		}

		state.AgentResponse = resp.Content
		state.ResponseConfidence = resp.Confidence
		state.Sources = resp.Sources
		state.Annotate("agent_processing_time", resp.ProcessingTime.Seconds())

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("agent", state.SelectedAgent).
			Float64("confidence", resp.Confidence).
			Msg("Agent response generated")
		return state, nil
	})
}

// NewGenerateSuggestionsNode creates the normal terminal stage: attach the
// follow-up suggestions for the selected agent. Pure table lookup, no
// external dependency, cannot fault.
func NewGenerateSuggestionsNode() *compose.Lambda {
	return compose.InvokableLambda(func(_ context.Context, state *model.ConversationState) (*model.ConversationState, error) {
		state.Suggestions = SuggestionsFor(state.SelectedAgent)

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Int("suggestions", len(state.Suggestions)).
			Msg("Suggestions generated")
		return state, nil
	})
}

// NewHandleErrorNode creates the error terminal stage: overwrite the response
// with the fixed apology, force the ErrorHandler agent name and the fallback
// suggestion list. Pure state mutation so this stage can never itself fault;
// metadata written by earlier stages is preserved.
func NewHandleErrorNode() *compose.Lambda {
	return compose.InvokableLambda(func(_ context.Context, state *model.ConversationState) (*model.ConversationState, error) {
		logx.Error().
			Str("conversation_id", state.ConversationID).
			Str("error", state.Error).
			Msg("Handling workflow error")

		state.AgentResponse = errorResponseContent
		state.SelectedAgent = agents.AgentErrorHandler
		state.ResponseConfidence = 0.1
		state.Suggestions = append([]string{}, errorSuggestions...)
		return state, nil
	})
}
