package model

// ConversationState carries the mutable per-run state through the workflow
// graph. Ownership model:
//   - A fresh state is created for every inbound message and handed to exactly
//     one workflow run; it is never shared across runs or turns.
//   - Stages mutate the state in place and pass it to the transition selector;
//     no aliasing, so no locking is required.
//   - Error, once set by a stage, is never cleared within the same run; its
//     presence is the sole trigger for the error-path transition.
//   - Metadata is append-only diagnostic annotation and is never read by
//     transition logic.
type ConversationState struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`

	OriginalMessage string `json:"original_message"`
	CurrentMessage  string `json:"current_message"`

	Intent           string  `json:"intent"`
	IntentConfidence float64 `json:"intent_confidence"`

	SelectedAgent string `json:"selected_agent"`

	AgentResponse      string   `json:"agent_response"`
	ResponseConfidence float64  `json:"response_confidence"`
	Sources            []string `json:"sources"`

	Suggestions []string `json:"suggestions"`

	Error string `json:"error"`

	Metadata map[string]any `json:"metadata"`
}

// NewConversationState creates the initial state for one workflow run.
func NewConversationState(userID, conversationID, message string) *ConversationState {
	return &ConversationState{
		UserID:          userID,
		ConversationID:  conversationID,
		OriginalMessage: message,
		CurrentMessage:  message,
		Sources:         []string{},
		Suggestions:     []string{},
		Metadata:        map[string]any{},
	}
}

// Annotate records a diagnostic value without overwriting the map holder.
func (s *ConversationState) Annotate(key string, value any) {
	if s.Metadata == nil {
		s.Metadata = map[string]any{}
	}
	s.Metadata[key] = value
}

// Failed reports whether a prior stage recorded a fault.
func (s *ConversationState) Failed() bool {
	return s.Error != ""
}

// QueryInput represents the input for processing user queries.
type QueryInput struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
}

// Reply is the shaped result returned to the caller of the session facade.
// The caller always receives a well-formed reply; internal faults surface only
// as AgentUsed == "ErrorHandler" with low confidence.
type Reply struct {
	Response       string   `json:"response"`
	AgentUsed      string   `json:"agent_used"`
	Confidence     float64  `json:"confidence"`
	ResponseTime   float64  `json:"response_time"`
	ConversationID string   `json:"conversation_id"`
	Suggestions    []string `json:"suggestions"`
}
