package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-support-core/server/internal/agent/agents"
	"github.com/smart-support-core/server/internal/agent/model"
)

var testLabels = []string{"product_inquiry", "refund_request", "technical_issue", "general_question"}

// stubClassifier returns fixed scores or a fixed error.
type stubClassifier struct {
	scores []model.IntentScore
	err    error
}

func (s *stubClassifier) Classify(_ context.Context, _ string, _ []string) ([]model.IntentScore, error) {
	return s.scores, s.err
}

// stubResponder returns a canned response without touching any dependency.
type stubResponder struct {
	name       string
	content    string
	confidence float64
	err        error
}

func (s *stubResponder) Name() string { return s.name }

func (s *stubResponder) Process(_ context.Context, _ string) (*agents.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &agents.Response{
		AgentName:  s.name,
		Content:    s.content,
		Confidence: s.confidence,
		Sources:    []string{"stub"},
	}, nil
}

func (s *stubResponder) Confidence(_ string) float64 { return s.confidence }

func testRegistry() agents.Registry {
	return agents.NewRegistry(
		&stubResponder{name: agents.AgentProduct, content: "product answer", confidence: 0.8},
		&stubResponder{name: agents.AgentRefund, content: "refund answer", confidence: 0.75},
		&stubResponder{name: agents.AgentTechnical, content: "technical answer", confidence: 0.7},
	)
}

func buildEngine(t *testing.T, classifier model.IntentClassifier, registry agents.Registry) Runner {
	t.Helper()
	engine, err := Build(context.Background(), &Config{
		Classifier: classifier,
		Labels:     testLabels,
		Responders: registry,
		Routing:    model.RoutingConfig{ConfidenceThreshold: 0.7},
	})
	require.NoError(t, err)
	return engine
}

func TestWorkflow_ProductInquiryRoutesToProductAgent(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "product_inquiry", Score: 0.9},
		{Label: "refund_request", Score: 0.05},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "what is the price"))
	require.NoError(t, err)

	assert.Equal(t, "product_inquiry", out.Intent)
	assert.Equal(t, agents.AgentProduct, out.SelectedAgent)
	assert.Equal(t, "product answer", out.AgentResponse)
	assert.Equal(t, 0.8, out.ResponseConfidence)
	assert.Equal(t, []string{
		"Compare with other products",
		"Check current promotions",
		"View product reviews",
	}, out.Suggestions)
	assert.Empty(t, out.Error)
}

func TestWorkflow_RefundRequestRoutesToRefundAgent(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "refund_request", Score: 0.85},
		{Label: "product_inquiry", Score: 0.1},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "i want a refund"))
	require.NoError(t, err)

	assert.Equal(t, agents.AgentRefund, out.SelectedAgent)
	assert.Equal(t, "refund answer", out.AgentResponse)
	assert.Equal(t, []string{
		"Check refund status",
		"Contact billing support",
		"View purchase history",
	}, out.Suggestions)
}

func TestWorkflow_ClassifierFaultTakesErrorPath(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("deadline exceeded")}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "hello"))
	require.NoError(t, err)

	assert.Equal(t, agents.AgentErrorHandler, out.SelectedAgent)
	assert.Equal(t, 0.1, out.ResponseConfidence)
	assert.Contains(t, out.AgentResponse, "technical difficulties")
	assert.Len(t, out.Suggestions, 3)
	assert.Contains(t, out.Error, "Intent classification failed")
	// responders were never reached
	assert.Empty(t, out.Sources)
}

func TestWorkflow_LowConfidenceRoutesToDefaultAgent(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "general_question", Score: 0.4},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "hi, can you help"))
	require.NoError(t, err)

	assert.Equal(t, "general_question", out.Intent)
	assert.Equal(t, agents.AgentProduct, out.SelectedAgent)
	assert.Empty(t, out.Error)
}

func TestWorkflow_ThresholdIsExclusive(t *testing.T) {
	// exactly at the threshold the classification is still not trusted
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "technical_issue", Score: 0.7},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "app is broken"))
	require.NoError(t, err)
	assert.Equal(t, agents.AgentProduct, out.SelectedAgent)
}

func TestWorkflow_TieBreakKeepsFirstEncounteredLabel(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "refund_request", Score: 0.8},
		{Label: "technical_issue", Score: 0.8},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "refund or bug?"))
	require.NoError(t, err)
	assert.Equal(t, "refund_request", out.Intent)
	assert.Equal(t, agents.AgentRefund, out.SelectedAgent)
}

func TestWorkflow_ResponderErrorTakesErrorPath(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "technical_issue", Score: 0.9},
	}}
	registry := agents.NewRegistry(
		&stubResponder{name: agents.AgentProduct, content: "ok", confidence: 0.5},
		&stubResponder{name: agents.AgentRefund, content: "ok", confidence: 0.5},
		&stubResponder{name: agents.AgentTechnical, err: errors.New("boom")},
	)
	engine := buildEngine(t, classifier, registry)

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "it crashed"))
	require.NoError(t, err)

	assert.Equal(t, agents.AgentErrorHandler, out.SelectedAgent)
	assert.Contains(t, out.Error, "Agent processing failed")
}

func TestWorkflow_OutOfRangeConfidenceTakesErrorPath(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "product_inquiry", Score: 0.9},
	}}
	registry := agents.NewRegistry(
		&stubResponder{name: agents.AgentProduct, content: "ok", confidence: 1.5},
		&stubResponder{name: agents.AgentRefund, content: "ok", confidence: 0.5},
		&stubResponder{name: agents.AgentTechnical, content: "ok", confidence: 0.5},
	)
	engine := buildEngine(t, classifier, registry)

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "price?"))
	require.NoError(t, err)

	assert.Equal(t, agents.AgentErrorHandler, out.SelectedAgent)
	assert.Contains(t, out.Error, "out of range")
}

func TestWorkflow_MetadataRecordsDiagnostics(t *testing.T) {
	classifier := &stubClassifier{scores: []model.IntentScore{
		{Label: "product_inquiry", Score: 0.9},
		{Label: "refund_request", Score: 0.1},
	}}
	engine := buildEngine(t, classifier, testRegistry())

	out, err := engine.Invoke(context.Background(), model.NewConversationState("u1", "c1", "price?"))
	require.NoError(t, err)

	assert.Contains(t, out.Metadata, "intent_scores")
	assert.Contains(t, out.Metadata, "routing_reason")
	assert.Contains(t, out.Metadata, "agent_processing_time")
	assert.Equal(t, "Intent: product_inquiry, Confidence: 0.90", out.Metadata["routing_reason"])
}

func TestBuild_RejectsIncompleteConfig(t *testing.T) {
	ctx := context.Background()
	classifier := &stubClassifier{}

	_, err := Build(ctx, nil)
	assert.Error(t, err)

	_, err = Build(ctx, &Config{Labels: testLabels, Responders: testRegistry()})
	assert.Error(t, err)

	_, err = Build(ctx, &Config{Classifier: classifier, Responders: testRegistry()})
	assert.Error(t, err)

	// a registry missing one of the three responders is rejected up front
	partial := agents.NewRegistry(&stubResponder{name: agents.AgentProduct})
	_, err = Build(ctx, &Config{Classifier: classifier, Labels: testLabels, Responders: partial})
	assert.Error(t, err)
}
