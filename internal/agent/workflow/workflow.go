package workflow

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/smart-support-core/server/internal/agent/agents"
	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/workflow/nodes"
	"github.com/smart-support-core/server/internal/agent/workflow/observers"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// Runner executes one compiled workflow pass over a conversation state.
// Invoke returns an error only for engine-level failures (compile bugs,
// context cancellation); domain faults terminate through the error handler
// stage and come back as a normal state.
type Runner interface {
	Invoke(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error)
}

// Config holds everything needed to compose the support workflow end-to-end.
type Config struct {
	Classifier model.IntentClassifier
	Labels     []string
	Responders agents.Registry
	Routing    model.RoutingConfig
}

// builder handles the construction of the staged conversation graph.
type builder struct {
	config *Config
	graph  *compose.Graph[*model.ConversationState, *model.ConversationState]
}

type runner struct {
	runnable compose.Runnable[*model.ConversationState, *model.ConversationState]
}

func (r *runner) Invoke(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error) {
	return r.runnable.Invoke(ctx, state, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// Build validates the configuration, assembles the staged graph and compiles
// it into a reusable Runner. Safe for concurrent Invoke calls afterwards.
func Build(ctx context.Context, cfg *Config) (Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("workflow config is nil")
	}
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("intent classifier is nil")
	}
	if len(cfg.Labels) == 0 {
		return nil, fmt.Errorf("intent label set is empty")
	}
	if cfg.Responders == nil {
		return nil, fmt.Errorf("responder registry is nil")
	}
	for _, name := range []string{agents.AgentProduct, agents.AgentRefund, agents.AgentTechnical} {
		if _, ok := cfg.Responders.Lookup(name); !ok {
			return nil, fmt.Errorf("responder %q is not registered", name)
		}
	}

	b := &builder{
		config: cfg,
		graph:  compose.NewGraph[*model.ConversationState, *model.ConversationState](),
	}

	if err := b.addNodes(); err != nil {
		return nil, err
	}
	if err := b.addEdges(); err != nil {
		return nil, err
	}
	if err := b.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := b.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Support workflow built successfully")
	return &runner{runnable: runnable}, nil
}

// addNodes registers the five processing stages.
func (b *builder) addNodes() error {
	stages := []struct {
		name   string
		lambda *compose.Lambda
	}{
		{nodes.NodeClassifyIntent, nodes.NewClassifyIntentNode(b.config.Classifier, b.config.Labels)},
		{nodes.NodeRouteToAgent, nodes.NewRouteToAgentNode(b.config.Responders, b.config.Routing.ConfidenceThreshold)},
		{nodes.NodeProcessWithAgent, nodes.NewProcessWithAgentNode(b.config.Responders)},
		{nodes.NodeGenerateSuggestions, nodes.NewGenerateSuggestionsNode()},
		{nodes.NodeHandleError, nodes.NewHandleErrorNode()},
	}

	for _, stage := range stages {
		if err := b.graph.AddLambdaNode(stage.name, stage.lambda); err != nil {
			logx.Error().Err(err).Str("node", stage.name).Msg("Error adding workflow node")
			return fmt.Errorf("error adding node %s: %w", stage.name, err)
		}
	}
	return nil
}

// addEdges creates the unconditional flow connections. Everything between the
// stages is branch-routed; only the entry edge and the two terminals are
// plain edges.
func (b *builder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeClassifyIntent},
		{nodes.NodeGenerateSuggestions, compose.END},
		{nodes.NodeHandleError, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			logx.Error().Err(err).Str("from", edge[0]).Str("to", edge[1]).Msg("Error adding workflow edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches places the error-escape decision after each fallible stage so a
// recorded fault anywhere funnels into the single error terminal.
func (b *builder) addBranches() error {
	branches := []struct {
		from string
		next string
	}{
		{nodes.NodeClassifyIntent, nodes.NodeRouteToAgent},
		{nodes.NodeRouteToAgent, nodes.NodeProcessWithAgent},
		{nodes.NodeProcessWithAgent, nodes.NodeGenerateSuggestions},
	}

	for _, br := range branches {
		branch := compose.NewGraphBranch(
			nodes.NewErrorEscapeCondition(br.next),
			map[string]bool{
				br.next:               true,
				nodes.NodeHandleError: true,
			},
		)
		if err := b.graph.AddBranch(br.from, branch); err != nil {
			logx.Error().Err(err).Str("from", br.from).Msg("Error adding error escape branch")
			return fmt.Errorf("error adding branch after %s: %w", br.from, err)
		}
	}
	return nil
}

// compile finalizes the graph. The stage chain is strictly acyclic, so a small
// fixed step limit is enough to catch wiring mistakes.
func (b *builder) compile(ctx context.Context) (compose.Runnable[*model.ConversationState, *model.ConversationState], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling workflow graph")
		return nil, fmt.Errorf("error compiling workflow graph: %w", err)
	}

	logx.Debug().Msg("Workflow graph compiled successfully")
	return runnable, nil
}
