package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/smart-support-core/server/internal/agent/model"
)

// ModelGenerator adapts an Eino chat model to the Generator capability.
// Every call is bounded by the configured timeout; a timeout surfaces as an
// ordinary error and is folded into the workflow error path by the caller.
type ModelGenerator struct {
	chatModel einomodel.BaseChatModel
	timeout   time.Duration
}

func NewModelGenerator(chatModel einomodel.BaseChatModel, timeout time.Duration) *ModelGenerator {
	return &ModelGenerator{chatModel: chatModel, timeout: timeout}
}

func (g *ModelGenerator) Generate(ctx context.Context, systemPrompt, query string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(query),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("generate: empty model output")
	}
	return strings.TrimSpace(out.Content), nil
}

var _ model.Generator = (*ModelGenerator)(nil)
