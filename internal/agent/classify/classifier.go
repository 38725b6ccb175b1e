package classify

import (
	"context"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// IntentLabels is the fixed intent vocabulary the workflow routes on.
var IntentLabels = []string{
	"product_inquiry",
	"refund_request",
	"technical_issue",
	"general_question",
}

// ModelClassifier scores text against candidate labels with a zero-shot
// prompt over an Eino chat model.
type ModelClassifier struct {
	chatModel einomodel.BaseChatModel
	timeout   time.Duration
}

func NewModelClassifier(chatModel einomodel.BaseChatModel, timeout time.Duration) *ModelClassifier {
	return &ModelClassifier{chatModel: chatModel, timeout: timeout}
}

func (c *ModelClassifier) Classify(ctx context.Context, text string, labels []string) ([]model.IntentScore, error) {
	systemPrompt, err := prompts.RenderClassifySystem(ctx, labels)
	if err != nil {
		return nil, fmt.Errorf("render classify prompt: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(text),
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("classify: nil model output")
	}

	scores, err := ParseIntentScores(out.Content, labels)
	if err != nil {
		logx.Error().Err(err).Str("component", "classifier").Msg("failed to parse classification output")
		return nil, err
	}
	return scores, nil
}

var _ model.IntentClassifier = (*ModelClassifier)(nil)
