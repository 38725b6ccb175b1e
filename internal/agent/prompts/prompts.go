package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// Classification record delimiters shared with the intent parser.
const (
	TupleDelim    = "<||>"
	RecordDelim   = "##"
	CompleteDelim = "<|COMPLETE|>"
)

//go:embed template/classify_prompt.txt
var classifySystemPrompt string

//go:embed template/product_prompt.txt
var productSystemPrompt string

//go:embed template/refund_policy_prompt.txt
var refundPolicySystemPrompt string

//go:embed template/refund_request_prompt.txt
var refundRequestSystemPrompt string

//go:embed template/refund_general_prompt.txt
var refundGeneralSystemPrompt string

//go:embed template/technical_prompt.txt
var technicalSystemPrompt string

// RefundPromptKind selects one of the three canned refund templates.
type RefundPromptKind string

const (
	RefundPolicyInquiry  RefundPromptKind = "policy_inquiry"
	RefundRequest        RefundPromptKind = "refund_request"
	RefundGeneralInquiry RefundPromptKind = "general_inquiry"
)

// RenderClassifySystem renders the zero-shot classification system prompt for
// the given candidate labels.
func RenderClassifySystem(ctx context.Context, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("no candidate labels")
	}
	content := strings.NewReplacer(
		"{TD}", TupleDelim,
		"{RD}", RecordDelim,
		"{CD}", CompleteDelim,
		"{labels}", strings.Join(labels, "\n"),
	).Replace(classifySystemPrompt)
	return render(ctx, content)
}

// RenderProductSystem renders the product consultant system prompt with the
// retrieved context inlined.
func RenderProductSystem(ctx context.Context, docContext string) (string, error) {
	return renderWithContext(ctx, productSystemPrompt, docContext)
}

// RenderRefundSystem renders the refund system prompt matching the classified
// request kind. Unknown kinds fall back to the general template.
func RenderRefundSystem(ctx context.Context, kind RefundPromptKind, docContext string) (string, error) {
	var tmpl string
	switch kind {
	case RefundPolicyInquiry:
		tmpl = refundPolicySystemPrompt
	case RefundRequest:
		tmpl = refundRequestSystemPrompt
	default:
		tmpl = refundGeneralSystemPrompt
	}
	return renderWithContext(ctx, tmpl, docContext)
}

// RenderTechnicalSystem renders the technical support system prompt with the
// troubleshooting context inlined.
func RenderTechnicalSystem(ctx context.Context, docContext string) (string, error) {
	return renderWithContext(ctx, technicalSystemPrompt, docContext)
}

func renderWithContext(ctx context.Context, tmpl, docContext string) (string, error) {
	content := strings.ReplaceAll(tmpl, "{context}", docContext)
	return render(ctx, content)
}

// render wraps the content via the Eino prompt component using a messages
// placeholder so prompt callbacks are emitted. Known tokens are substituted
// beforehand to avoid interfering with braces inside the template body.
func render(ctx context.Context, content string) (string, error) {
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
