package agents

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
	logx "github.com/smart-support-core/server/pkg/logger"
)

var refundKeywords = []string{
	"refund", "return", "money back", "cancel order", "policy",
	"reimburse", "charge back", "dispute", "billing", "payment",
}

var refundBonusPhrases = []string{"want refund", "return policy", "money back"}

// Sub-request classification cues. Policy keywords are checked before request
// keywords; the check order is part of the contract since the sets overlap.
var (
	refundPolicyCues  = []string{"policy", "how long", "can i", "what is", "explain", "rules", "terms"}
	refundRequestCues = []string{"want refund", "return", "cancel", "money back", "process refund", "order"}
)

var orderRefPatterns = map[string]*regexp.Regexp{
	"order_number":   regexp.MustCompile(`(?i)order\s*(?:number|#)?\s*:?\s*([A-Z0-9]+)`),
	"email":          regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
	"transaction_id": regexp.MustCompile(`(?i)transaction\s*(?:id)?\s*:?\s*([A-Z0-9]+)`),
}

const refundFallbackContent = "I apologize, but I'm having trouble processing your refund request. Please contact our support team."

const refundOrderInfoAddendum = `To process your refund request, I'll need the following information:

1. Order number or purchase receipt
2. Email address used for the purchase
3. Reason for return
4. Product condition details

Once you provide this information, I'll help you start the refund process. Most refunds are processed within 3-5 business days.`

type refundPolicy struct {
	Period      string
	Conditions  []string
	ProcessTime string
}

var refundPolicies = map[string]refundPolicy{
	"standard_refund": {
		Period: "14 days",
		Conditions: []string{
			"Product must be in original condition",
			"Proof of purchase required",
			"No physical damage",
		},
		ProcessTime: "3-5 business days",
	},
	"premium_refund": {
		Period: "30 days",
		Conditions: []string{
			"Premium customer status",
			"Product must be in original condition",
			"Proof of purchase required",
		},
		ProcessTime: "1-3 business days",
	},
	"digital_refund": {
		Period: "7 days",
		Conditions: []string{
			"No downloads or usage after purchase",
			"Account verification required",
		},
		ProcessTime: "1-2 business days",
	},
	"subscription_refund": {
		Period: "Pro-rated to end of billing cycle",
		Conditions: []string{
			"Cancellation before next billing cycle",
			"Account in good standing",
		},
		ProcessTime: "5-7 business days",
	},
}

var nonRefundableItems = []string{
	"Customized products",
	"Gift cards",
	"Used digital content",
	"Services already rendered",
}

// RefundResponder handles refund and billing queries: it retrieves policy
// documents, augments them with the builtin policy table, classifies the
// request sub-type and generates against the matching prompt template.
type RefundResponder struct {
	retriever model.Retriever
	generator model.Generator
	topK      int
}

func NewRefundResponder(retriever model.Retriever, generator model.Generator, topK int) *RefundResponder {
	return &RefundResponder{retriever: retriever, generator: generator, topK: topK}
}

func (r *RefundResponder) Name() string {
	return AgentRefund
}

func (r *RefundResponder) Process(ctx context.Context, message string) (*Response, error) {
	start := time.Now()

	docs, err := r.retriever.Search(ctx, "refund policy "+message, r.topK)
	if err != nil {
		logx.Error().Err(err).Str("agent", r.Name()).Msg("policy retrieval failed")
		return fallback(r.Name(), refundFallbackContent, 0.3, start), nil
	}

	docContext := r.buildContext(message, docs)
	kind := r.classifyRequestKind(message)

	systemPrompt, err := prompts.RenderRefundSystem(ctx, kind, docContext)
	if err != nil {
		logx.Error().Err(err).Str("agent", r.Name()).Msg("refund prompt rendering failed")
		return fallback(r.Name(), refundFallbackContent, 0.3, start), nil
	}

	content, err := r.generator.Generate(ctx, systemPrompt, message)
	if err != nil {
		logx.Error().Err(err).Str("agent", r.Name()).Msg("refund generation failed")
		return fallback(r.Name(), refundFallbackContent, 0.3, start), nil
	}

	// An active refund request without an order reference cannot proceed;
	// append the required-information checklist.
	if kind == prompts.RefundRequest {
		if ref := extractOrderRef(message); ref["order_number"] == "" {
			content = content + "\n\n" + refundOrderInfoAddendum
		}
	}

	sources := make([]string, 0, len(docs)+1)
	for _, doc := range docs {
		sources = append(sources, doc.Source)
	}
	sources = append(sources, "refund_policy")

	return &Response{
		AgentName:      r.Name(),
		Content:        content,
		Confidence:     r.Confidence(message),
		Sources:        sources,
		ProcessingTime: time.Since(start),
	}, nil
}

// Confidence scores refund keyword overlap with a +2 raw bonus when a
// high-signal refund phrase is present.
func (r *RefundResponder) Confidence(message string) float64 {
	return keywordScore(message, refundKeywords, refundBonusPhrases, 2)
}

// classifyRequestKind buckets the message into policy inquiry, refund request
// or general inquiry. Policy cues win over request cues on overlap.
func (r *RefundResponder) classifyRequestKind(message string) prompts.RefundPromptKind {
	lower := strings.ToLower(message)
	if containsAny(lower, refundPolicyCues) {
		return prompts.RefundPolicyInquiry
	}
	if containsAny(lower, refundRequestCues) {
		return prompts.RefundRequest
	}
	return prompts.RefundGeneralInquiry
}

// relevantPolicies picks the policy entries matching the message; exactly one
// tier is selected, standard when nothing more specific matches.
func (r *RefundResponder) relevantPolicies(message string) []string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "premium"):
		return []string{"premium_refund"}
	case strings.Contains(lower, "digital"), strings.Contains(lower, "download"):
		return []string{"digital_refund"}
	case strings.Contains(lower, "subscription"), strings.Contains(lower, "monthly"):
		return []string{"subscription_refund"}
	default:
		return []string{"standard_refund"}
	}
}

func (r *RefundResponder) buildContext(message string, docs []model.Document) string {
	var parts []string

	for _, doc := range docs {
		parts = append(parts, "Policy Document: "+doc.Content)
	}

	for _, name := range r.relevantPolicies(message) {
		policy := refundPolicies[name]
		title := titleWords(strings.ReplaceAll(name, "_", " "))
		parts = append(parts, fmt.Sprintf(
			"%s:\n- Period: %s\n- Conditions: %s\n- Processing Time: %s",
			title, policy.Period, strings.Join(policy.Conditions, ", "), policy.ProcessTime,
		))
	}

	parts = append(parts, "Non-refundable items: "+strings.Join(nonRefundableItems, ", "))
	parts = append(parts, "Refund Guidelines:\n"+
		"- Always check customer eligibility first\n"+
		"- Provide clear timelines and expectations\n"+
		"- Explain required documentation\n"+
		"- Offer alternative solutions when appropriate\n"+
		"- Be empathetic and professional")

	return strings.Join(parts, "\n\n")
}

// titleWords uppercases the first letter of each space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractOrderRef pulls order number, email and transaction id references out
// of the message. Missing references come back as empty strings.
func extractOrderRef(message string) map[string]string {
	ref := map[string]string{}
	for name, pattern := range orderRefPatterns {
		ref[name] = ""
		if m := pattern.FindStringSubmatch(message); len(m) > 1 {
			ref[name] = m[1]
		}
	}
	return ref
}

var _ Responder = (*RefundResponder)(nil)
