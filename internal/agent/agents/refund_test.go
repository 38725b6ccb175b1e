package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
)

func TestClassifyRequestKind_PolicyCuesWinOnOverlap(t *testing.T) {
	r := NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3)

	tests := []struct {
		message string
		want    prompts.RefundPromptKind
	}{
		{"what is your return policy", prompts.RefundPolicyInquiry},
		{"how long do refunds take", prompts.RefundPolicyInquiry},
		{"i want refund for order ABC123", prompts.RefundRequest},
		{"please cancel my purchase", prompts.RefundRequest},
		{"tell me about refunds", prompts.RefundGeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, r.classifyRequestKind(tt.message))
		})
	}
}

func TestRelevantPolicies_SingleTierSelected(t *testing.T) {
	r := NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3)

	tests := []struct {
		message string
		want    string
	}{
		{"refund my premium plan", "premium_refund"},
		{"refund my digital download", "digital_refund"},
		{"cancel my monthly subscription", "subscription_refund"},
		{"refund my order", "standard_refund"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := r.relevantPolicies(tt.message)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestExtractOrderRef(t *testing.T) {
	ref := extractOrderRef("refund order #A12345, email me at jo@example.com")

	assert.Equal(t, "A12345", ref["order_number"])
	assert.Equal(t, "jo@example.com", ref["email"])
	assert.Equal(t, "", ref["transaction_id"])
}

func TestRefundResponder_AppendsOrderChecklistWhenNoReference(t *testing.T) {
	r := NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "Sure, I can help with that refund."}, 3)

	resp, err := r.Process(context.Background(), "i want refund for my purchase")
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "Order number or purchase receipt")
}

func TestRefundResponder_NoChecklistWithOrderNumber(t *testing.T) {
	r := NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "Processing refund for your order."}, 3)

	resp, err := r.Process(context.Background(), "i want refund for order #B99887")
	require.NoError(t, err)
	assert.NotContains(t, resp.Content, "Order number or purchase receipt")
}

func TestRefundResponder_SourcesIncludePolicyTable(t *testing.T) {
	retriever := &stubRetriever{docs: []model.Document{
		{Content: "Refunds are available within 14 days.", Source: "faq_refund_policy"},
	}}
	r := NewRefundResponder(retriever, &stubGenerator{content: "ok"}, 3)

	resp, err := r.Process(context.Background(), "what is your refund policy")
	require.NoError(t, err)
	assert.Contains(t, resp.Sources, "faq_refund_policy")
	assert.Contains(t, resp.Sources, "refund_policy")
}

func TestBuildContext_IncludesNonRefundableItems(t *testing.T) {
	r := NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3)

	ctx := r.buildContext("refund my order", nil)
	assert.Contains(t, ctx, "Non-refundable items")
	assert.Contains(t, ctx, "Gift cards")
	assert.True(t, strings.Contains(ctx, "Standard Refund"))
}
