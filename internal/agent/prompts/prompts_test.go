package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClassifySystem_SubstitutesTokens(t *testing.T) {
	labels := []string{"product_inquiry", "refund_request"}

	out, err := RenderClassifySystem(context.Background(), labels)
	require.NoError(t, err)

	assert.Contains(t, out, "product_inquiry")
	assert.Contains(t, out, "refund_request")
	assert.Contains(t, out, TupleDelim)
	assert.Contains(t, out, RecordDelim)
	assert.Contains(t, out, CompleteDelim)
	assert.NotContains(t, out, "{labels}")
	assert.NotContains(t, out, "{TD}")
}

func TestRenderClassifySystem_RejectsEmptyLabels(t *testing.T) {
	_, err := RenderClassifySystem(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderProductSystem_InlinesContext(t *testing.T) {
	out, err := RenderProductSystem(context.Background(), "Premium plan costs $29.99")
	require.NoError(t, err)

	assert.Contains(t, out, "Premium plan costs $29.99")
	assert.NotContains(t, out, "{context}")
}

func TestRenderRefundSystem_SelectsTemplateByKind(t *testing.T) {
	ctx := context.Background()

	policy, err := RenderRefundSystem(ctx, RefundPolicyInquiry, "ctx")
	require.NoError(t, err)
	request, err := RenderRefundSystem(ctx, RefundRequest, "ctx")
	require.NoError(t, err)
	general, err := RenderRefundSystem(ctx, RefundGeneralInquiry, "ctx")
	require.NoError(t, err)

	assert.NotEqual(t, policy, request)
	assert.NotEqual(t, request, general)

	// unknown kinds fall back to the general template
	fallback, err := RenderRefundSystem(ctx, RefundPromptKind("bogus"), "ctx")
	require.NoError(t, err)
	assert.Equal(t, general, fallback)
}

func TestRenderTechnicalSystem_InlinesContext(t *testing.T) {
	out, err := RenderTechnicalSystem(context.Background(), "Standard Solution for login_issues")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard Solution for login_issues")
}
