package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
	logx "github.com/smart-support-core/server/pkg/logger"
)

var technicalKeywords = []string{
	"error", "bug", "crash", "login", "technical", "support", "help",
	"issue", "problem", "not working", "freeze", "stuck", "slow",
	"api", "code", "system", "server", "connection", "timeout",
}

var technicalBonusPhrases = []string{"error code", "exception", "stack trace", "debug"}

const technicalFallbackContent = "I'm experiencing technical difficulties. Please try again or contact our technical support team."

const generalTechnicalIssue = "general_technical"

type troubleshootingSolution struct {
	Steps      []string
	Escalation string
}

// issueCategory pairs a category name with its detection keywords. Categories
// are checked in declaration order; the first match wins.
type issueCategory struct {
	Name     string
	Keywords []string
}

var issueCategories = []issueCategory{
	{Name: "login_issues", Keywords: []string{"login", "sign in", "password", "authentication", "access denied", "locked out"}},
	{Name: "app_crashes", Keywords: []string{"crash", "freeze", "stuck", "not working", "stops responding", "hangs"}},
	{Name: "payment_issues", Keywords: []string{"payment", "billing", "card", "charge", "transaction", "declined"}},
	{Name: "performance_issues", Keywords: []string{"slow", "loading", "timeout", "lag", "performance", "speed"}},
	{Name: "api_errors", Keywords: []string{"api", "endpoint", "error code", "400", "500", "unauthorized", "forbidden"}},
}

var troubleshootingDB = map[string]troubleshootingSolution{
	"login_issues": {
		Steps: []string{
			"Check your internet connection",
			"Clear browser cache and cookies",
			"Try incognito/private browsing mode",
			"Reset your password if needed",
		},
		Escalation: "If issue persists, contact technical support",
	},
	"app_crashes": {
		Steps: []string{
			"Force close and restart the app",
			"Check for app updates",
			"Restart your device",
			"Reinstall the app if necessary",
		},
		Escalation: "Provide crash logs to support team",
	},
	"payment_issues": {
		Steps: []string{
			"Verify payment method details",
			"Check account balance/credit limit",
			"Try different payment method",
			"Contact your bank if card is declined",
		},
		Escalation: "Contact billing support for further assistance",
	},
	"performance_issues": {
		Steps: []string{
			"Check your internet connection speed",
			"Update your browser to latest version",
			"Close unnecessary browser tabs",
			"Try a different browser",
		},
		Escalation: "Contact technical support if issues persist",
	},
	"api_errors": {
		Steps: []string{
			"Check API endpoint documentation",
			"Verify authentication credentials",
			"Check rate limiting status",
			"Review request payload format",
		},
		Escalation: "Contact API support team",
	},
}

// TechnicalResponder handles technical support queries: it retrieves FAQ
// documents, generates a solution, and appends a structured troubleshooting
// checklist when the issue matches a known category.
type TechnicalResponder struct {
	retriever model.Retriever
	generator model.Generator
	topK      int
}

func NewTechnicalResponder(retriever model.Retriever, generator model.Generator, topK int) *TechnicalResponder {
	return &TechnicalResponder{retriever: retriever, generator: generator, topK: topK}
}

func (t *TechnicalResponder) Name() string {
	return AgentTechnical
}

func (t *TechnicalResponder) Process(ctx context.Context, message string) (*Response, error) {
	start := time.Now()

	docs, err := t.retriever.Search(ctx, "technical issue "+message, t.topK)
	if err != nil {
		logx.Error().Err(err).Str("agent", t.Name()).Msg("troubleshooting retrieval failed")
		return fallback(t.Name(), technicalFallbackContent, 0.2, start), nil
	}

	issueType := identifyIssueType(message)
	docContext := t.buildContext(issueType, docs)

	systemPrompt, err := prompts.RenderTechnicalSystem(ctx, docContext)
	if err != nil {
		logx.Error().Err(err).Str("agent", t.Name()).Msg("technical prompt rendering failed")
		return fallback(t.Name(), technicalFallbackContent, 0.2, start), nil
	}

	content, err := t.generator.Generate(ctx, systemPrompt, message)
	if err != nil {
		logx.Error().Err(err).Str("agent", t.Name()).Msg("technical generation failed")
		return fallback(t.Name(), technicalFallbackContent, 0.2, start), nil
	}

	if solution, ok := troubleshootingDB[issueType]; ok {
		content = content + "\n\n" + structuredSolution(issueType, solution)
	}

	sources := make([]string, 0, len(docs)+1)
	for _, doc := range docs {
		sources = append(sources, doc.Source)
	}
	sources = append(sources, "troubleshooting_db")

	return &Response{
		AgentName:      t.Name(),
		Content:        content,
		Confidence:     t.Confidence(message),
		Sources:        sources,
		ProcessingTime: time.Since(start),
	}, nil
}

// Confidence scores technical keyword overlap with a +2 raw bonus when a
// high-signal diagnostic phrase is present.
func (t *TechnicalResponder) Confidence(message string) float64 {
	return keywordScore(message, technicalKeywords, technicalBonusPhrases, 2)
}

// identifyIssueType matches the message against the known issue categories in
// declaration order.
func identifyIssueType(message string) string {
	lower := strings.ToLower(message)
	for _, cat := range issueCategories {
		if containsAny(lower, cat.Keywords) {
			return cat.Name
		}
	}
	return generalTechnicalIssue
}

func (t *TechnicalResponder) buildContext(issueType string, docs []model.Document) string {
	var parts []string

	for _, doc := range docs {
		parts = append(parts, "Knowledge Base: "+doc.Content)
	}

	if solution, ok := troubleshootingDB[issueType]; ok {
		parts = append(parts, fmt.Sprintf("Standard Solution for %s: %s", issueType, strings.Join(solution.Steps, "; ")))
	}

	parts = append(parts, "Technical Support Guidelines:\n"+
		"- Always provide step-by-step solutions\n"+
		"- Include specific troubleshooting steps\n"+
		"- Mention when to escalate to human support\n"+
		"- Be clear about system requirements\n"+
		"- Provide alternative solutions when possible")

	return strings.Join(parts, "\n\n")
}

// structuredSolution renders the numbered checklist for a known category.
func structuredSolution(issueType string, solution troubleshootingSolution) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Troubleshooting steps for %s:\n", strings.ReplaceAll(issueType, "_", " ")))
	for i, step := range solution.Steps {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	b.WriteString("Escalation: " + solution.Escalation)
	return b.String()
}

var _ Responder = (*TechnicalResponder)(nil)
