package nodes

import "github.com/smart-support-core/server/internal/agent/agents"

// Fixed follow-up suggestions per responder. Unrecognized agents get the
// generic list so the suggestion field is never empty at the normal terminal.
var suggestionsByAgent = map[string][]string{
	agents.AgentProduct: {
		"Compare with other products",
		"Check current promotions",
		"View product reviews",
	},
	agents.AgentRefund: {
		"Check refund status",
		"Contact billing support",
		"View purchase history",
	},
	agents.AgentTechnical: {
		"Try advanced troubleshooting",
		"Contact technical support",
		"Check system status",
	},
}

var genericSuggestions = []string{
	"Ask another question",
	"Contact support",
}

// SuggestionsFor returns a fresh copy of the suggestion list for the agent.
func SuggestionsFor(agentName string) []string {
	if s, ok := suggestionsByAgent[agentName]; ok {
		return append([]string{}, s...)
	}
	return append([]string{}, genericSuggestions...)
}
