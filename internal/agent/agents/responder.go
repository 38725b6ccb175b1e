// Package agents implements the domain responders: product, refund and
// technical. Each runs a retrieve → augment → generate sub-pipeline against
// the retrieval and generation capabilities and never propagates a fault to
// its caller; failures degrade to a low-confidence apologetic response.
package agents

import (
	"context"
	"time"
)

// Responder names as they appear in replies and routing tables.
const (
	AgentProduct      = "ProductAgent"
	AgentRefund       = "RefundAgent"
	AgentTechnical    = "TechnicalAgent"
	AgentErrorHandler = "ErrorHandler"
)

// Response is the result of one responder invocation.
type Response struct {
	AgentName      string        `json:"agent_name"`
	Content        string        `json:"content"`
	Confidence     float64       `json:"confidence"`
	Sources        []string      `json:"sources"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Responder handles messages for one support domain.
//
// Process must not propagate sub-pipeline faults: implementations catch them
// and return a degraded low-confidence response instead. The error return
// exists so the workflow can still defend against a misbehaving
// implementation.
type Responder interface {
	Name() string
	Process(ctx context.Context, message string) (*Response, error)
	Confidence(message string) float64
}

// Registry resolves a routed agent name to its responder.
type Registry map[string]Responder

func NewRegistry(responders ...Responder) Registry {
	reg := make(Registry, len(responders))
	for _, r := range responders {
		reg[r.Name()] = r
	}
	return reg
}

// Lookup returns the responder for name, or false when the name is not
// configured. Routing treats a miss as an invariant violation.
func (r Registry) Lookup(name string) (Responder, bool) {
	resp, ok := r[name]
	return resp, ok
}

// fallback builds the degraded response every responder returns when its
// sub-pipeline faults.
func fallback(agentName, content string, confidence float64, start time.Time) *Response {
	return &Response{
		AgentName:      agentName,
		Content:        content,
		Confidence:     confidence,
		Sources:        []string{},
		ProcessingTime: time.Since(start),
	}
}
