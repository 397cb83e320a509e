package dto

import "ai-deepsearch-be/pkg/agent"

type DeepSearchRequest struct {
	Query string `json:"query"`
}

type DeepSearchResponse struct {
	UserQuery       string                 `json:"user_query"`
	RewrittenQuery  string                 `json:"rewritten_query"`
	RoutingDecision *agent.RoutingDecision `json:"routing_decision,omitempty"`
	FinalResults    []string               `json:"final_results"`
}

func ToDeepSearchResponse(result *agent.Result) *DeepSearchResponse {
	return &DeepSearchResponse{
		UserQuery:       result.UserQuery,
		RewrittenQuery:  result.RewrittenQuery,
		RoutingDecision: result.Routing,
		FinalResults:    result.FinalResults,
	}
}
