package models

// AI match types. algorithmic_fallback marks matches produced by the
// deterministic fallback when the AI path failed.
const (
	MatchTypePerfectFit             = "perfect_fit"
	MatchTypeGoodFit                = "good_fit"
	MatchTypeInterestingOpportunity = "interesting_opportunity"
	MatchTypeStretchGoal            = "stretch_goal"
	MatchTypeAlgorithmicFallback    = "algorithmic_fallback"
)

// ValidMatchType reports whether t is one of the enumerated match types
func ValidMatchType(t string) bool {
	switch t {
	case MatchTypePerfectFit, MatchTypeGoodFit, MatchTypeInterestingOpportunity,
		MatchTypeStretchGoal, MatchTypeAlgorithmicFallback:
		return true
	}
	return false
}

// AIMatch is one LLM-ranked match. Ephemeral: never persisted, only
// returned to the caller. Field names follow the JSON contract the
// model is prompted to produce.
type AIMatch struct {
	OpportunityID      string       `json:"opportunity_id"`
	CompatibilityScore float64      `json:"compatibility_score"` // 0-100
	Ranking            int          `json:"ranking"`             // 1-based
	Reasoning          string       `json:"reasoning"`
	Strengths          []string     `json:"strengths,omitempty"`
	Considerations     []string     `json:"considerations,omitempty"`
	Confidence         float64      `json:"confidence"` // 0-1
	MatchType          string       `json:"match_type"`
	Opportunity        *Opportunity `json:"opportunity,omitempty"`
}

// AIMatchSummary is the trailing summary block of an AI response
type AIMatchSummary struct {
	TotalAnalyzed         int      `json:"total_analyzed"`
	HighConfidenceMatches int      `json:"high_confidence_matches"`
	RecommendedActions    []string `json:"recommended_actions,omitempty"`
	MarketInsights        []string `json:"market_insights,omitempty"`
}

// AIMatchResponse is the full JSON contract expected from the model
type AIMatchResponse struct {
	Matches []AIMatch       `json:"matches"`
	Summary *AIMatchSummary `json:"summary,omitempty"`
}
