package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"rhood_server/models"
)

// AIMatchService re-ranks opportunities with an LLM. The rule-based
// scorer stays the source of truth for persisted matches; AI results
// are ephemeral and the pipeline always degrades to deterministic
// fallback scoring when the provider is missing, fails, or returns
// garbage.
type AIMatchService struct {
	Matches  *MatchService
	Provider CompletionProvider
}

const highConfidenceThreshold = 0.8

// Fallback scoring constants. Scores ascend in fetch order so earlier
// (sooner) opportunities rank lower only nominally; clients surface
// the fallback via match_type.
const (
	fallbackBaseScore = 50
	fallbackScoreStep = 5
)

// GenerateAIMatches runs the full AI matching pipeline for a user:
// gather profile, preferences, availability, and active opportunities;
// render the scenario prompt; call the provider; parse and validate
// the response. Any failure past the data-gathering stage degrades to
// fallback scoring instead of erroring.
func (as *AIMatchService) GenerateAIMatches(ctx context.Context, userID, scenario string, limit int) (*models.AIMatchResponse, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if limit <= 0 {
		limit = 10
	}

	profile, err := as.Matches.getUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user profile not found for userId: %s", userID)
	}

	preferences, err := as.Matches.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	availability, err := as.Matches.GetAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}
	opportunities, err := as.Matches.GetActiveOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	if len(opportunities) == 0 {
		return &models.AIMatchResponse{Matches: []models.AIMatch{}, Summary: &models.AIMatchSummary{}}, nil
	}

	if as.Provider == nil {
		log.Printf("⚠️ No AI provider configured, using algorithmic fallback for user %s", userID)
		return as.fallbackResponse(opportunities, limit), nil
	}

	prompt := buildMatchingPrompt(profile, preferences, availability, opportunities, scenario)
	raw, err := as.Provider.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		log.Printf("⚠️ AI provider failed for user %s, falling back: %v", userID, err)
		return as.fallbackResponse(opportunities, limit), nil
	}

	response, err := parseAIMatches(raw, opportunities)
	if err != nil {
		log.Printf("⚠️ Malformed AI response for user %s, falling back: %v", userID, err)
		return as.fallbackResponse(opportunities, limit), nil
	}

	attachOpportunities(response.Matches, opportunities)
	if len(response.Matches) > limit {
		response.Matches = response.Matches[:limit]
	}
	if response.Summary == nil {
		response.Summary = summarizeMatches(response.Matches, len(opportunities))
	}
	return response, nil
}

// GenerateInsights asks the LLM for career insights based on the
// user's profile, preferences, and performance history. Unlike match
// generation there is no deterministic fallback; provider failures
// surface as AIServiceError.
func (as *AIMatchService) GenerateInsights(ctx context.Context, userID string) (map[string]interface{}, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if as.Provider == nil {
		return nil, &AIServiceError{Err: fmt.Errorf("no AI provider configured")}
	}

	profile, err := as.Matches.getUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user profile not found for userId: %s", userID)
	}

	preferences, err := as.Matches.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	performances, err := as.Matches.GetPerformanceHistory(ctx, userID, 10)
	if err != nil {
		return nil, err
	}

	prompt := buildInsightsPrompt(profile, preferences, performances)
	raw, err := as.Provider.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		return nil, err
	}

	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, &MalformedAIResponseError{Reason: "no JSON object in insights response"}
	}
	var insights map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &insights); err != nil {
		return nil, &MalformedAIResponseError{Reason: "insights response is not valid JSON"}
	}
	return insights, nil
}

func (as *AIMatchService) fallbackResponse(opportunities []models.Opportunity, limit int) *models.AIMatchResponse {
	matches := fallbackAIMatches(opportunities)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return &models.AIMatchResponse{
		Matches: matches,
		Summary: &models.AIMatchSummary{
			TotalAnalyzed:      len(opportunities),
			RecommendedActions: []string{"Manual review recommended"},
		},
	}
}

// fallbackAIMatches produces deterministic fallback matches in the
// opportunities' fetch order
func fallbackAIMatches(opportunities []models.Opportunity) []models.AIMatch {
	matches := make([]models.AIMatch, len(opportunities))
	for i := range opportunities {
		matches[i] = models.AIMatch{
			OpportunityID:      opportunities[i].ID,
			CompatibilityScore: float64(fallbackBaseScore + i*fallbackScoreStep),
			Ranking:            i + 1,
			Reasoning:          "AI analysis unavailable - using algorithmic scoring",
			Strengths:          []string{"Algorithmic match"},
			Considerations:     []string{"Manual review recommended"},
			Confidence:         0.5,
			MatchType:          models.MatchTypeAlgorithmicFallback,
			Opportunity:        &opportunities[i],
		}
	}
	return matches
}

// parseAIMatches extracts the JSON payload from the model's raw output
// and validates it. A score outside [0,100], a confidence outside
// [0,1], or an unknown match type anywhere in the response makes the
// whole response malformed; entries naming opportunity ids that were
// never sent to the model are dropped individually, and a response
// with no surviving matches is malformed too.
func parseAIMatches(raw string, opportunities []models.Opportunity) (*models.AIMatchResponse, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, &MalformedAIResponseError{Reason: "no JSON object in response"}
	}

	var response models.AIMatchResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return nil, &MalformedAIResponseError{Reason: "response is not valid JSON"}
	}

	known := make(map[string]bool, len(opportunities))
	for _, opp := range opportunities {
		known[opp.ID] = true
	}

	valid := response.Matches[:0]
	for _, match := range response.Matches {
		if match.CompatibilityScore < 0 || match.CompatibilityScore > 100 {
			return nil, &MalformedAIResponseError{Reason: fmt.Sprintf("compatibility score %.1f out of range", match.CompatibilityScore)}
		}
		if match.Confidence < 0 || match.Confidence > 1 {
			return nil, &MalformedAIResponseError{Reason: fmt.Sprintf("confidence %.2f out of range", match.Confidence)}
		}
		if !models.ValidMatchType(match.MatchType) {
			return nil, &MalformedAIResponseError{Reason: fmt.Sprintf("unknown match type %q", match.MatchType)}
		}
		if !known[match.OpportunityID] {
			continue
		}
		valid = append(valid, match)
	}
	if len(valid) == 0 {
		return nil, &MalformedAIResponseError{Reason: "no valid matches in response"}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].CompatibilityScore != valid[j].CompatibilityScore {
			return valid[i].CompatibilityScore > valid[j].CompatibilityScore
		}
		return valid[i].Ranking < valid[j].Ranking
	})
	response.Matches = valid
	return &response, nil
}

// extractJSONObject returns the first balanced top-level JSON object
// in text, or "". Brace counting skips braces inside string literals
// so reasoning text containing "{" cannot break extraction.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func attachOpportunities(matches []models.AIMatch, opportunities []models.Opportunity) {
	byID := make(map[string]*models.Opportunity, len(opportunities))
	for i := range opportunities {
		byID[opportunities[i].ID] = &opportunities[i]
	}
	for i := range matches {
		matches[i].Opportunity = byID[matches[i].OpportunityID]
	}
}

func summarizeMatches(matches []models.AIMatch, totalAnalyzed int) *models.AIMatchSummary {
	summary := &models.AIMatchSummary{TotalAnalyzed: totalAnalyzed}
	for _, m := range matches {
		if m.Confidence >= highConfidenceThreshold {
			summary.HighConfidenceMatches++
		}
	}
	return summary
}

func buildMatchingPrompt(profile *models.UserProfile, preferences []models.DJPreference, availability []models.Availability, opportunities []models.Opportunity, scenario string) PromptTemplate {
	template := GetTemplate(scenario)
	return RenderTemplate(template, map[string]string{
		"dj_name":       orDefault(profile.DJName, "N/A"),
		"city":          orDefault(profile.City, "N/A"),
		"genres":        orDefault(strings.Join(profile.Genres, ", "), "Not specified"),
		"bio":           orDefault(profile.Bio, "No bio provided"),
		"skill_level":   orDefault(profile.SkillLevel, "Not specified"),
		"preferences":   formatPreferences(preferences),
		"availability":  formatAvailability(availability),
		"opportunities": formatOpportunities(opportunities) + "\n" + responseFormatInstructions,
		"weights":       "Default weights",
	})
}

// responseFormatInstructions pins the JSON contract the parser expects
const responseFormatInstructions = `## INSTRUCTIONS
1. Analyze each opportunity against the DJ's profile, preferences, and availability
2. Rank opportunities from best match to least suitable
3. Provide a compatibility score (0-100) for each match
4. Note any potential concerns or considerations for each match

Return your analysis in the following JSON format:
{
  "matches": [
    {
      "opportunity_id": "uuid",
      "compatibility_score": 85,
      "ranking": 1,
      "reasoning": "Detailed explanation of why this is a great match...",
      "strengths": ["Key strengths of this match"],
      "considerations": ["Any concerns or things to consider"],
      "confidence": 0.92,
      "match_type": "perfect_fit|good_fit|interesting_opportunity|stretch_goal"
    }
  ],
  "summary": {
    "total_analyzed": 10,
    "high_confidence_matches": 3,
    "recommended_actions": ["Action items for the DJ"],
    "market_insights": ["Industry insights based on the analysis"]
  }
}`

func buildInsightsPrompt(profile *models.UserProfile, preferences []models.DJPreference, performances []models.Performance) PromptTemplate {
	history := make([]string, 0, len(performances))
	for _, perf := range performances {
		feedback := perf.Feedback
		if feedback == "" {
			feedback = "No feedback"
		}
		history = append(history, fmt.Sprintf("- %s: %.1f/5 stars - %s", perf.PerformanceDate, perf.Rating, feedback))
	}
	historyText := strings.Join(history, "\n")
	if historyText == "" {
		historyText = "No performance history yet"
	}

	return RenderTemplate(GetTemplate(ScenarioCareerAnalysis), map[string]string{
		"dj_name":             orDefault(profile.DJName, "N/A"),
		"current_level":       orDefault(profile.SkillLevel, "Not specified"),
		"career_objectives":   orDefault(profile.Bio, "Not specified"),
		"market_positioning":  orDefault(strings.Join(profile.Genres, ", "), "Not specified"),
		"performance_history": historyText,
		"market_insights":     formatPreferences(preferences),
	})
}

func formatPreferences(preferences []models.DJPreference) string {
	if len(preferences) == 0 {
		return "No specific preferences set"
	}
	lines := make([]string, 0, len(preferences))
	for _, pref := range preferences {
		lines = append(lines, fmt.Sprintf("- **%s**: %s (importance: %.1f)",
			pref.PreferenceType, formatPreferenceValue(pref), pref.ImportanceScore))
	}
	return strings.Join(lines, "\n")
}

func formatPreferenceValue(pref models.DJPreference) string {
	v := pref.PreferenceValue
	switch pref.PreferenceType {
	case models.PreferenceTypeGenres:
		return strings.Join(v.Genres, ", ")
	case models.PreferenceTypeMinPayment:
		if v.MinPayment != nil {
			return fmt.Sprintf("$%.0f", *v.MinPayment)
		}
	case models.PreferenceTypeTravelRadius:
		if v.TravelRadiusKm != nil {
			return fmt.Sprintf("%.0f km", *v.TravelRadiusKm)
		}
	case models.PreferenceTypeVenueTypes:
		return strings.Join(v.VenueTypes, ", ")
	}
	if v.Text != "" {
		return v.Text
	}
	if v.Opaque != nil {
		if raw, err := json.Marshal(v.Opaque); err == nil {
			return string(raw)
		}
	}
	return "not set"
}

func formatAvailability(availability []models.Availability) string {
	if len(availability) == 0 {
		return "No availability information provided"
	}
	lines := make([]string, 0, len(availability))
	for _, a := range availability {
		status := "Unavailable"
		if a.IsAvailable {
			status = "Available"
		}
		line := fmt.Sprintf("- **%s to %s**: %s", formatPromptDate(a.DateFrom), formatPromptDate(a.DateTo), status)
		if a.Notes != "" {
			line += fmt.Sprintf(" (%s)", a.Notes)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// formatOpportunities renders opportunities in the order given. The
// fetch order must be preserved so rendered prompts are reproducible.
func formatOpportunities(opportunities []models.Opportunity) string {
	sections := make([]string, 0, len(opportunities))
	for i, opp := range opportunities {
		sections = append(sections, fmt.Sprintf(`**Opportunity %d: %s**
- **ID**: %s
- **Description**: %s
- **Date**: %s
- **Location**: %s
- **Genre**: %s
- **Skill Level**: %s
- **Payment**: $%.0f
- **Organizer**: %s
- **Requirements**: %s`,
			i+1, opp.Title, opp.ID, opp.Description, formatPromptDate(opp.EventDate),
			opp.Location, opp.Genre, opp.SkillLevel, opp.Payment, opp.OrganizerName,
			formatRequirements(opp.Requirements)))
	}
	return strings.Join(sections, "\n\n")
}

func formatRequirements(requirements []models.OpportunityRequirement) string {
	if len(requirements) == 0 {
		return "No specific requirements listed"
	}
	parts := make([]string, 0, len(requirements))
	for _, req := range requirements {
		parts = append(parts, fmt.Sprintf("%s: %s", req.RequirementType, req.RequirementValue))
	}
	return strings.Join(parts, ", ")
}

func formatPromptDate(value string) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02")
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
