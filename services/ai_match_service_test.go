package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"rhood_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns a canned completion or error
type stubProvider struct {
	response string
	err      error

	lastSystem string
	lastUser   string
	calls      int
}

func (p *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p.calls++
	p.lastSystem = systemPrompt
	p.lastUser = userPrompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func newAIFixture(provider CompletionProvider) (*fakeDynamo, *AIMatchService) {
	fake := newFakeDynamo()
	matches := &MatchService{Dynamo: fake}
	return fake, &AIMatchService{Matches: matches, Provider: provider}
}

func seedAIUser(fake *fakeDynamo) {
	fake.seed(models.UserProfilesTable, models.UserProfile{
		ID: "user-1", DJName: "DJ Test", City: "Berlin",
		Genres: []string{"House"}, SkillLevel: models.SkillLevelIntermediate,
		Bio: "Underground house sets",
	})
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"surrounded by prose", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"nested objects", `{"a":{"b":{"c":1}},"d":2}`, `{"a":{"b":{"c":1}},"d":2}`},
		{"braces inside strings", `{"reasoning":"uses { and } freely"}`, `{"reasoning":"uses { and } freely"}`},
		{"escaped quotes", `{"r":"say \"hi\" {now}"}`, `{"r":"say \"hi\" {now}"}`},
		{"unbalanced", `{"a":1`, ""},
		{"no object", "nothing here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.text))
		})
	}
}

func aiResponseFor(matches []models.AIMatch) string {
	raw, _ := json.Marshal(models.AIMatchResponse{Matches: matches})
	return "Here is my analysis:\n" + string(raw)
}

func TestParseAIMatchesValid(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "opp-1"}, {ID: "opp-2"}}
	raw := aiResponseFor([]models.AIMatch{
		{OpportunityID: "opp-2", CompatibilityScore: 90, Ranking: 1,
			Confidence: 0.9, MatchType: models.MatchTypePerfectFit},
		{OpportunityID: "opp-1", CompatibilityScore: 60, Ranking: 2,
			Confidence: 0.7, MatchType: models.MatchTypeGoodFit},
	})

	response, err := parseAIMatches(raw, opportunities)
	require.NoError(t, err)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "opp-2", response.Matches[0].OpportunityID)
}

func TestParseAIMatchesOrdersByScoreDescending(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	// Model ranking disagrees with its own scores; score wins
	raw := aiResponseFor([]models.AIMatch{
		{OpportunityID: "c", CompatibilityScore: 95, Ranking: 3, Confidence: 0.5, MatchType: models.MatchTypeStretchGoal},
		{OpportunityID: "a", CompatibilityScore: 50, Ranking: 1, Confidence: 0.9, MatchType: models.MatchTypePerfectFit},
		{OpportunityID: "b", CompatibilityScore: 80, Ranking: 2, Confidence: 0.8, MatchType: models.MatchTypeGoodFit},
	})

	response, err := parseAIMatches(raw, opportunities)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, []string{
		response.Matches[0].OpportunityID, response.Matches[1].OpportunityID, response.Matches[2].OpportunityID,
	})
}

func TestParseAIMatchesTiedScoresKeepRankingOrder(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "a"}, {ID: "b"}}
	raw := aiResponseFor([]models.AIMatch{
		{OpportunityID: "b", CompatibilityScore: 80, Ranking: 2, Confidence: 0.8, MatchType: models.MatchTypeGoodFit},
		{OpportunityID: "a", CompatibilityScore: 80, Ranking: 1, Confidence: 0.8, MatchType: models.MatchTypeGoodFit},
	})

	response, err := parseAIMatches(raw, opportunities)
	require.NoError(t, err)
	assert.Equal(t, "a", response.Matches[0].OpportunityID)
}

func TestParseAIMatchesDropsUnknownOpportunities(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "opp-1"}}
	raw := aiResponseFor([]models.AIMatch{
		{OpportunityID: "opp-1", CompatibilityScore: 70, Ranking: 1,
			Confidence: 0.8, MatchType: models.MatchTypeGoodFit},
		{OpportunityID: "hallucinated", CompatibilityScore: 99, Ranking: 2,
			Confidence: 0.9, MatchType: models.MatchTypePerfectFit},
	})

	response, err := parseAIMatches(raw, opportunities)
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "opp-1", response.Matches[0].OpportunityID)
}

func TestParseAIMatchesMalformed(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "opp-1"}}

	for _, raw := range []string{
		"no json at all",
		`{"matches": "not an array"}`,
		aiResponseFor(nil),
		aiResponseFor([]models.AIMatch{{OpportunityID: "unknown", CompatibilityScore: 50,
			Confidence: 0.5, MatchType: models.MatchTypeGoodFit}}),
		aiResponseFor([]models.AIMatch{{OpportunityID: "opp-1", CompatibilityScore: 150,
			Confidence: 0.9, MatchType: models.MatchTypePerfectFit}}),
		aiResponseFor([]models.AIMatch{{OpportunityID: "opp-1", CompatibilityScore: 70,
			Confidence: 3.0, MatchType: models.MatchTypeGoodFit}}),
		aiResponseFor([]models.AIMatch{{OpportunityID: "opp-1", CompatibilityScore: 70,
			Confidence: 0.9, MatchType: "made_up_type"}}),
	} {
		_, err := parseAIMatches(raw, opportunities)
		var malformedErr *MalformedAIResponseError
		assert.ErrorAs(t, err, &malformedErr, "input: %s", raw)
	}
}

func TestFallbackAIMatchesShape(t *testing.T) {
	opportunities := []models.Opportunity{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	matches := fallbackAIMatches(opportunities)
	require.Len(t, matches, 3)

	for i, match := range matches {
		assert.Equal(t, opportunities[i].ID, match.OpportunityID)
		assert.InDelta(t, float64(50+i*5), match.CompatibilityScore, 1e-9)
		assert.Equal(t, i+1, match.Ranking)
		assert.Equal(t, "AI analysis unavailable - using algorithmic scoring", match.Reasoning)
		assert.Equal(t, []string{"Algorithmic match"}, match.Strengths)
		assert.Equal(t, []string{"Manual review recommended"}, match.Considerations)
		assert.InDelta(t, 0.5, match.Confidence, 1e-9)
		assert.Equal(t, models.MatchTypeAlgorithmicFallback, match.MatchType)
		require.NotNil(t, match.Opportunity)
	}
}

func TestGenerateAIMatchesHappyPath(t *testing.T) {
	provider := &stubProvider{}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	soon := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	later := time.Now().UTC().AddDate(0, 0, 9).Format(time.RFC3339)
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-soon", Title: "Club Night", EventDate: soon, IsActive: true, Genre: "House",
	})
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-later", Title: "Warehouse", EventDate: later, IsActive: true, Genre: "Techno",
	})

	provider.response = aiResponseFor([]models.AIMatch{
		{OpportunityID: "opp-later", CompatibilityScore: 92, Ranking: 1,
			Reasoning: "great fit", Confidence: 0.9, MatchType: models.MatchTypePerfectFit},
		{OpportunityID: "opp-soon", CompatibilityScore: 70, Ranking: 2,
			Reasoning: "decent", Confidence: 0.6, MatchType: models.MatchTypeGoodFit},
	})

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "opp-later", response.Matches[0].OpportunityID)
	require.NotNil(t, response.Matches[0].Opportunity)
	assert.Equal(t, "Warehouse", response.Matches[0].Opportunity.Title)

	require.NotNil(t, response.Summary)
	assert.Equal(t, 2, response.Summary.TotalAnalyzed)
	assert.Equal(t, 1, response.Summary.HighConfidenceMatches)

	// Opportunities are rendered in event-date order in the prompt
	assert.Less(t, strings.Index(provider.lastUser, "opp-soon"), strings.Index(provider.lastUser, "opp-later"))
	assert.Contains(t, provider.lastUser, "DJ Test")
	assert.Contains(t, provider.lastSystem, "booking agent")
}

func TestGenerateAIMatchesProviderFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: &AIServiceError{Err: fmt.Errorf("timeout")}}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	eventDate := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-1", EventDate: eventDate, IsActive: true,
	})

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, models.MatchTypeAlgorithmicFallback, response.Matches[0].MatchType)
	assert.InDelta(t, 50, response.Matches[0].CompatibilityScore, 1e-9)
}

func TestGenerateAIMatchesGarbageResponseFallsBack(t *testing.T) {
	provider := &stubProvider{response: "I cannot produce JSON today, sorry."}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	eventDate := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-1", EventDate: eventDate, IsActive: true,
	})

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, models.MatchTypeAlgorithmicFallback, response.Matches[0].MatchType)
}

func TestGenerateAIMatchesInvalidEntryFallsBack(t *testing.T) {
	provider := &stubProvider{}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	soon := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	later := time.Now().UTC().AddDate(0, 0, 9).Format(time.RFC3339)
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-1", EventDate: soon, IsActive: true,
	})
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-2", EventDate: later, IsActive: true,
	})

	// One entry breaks the contract; the valid one must not leak
	// through as a partial AI result
	provider.response = aiResponseFor([]models.AIMatch{
		{OpportunityID: "opp-1", CompatibilityScore: 80, Ranking: 1,
			Confidence: 0.9, MatchType: models.MatchTypeGoodFit},
		{OpportunityID: "opp-2", CompatibilityScore: 150, Ranking: 2,
			Confidence: 0.9, MatchType: models.MatchTypePerfectFit},
	})

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, response.Matches, 2)
	for i, match := range response.Matches {
		assert.Equal(t, models.MatchTypeAlgorithmicFallback, match.MatchType)
		assert.InDelta(t, float64(50+i*5), match.CompatibilityScore, 1e-9)
	}
}

func TestGenerateAIMatchesNilProviderFallsBack(t *testing.T) {
	fake, service := newAIFixture(nil)
	seedAIUser(fake)

	eventDate := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	fake.seed(models.OpportunitiesTable, models.Opportunity{
		ID: "opp-1", EventDate: eventDate, IsActive: true,
	})

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, models.MatchTypeAlgorithmicFallback, response.Matches[0].MatchType)
}

func TestGenerateAIMatchesNoOpportunities(t *testing.T) {
	provider := &stubProvider{}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	assert.Empty(t, response.Matches)
	assert.Zero(t, provider.calls)
}

func TestGenerateAIMatchesLimit(t *testing.T) {
	_, service := newAIFixture(nil)
	fake := service.Matches.Dynamo.(*fakeDynamo)
	seedAIUser(fake)

	for i := 0; i < 6; i++ {
		fake.seed(models.OpportunitiesTable, models.Opportunity{
			ID:        fmt.Sprintf("opp-%d", i),
			EventDate: time.Now().UTC().AddDate(0, 0, i+1).Format(time.RFC3339),
			IsActive:  true,
		})
	}

	response, err := service.GenerateAIMatches(context.Background(), "user-1", "", 3)
	require.NoError(t, err)
	assert.Len(t, response.Matches, 3)
}

func TestGenerateAIMatchesUnknownUser(t *testing.T) {
	_, service := newAIFixture(&stubProvider{})

	_, err := service.GenerateAIMatches(context.Background(), "ghost", "", 10)
	assert.Error(t, err)
}

func TestGenerateInsights(t *testing.T) {
	provider := &stubProvider{response: `Analysis: {"career_trajectory": "rising", "recommendations": ["play more festivals"]}`}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)
	fake.seed(models.PerformanceHistoryTable, models.Performance{
		UserID: "user-1", PerformanceDate: "2026-07-01T00:00:00Z", Rating: 4.5, Feedback: "crowd loved it",
	})

	insights, err := service.GenerateInsights(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "rising", insights["career_trajectory"])
	assert.Contains(t, provider.lastUser, "crowd loved it")
}

func TestGenerateInsightsMalformedResponse(t *testing.T) {
	provider := &stubProvider{response: "no structure here"}
	fake, service := newAIFixture(provider)
	seedAIUser(fake)

	_, err := service.GenerateInsights(context.Background(), "user-1")
	var malformedErr *MalformedAIResponseError
	assert.ErrorAs(t, err, &malformedErr)
}

func TestGenerateInsightsNoProvider(t *testing.T) {
	fake, service := newAIFixture(nil)
	seedAIUser(fake)

	_, err := service.GenerateInsights(context.Background(), "user-1")
	var aiErr *AIServiceError
	assert.ErrorAs(t, err, &aiErr)
}
