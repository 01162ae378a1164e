package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"rhood_server/models"
	"rhood_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Rule-based match score weights, out of 100
const (
	genreFactorWeight        = 40.0
	skillFactorWeight        = 20.0
	availabilityFactorWeight = 15.0
	paymentFactorWeight      = 15.0
	locationFactorWeight     = 10.0
)

// MatchNotifier receives realtime match events. The socket layer
// implements it; a nil notifier disables broadcasting.
type MatchNotifier interface {
	MatchesGenerated(userID string, matches []models.Match)
	MatchStatusChanged(userID string, match models.Match)
}

// MatchService scores DJ-opportunity compatibility, manages match
// state, and handles applications
type MatchService struct {
	Dynamo DynamoAPI
	Events MatchNotifier
}

// MatchWithOpportunity is a match enriched with its opportunity
type MatchWithOpportunity struct {
	models.Match
	Opportunity *models.Opportunity `json:"opportunity,omitempty"`
}

// ScoreMatch computes the deterministic compatibility score between a
// DJ and an opportunity, 0-100, with human-readable reasons. Pure: no
// I/O, no hidden state, and total for well-formed input; unknown
// optional fields contribute a neutral half-credit rather than
// failing. Every reason refers to a factor that contributed to the
// score.
func ScoreMatch(profile *models.UserProfile, preferences []models.DJPreference, availability []models.Availability, opportunity *models.Opportunity) (float64, []string) {
	var score float64
	var reasons []string

	// Genre fit
	genres := preferredGenreSet(profile, preferences)
	switch {
	case opportunity.Genre == "" || len(genres) == 0:
		score += genreFactorWeight / 2
	case containsFold(genres, opportunity.Genre):
		score += genreFactorWeight
		reasons = append(reasons, fmt.Sprintf("Plays %s, the genre this event is booking for", opportunity.Genre))
	default:
		if similarity := genreSimilarity(opportunity.Genre, genres); similarity > 0 {
			score += similarity * genreFactorWeight
			reasons = append(reasons, fmt.Sprintf("%s is close to genres in their rotation", opportunity.Genre))
		}
	}

	// Skill level fit
	switch distance := skillDistance(profileSkill(profile), opportunity.SkillLevel); distance {
	case -1:
		score += skillFactorWeight / 2
	case 0:
		score += skillFactorWeight
		reasons = append(reasons, fmt.Sprintf("Skill level matches the %s slot", opportunity.SkillLevel))
	case 1:
		score += skillFactorWeight / 2
		reasons = append(reasons, "Skill level is one step from the listing, a workable stretch")
	}

	// Availability on the event date
	switch availabilityOnDate(availability, opportunity.EventDate) {
	case availabilityUnknown:
		score += availabilityFactorWeight / 2
	case availabilityOpen:
		score += availabilityFactorWeight
		reasons = append(reasons, "Marked available on the event date")
	case availabilityBlocked:
		// Explicitly unavailable: no credit
	}

	// Payment against the minimum preference
	if minPayment := minPaymentPreference(preferences); minPayment == nil {
		score += paymentFactorWeight / 2
	} else if opportunity.Payment >= *minPayment {
		score += paymentFactorWeight
		reasons = append(reasons, fmt.Sprintf("Pays $%.0f, at or above their minimum", opportunity.Payment))
	} else if *minPayment > 0 {
		partial := opportunity.Payment / *minPayment
		if partial > 0 {
			score += partial * paymentFactorWeight
		}
	}

	// Location fit
	switch {
	case profile == nil || profile.City == "" || opportunity.Location == "":
		score += locationFactorWeight / 2
	case strings.Contains(strings.ToLower(opportunity.Location), strings.ToLower(profile.City)):
		score += locationFactorWeight
		reasons = append(reasons, fmt.Sprintf("Event is local to %s", profile.City))
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

func preferredGenreSet(profile *models.UserProfile, preferences []models.DJPreference) []string {
	var genres []string
	if profile != nil {
		genres = append(genres, profile.Genres...)
	}
	for _, pref := range preferences {
		if pref.PreferenceType == models.PreferenceTypeGenres {
			genres = append(genres, pref.PreferenceValue.Genres...)
		}
	}
	return genres
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func profileSkill(profile *models.UserProfile) string {
	if profile == nil {
		return ""
	}
	return profile.SkillLevel
}

var skillOrder = []string{
	models.SkillLevelBeginner,
	models.SkillLevelIntermediate,
	models.SkillLevelAdvanced,
	models.SkillLevelProfessional,
}

// skillDistance returns the rank distance between two skill levels, or
// -1 when either is unknown
func skillDistance(a, b string) int {
	indexOf := func(level string) int {
		for i, l := range skillOrder {
			if strings.EqualFold(l, level) {
				return i
			}
		}
		return -1
	}
	ai, bi := indexOf(a), indexOf(b)
	if ai < 0 || bi < 0 {
		return -1
	}
	if ai > bi {
		return ai - bi
	}
	return bi - ai
}

type availabilityState int

const (
	availabilityUnknown availabilityState = iota
	availabilityOpen
	availabilityBlocked
)

func availabilityOnDate(availability []models.Availability, eventDate string) availabilityState {
	event, err := time.Parse(time.RFC3339, eventDate)
	if err != nil {
		return availabilityUnknown
	}

	state := availabilityUnknown
	for _, a := range availability {
		from, errFrom := time.Parse(time.RFC3339, a.DateFrom)
		to, errTo := time.Parse(time.RFC3339, a.DateTo)
		if errFrom != nil || errTo != nil {
			continue
		}
		if event.Before(from) || event.After(to) {
			continue
		}
		if a.IsAvailable {
			state = availabilityOpen
		} else {
			// An explicit block wins over an overlapping open range
			return availabilityBlocked
		}
	}
	return state
}

func minPaymentPreference(preferences []models.DJPreference) *float64 {
	for _, pref := range preferences {
		if pref.PreferenceType == models.PreferenceTypeMinPayment && pref.PreferenceValue.MinPayment != nil {
			return pref.PreferenceValue.MinPayment
		}
	}
	return nil
}

// GenerateMatches scores every active future opportunity for a user
// and upserts the resulting match rows, preserving any status a match
// already reached. Returns matches ordered by score descending.
func (ms *MatchService) GenerateMatches(ctx context.Context, userID string, limit int) ([]MatchWithOpportunity, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if limit <= 0 {
		limit = 20
	}

	profile, err := ms.getUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user profile not found for userId: %s", userID)
	}

	preferences, err := ms.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	availability, err := ms.GetAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}
	opportunities, err := ms.GetActiveOpportunities(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	results := make([]MatchWithOpportunity, 0, len(opportunities))
	for i := range opportunities {
		opp := opportunities[i]
		score, reasons := ScoreMatch(profile, preferences, availability, &opp)

		match := models.Match{
			UserID:        userID,
			OpportunityID: opp.ID,
			MatchID:       uuid.NewString(),
			MatchScore:    score,
			Status:        models.MatchStatusPending,
			MatchReasons:  reasons,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		// A re-run must not reset an applied or decided match
		if existing, err := ms.getMatch(ctx, userID, opp.ID); err == nil && existing != nil {
			match.MatchID = existing.MatchID
			match.Status = existing.Status
			match.CreatedAt = existing.CreatedAt
		}

		if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
			return nil, fmt.Errorf("failed to upsert match for opportunity %s: %w", opp.ID, err)
		}
		results = append(results, MatchWithOpportunity{Match: match, Opportunity: &opportunities[i]})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > limit {
		results = results[:limit]
	}

	if ms.Events != nil {
		matches := make([]models.Match, len(results))
		for i := range results {
			matches[i] = results[i].Match
		}
		ms.Events.MatchesGenerated(userID, matches)
	}

	return results, nil
}

// GetMatches returns a user's matches ordered by score descending,
// optionally filtered by status
func (ms *MatchService) GetMatches(ctx context.Context, userID, statusFilter string) ([]MatchWithOpportunity, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}

	items, err := ms.Dynamo.QueryItems(ctx, models.MatchesTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	results := make([]MatchWithOpportunity, 0, len(matches))
	for _, match := range matches {
		if statusFilter != "" && match.Status != statusFilter {
			continue
		}
		enriched := MatchWithOpportunity{Match: match}
		if opp, err := ms.getOpportunity(ctx, match.OpportunityID); err == nil {
			enriched.Opportunity = opp
		}
		results = append(results, enriched)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results, nil
}

// UpdateMatchStatus transitions a match to a new status
func (ms *MatchService) UpdateMatchStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
	if matchID == "" {
		return nil, &ValidationError{Field: "matchId"}
	}

	items, err := ms.Dynamo.ScanItems(ctx, models.MatchesTable, "matchId = :m",
		map[string]types.AttributeValue{":m": utils.StringAttr(matchID)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to look up match: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("match not found: %s", matchID)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	match.Status = status
	match.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	if ms.Events != nil {
		ms.Events.MatchStatusChanged(match.UserID, match)
	}
	return &match, nil
}

// ApplyToOpportunity runs the application gates in order: daily limit,
// duplicate application, uploaded-mix requirement. The application
// insert and the match status transition are committed in one
// transaction so neither can land without the other.
func (ms *MatchService) ApplyToOpportunity(ctx context.Context, userID, opportunityID, message string) (*models.Application, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if opportunityID == "" {
		return nil, &ValidationError{Field: "opportunityId"}
	}

	remaining, err := ms.remainingDailyApplications(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, &DailyLimitError{Remaining: 0}
	}

	existing, err := ms.Dynamo.GetItem(ctx, models.ApplicationsTable, map[string]types.AttributeValue{
		"userId":        utils.StringAttr(userID),
		"opportunityId": utils.StringAttr(opportunityID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		return nil, &AlreadyAppliedError{OpportunityID: opportunityID}
	}

	hasMix, err := ms.userHasMixes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasMix {
		return nil, ErrNoMixesUploaded
	}

	application := models.Application{
		UserID:        userID,
		OpportunityID: opportunityID,
		ApplicationID: uuid.NewString(),
		Status:        models.ApplicationStatusPending,
		Message:       message,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	applicationItem, err := attributevalue.MarshalMap(application)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application: %w", err)
	}

	writes := []types.TransactWriteItem{
		{Put: &types.Put{TableName: strPtr(models.ApplicationsTable), Item: applicationItem}},
	}

	var updatedMatch *models.Match
	if match, err := ms.getMatch(ctx, userID, opportunityID); err == nil && match != nil {
		match.Status = models.MatchStatusApplied
		match.UpdatedAt = application.CreatedAt
		matchItem, err := attributevalue.MarshalMap(*match)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal match: %w", err)
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{TableName: strPtr(models.MatchesTable), Item: matchItem},
		})
		updatedMatch = match
	}

	if err := ms.Dynamo.TransactWrite(ctx, writes); err != nil {
		return nil, err
	}

	if ms.Events != nil && updatedMatch != nil {
		ms.Events.MatchStatusChanged(userID, *updatedMatch)
	}

	log.Printf("✅ User %s applied to opportunity %s (%d applications left today)", userID, opportunityID, remaining-1)
	return &application, nil
}

// RemainingDailyApplications reports how many applications a user can
// still submit today (UTC day)
func (ms *MatchService) RemainingDailyApplications(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, &ValidationError{Field: "userId"}
	}
	return ms.remainingDailyApplications(ctx, userID)
}

func (ms *MatchService) remainingDailyApplications(ctx context.Context, userID string) (int, error) {
	items, err := ms.Dynamo.QueryItems(ctx, models.ApplicationsTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to count daily applications: %w", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	var usedToday int
	for _, item := range items {
		if strings.HasPrefix(utils.ExtractString(item, "createdAt"), today) {
			usedToday++
		}
	}

	remaining := models.DailyApplicationLimit - usedToday
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (ms *MatchService) userHasMixes(ctx context.Context, userID string) (bool, error) {
	items, err := ms.Dynamo.ScanItems(ctx, models.MixesTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check uploaded mixes: %w", err)
	}
	return len(items) > 0, nil
}

// GetActiveOpportunities lists active opportunities with a future
// event date, ordered by event date ascending. The AI pipeline depends
// on this ordering staying stable.
func (ms *MatchService) GetActiveOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	items, err := ms.Dynamo.ScanItems(ctx, models.OpportunitiesTable, "isActive = :a AND eventDate > :n",
		map[string]types.AttributeValue{
			":a": utils.BoolAttr(true),
			":n": utils.StringAttr(now),
		}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	var opportunities []models.Opportunity
	if err := attributevalue.UnmarshalListOfMaps(items, &opportunities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunities: %w", err)
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].EventDate < opportunities[j].EventDate
	})
	return opportunities, nil
}

// GetPreferences returns a user's preference records ordered by type
func (ms *MatchService) GetPreferences(ctx context.Context, userID string) ([]models.DJPreference, error) {
	items, err := ms.Dynamo.QueryItems(ctx, models.DJPreferencesTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}

	var preferences []models.DJPreference
	if err := attributevalue.UnmarshalListOfMaps(items, &preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	sort.SliceStable(preferences, func(i, j int) bool {
		return preferences[i].PreferenceType < preferences[j].PreferenceType
	})
	return preferences, nil
}

// SetPreferences replaces a user's full preference set. Full replace,
// never a partial patch.
func (ms *MatchService) SetPreferences(ctx context.Context, userID string, preferences []models.DJPreference) error {
	if userID == "" {
		return &ValidationError{Field: "userId"}
	}

	existing, err := ms.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	for _, pref := range existing {
		err := ms.Dynamo.DeleteItem(ctx, models.DJPreferencesTable, map[string]types.AttributeValue{
			"userId":         utils.StringAttr(userID),
			"preferenceType": utils.StringAttr(pref.PreferenceType),
		})
		if err != nil {
			return err
		}
	}

	for _, pref := range preferences {
		pref.UserID = userID
		if pref.ImportanceScore == 0 {
			pref.ImportanceScore = 1.0
		}
		if err := ms.Dynamo.PutItem(ctx, models.DJPreferencesTable, pref); err != nil {
			return fmt.Errorf("failed to store preference %s: %w", pref.PreferenceType, err)
		}
	}
	return nil
}

// SetAvailability stores one availability range. Ranges are stored as
// given; overlap and inverted ranges are not rejected.
func (ms *MatchService) SetAvailability(ctx context.Context, availability models.Availability) error {
	if availability.UserID == "" {
		return &ValidationError{Field: "userId"}
	}
	if availability.DateFrom == "" {
		return &ValidationError{Field: "dateFrom"}
	}
	return ms.Dynamo.PutItem(ctx, models.DJAvailabilityTable, availability)
}

// GetAvailability returns a user's availability ranges ordered by
// start date
func (ms *MatchService) GetAvailability(ctx context.Context, userID string) ([]models.Availability, error) {
	items, err := ms.Dynamo.QueryItems(ctx, models.DJAvailabilityTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	var availability []models.Availability
	if err := attributevalue.UnmarshalListOfMaps(items, &availability); err != nil {
		return nil, fmt.Errorf("failed to unmarshal availability: %w", err)
	}

	sort.SliceStable(availability, func(i, j int) bool {
		return availability[i].DateFrom < availability[j].DateFrom
	})
	return availability, nil
}

// AddPerformance appends an entry to a DJ's performance history
func (ms *MatchService) AddPerformance(ctx context.Context, performance models.Performance) error {
	if performance.UserID == "" {
		return &ValidationError{Field: "userId"}
	}
	if performance.PerformanceDate == "" {
		performance.PerformanceDate = time.Now().UTC().Format(time.RFC3339)
	}
	return ms.Dynamo.PutItem(ctx, models.PerformanceHistoryTable, performance)
}

// GetPerformanceHistory returns a DJ's performances, newest first
func (ms *MatchService) GetPerformanceHistory(ctx context.Context, userID string, limit int) ([]models.Performance, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := ms.Dynamo.QueryItems(ctx, models.PerformanceHistoryTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performance history: %w", err)
	}

	var performances []models.Performance
	if err := attributevalue.UnmarshalListOfMaps(items, &performances); err != nil {
		return nil, fmt.Errorf("failed to unmarshal performance history: %w", err)
	}

	sort.SliceStable(performances, func(i, j int) bool {
		return performances[i].PerformanceDate > performances[j].PerformanceDate
	})
	if len(performances) > limit {
		performances = performances[:limit]
	}
	return performances, nil
}

// SubmitFeedback records user feedback on a match
func (ms *MatchService) SubmitFeedback(ctx context.Context, feedback models.MatchFeedback) error {
	if feedback.MatchID == "" {
		return &ValidationError{Field: "matchId"}
	}
	if feedback.UserID == "" {
		return &ValidationError{Field: "userId"}
	}
	feedback.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return ms.Dynamo.PutItem(ctx, models.MatchFeedbackTable, feedback)
}

// GetAnalytics aggregates a user's matchmaking activity
func (ms *MatchService) GetAnalytics(ctx context.Context, userID string) (*models.MatchmakingAnalytics, error) {
	matches, err := ms.GetMatches(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	applicationItems, err := ms.Dynamo.QueryItems(ctx, models.ApplicationsTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	var applications []models.Application
	if err := attributevalue.UnmarshalListOfMaps(applicationItems, &applications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal applications: %w", err)
	}

	performances, err := ms.GetPerformanceHistory(ctx, userID, 10)
	if err != nil {
		return nil, err
	}

	analytics := &models.MatchmakingAnalytics{
		TotalMatches:       len(matches),
		RecentPerformances: len(performances),
	}

	var scoreSum float64
	for _, m := range matches {
		scoreSum += m.MatchScore
		if m.Status == models.MatchStatusApplied {
			analytics.AppliedMatches++
		}
	}
	if len(matches) > 0 {
		analytics.AverageMatchScore = scoreSum / float64(len(matches))
	}

	for _, a := range applications {
		switch a.Status {
		case models.ApplicationStatusPending:
			analytics.PendingApplications++
		case models.ApplicationStatusAccepted:
			analytics.AcceptedApplications++
		}
	}

	var ratingSum float64
	for _, p := range performances {
		ratingSum += p.Rating
	}
	if len(performances) > 0 {
		analytics.AveragePerformanceRating = ratingSum / float64(len(performances))
	}

	return analytics, nil
}

func (ms *MatchService) getMatch(ctx context.Context, userID, opportunityID string) (*models.Match, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, map[string]types.AttributeValue{
		"userId":        utils.StringAttr(userID),
		"opportunityId": utils.StringAttr(opportunityID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func (ms *MatchService) getOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.OpportunitiesTable, map[string]types.AttributeValue{
		"id": utils.StringAttr(opportunityID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var opportunity models.Opportunity
	if err := attributevalue.UnmarshalMap(item, &opportunity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunity: %w", err)
	}
	return &opportunity, nil
}

func (ms *MatchService) getUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
		"id": utils.StringAttr(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
	}
	return &profile, nil
}

func strPtr(s string) *string { return &s }
