package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"rhood_server/models"
	"rhood_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Similarity term weights. The denominator is the sum of the weights
// of the terms that were actually active for a pair, not the fixed
// total, so a pair scored on quality alone still lands in [0,1].
const (
	genreTermWeight    = 0.4
	bpmTermWeight      = 0.2
	skipRateTermWeight = 0.2
	qualityTermWeight  = 0.2

	skipRateCutoff = 0.3

	// Recency decays linearly to zero over this many days
	recencyDecayDays = 30

	similarityShare = 0.8
	recencyShare    = 0.2
)

// Completion threshold for a session to count toward the preferred
// BPM range
const bpmCompletionThreshold = 80

// EmbeddingService derives user and mix feature profiles from
// listening history and scores user-mix similarity. Embeddings are
// recomputed wholesale and upserted; there is no incremental update
// path. Concurrent recomputes for the same user race benignly: the
// writes are idempotent given the same input sessions, and the cache
// row's lastCalculated reflects whichever writer finished last.
type EmbeddingService struct {
	Dynamo   DynamoAPI
	Behavior *BehaviorService
}

// ComputeUserEmbedding aggregates a user's sessions into an embedding.
// mixesByID resolves each session's mix for genre and BPM. Zero
// sessions produce an embedding with empty maps and no BPM range, not
// an error: downstream treats that as "no personalization".
func ComputeUserEmbedding(userID string, sessions []models.ListeningSession, mixesByID map[string]models.Mix) models.UserEmbedding {
	embedding := models.UserEmbedding{
		UserID:          userID,
		GenreWeights:    map[string]float64{},
		SkipRateWeights: map[string]float64{},
		LastCalculated:  time.Now().UTC().Format(time.RFC3339),
	}
	if len(sessions) == 0 {
		return embedding
	}

	genreCounts := map[string]int{}
	genreCompletions := map[string]float64{}
	genreEarlySkips := map[string]int{}

	var totalCompletion, totalDuration float64
	var bpmMin, bpmMax int
	haveBPM := false

	for i := range sessions {
		s := &sessions[i]
		totalCompletion += s.CompletionPercentage
		totalDuration += float64(s.ListenDurationSeconds)

		mix, ok := mixesByID[s.MixID]
		if !ok || mix.Genre == "" {
			continue
		}
		genreCounts[mix.Genre]++
		genreCompletions[mix.Genre] += s.CompletionPercentage
		if s.IsEarlySkip() {
			genreEarlySkips[mix.Genre]++
		}

		if s.CompletionPercentage >= bpmCompletionThreshold && mix.BPM != nil {
			if !haveBPM || *mix.BPM < bpmMin {
				bpmMin = *mix.BPM
			}
			if !haveBPM || *mix.BPM > bpmMax {
				bpmMax = *mix.BPM
			}
			haveBPM = true
		}
	}

	totalListens := len(sessions)
	for genre, count := range genreCounts {
		avgCompletion := genreCompletions[genre] / float64(count)
		// Exposure weighted by engagement; deliberately not a
		// probability distribution
		embedding.GenreWeights[genre] = (float64(count) / float64(totalListens)) * (avgCompletion / 100)
		embedding.SkipRateWeights[genre] = float64(genreEarlySkips[genre]) / float64(count)
	}

	embedding.AvgListenDuration = int(totalDuration/float64(totalListens) + 0.5)
	embedding.CompletionRate = totalCompletion / float64(totalListens)
	if haveBPM {
		embedding.PreferredBPMRange = []int{bpmMin, bpmMax}
	}

	return embedding
}

// ComputeMixEmbedding derives a mix's feature row from the mix and its
// creator's profile. The quality score is left unclamped: values above
// 1 are possible for creators with very high credits or play counts
// and are passed through as-is.
func ComputeMixEmbedding(mix models.Mix, creator *models.UserProfile) models.MixEmbedding {
	var credits, gigs int
	if creator != nil {
		credits = creator.Credits
		gigs = creator.GigsCompleted
	}

	qualityScore := (float64(credits)/1000)*0.3 +
		(float64(gigs)/100)*0.3 +
		(float64(mix.LikesCount)/100)*0.2 +
		(float64(mix.PlayCount)/1000)*0.2

	return models.MixEmbedding{
		MixID: mix.ID,
		BPM:   mix.BPM,
		GenreVector: models.GenreVector{
			Genre:    mix.Genre,
			SubGenre: mix.SubGenre,
		},
		MoodVector:     mix.MoodTags,
		AudioFeatures:  mix.AudioFeatures,
		DJQualityScore: qualityScore,
		LastCalculated: time.Now().UTC().Format(time.RFC3339),
	}
}

// SimilarityScore computes the weighted similarity between a user
// embedding and a mix embedding, normalized by the weight of the terms
// that were active. Returns 0 when nothing was active.
func SimilarityScore(user *models.UserEmbedding, mix *models.MixEmbedding) float64 {
	if user == nil || mix == nil {
		return 0
	}

	var score, totalWeight float64
	genre := mix.GenreVector.Genre

	// Genre term: active only for genres the user has history with
	if genre != "" {
		if weight, ok := user.GenreWeights[genre]; ok {
			score += weight * genreTermWeight
			totalWeight += genreTermWeight
		}
	}

	// BPM term: flat credit when the mix falls inside the preferred range
	if mix.BPM != nil && len(user.PreferredBPMRange) == 2 {
		if *mix.BPM >= user.PreferredBPMRange[0] && *mix.BPM <= user.PreferredBPMRange[1] {
			score += bpmTermWeight
			totalWeight += bpmTermWeight
		}
	}

	// Skip-rate term: active only when the user's early-skip rate for
	// the genre is known and low
	if genre != "" {
		if skipRate, ok := user.SkipRateWeights[genre]; ok && skipRate < skipRateCutoff {
			score += (1 - skipRate) * skipRateTermWeight
			totalWeight += skipRateTermWeight
		}
	}

	// Quality term: always active
	score += mix.DJQualityScore * qualityTermWeight
	totalWeight += qualityTermWeight

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

// RecencyBoost decays linearly from 1 at day zero to 0 at the decay
// horizon, clamped at 0 beyond it
func RecencyBoost(daysSinceCreation float64) float64 {
	boost := 1 - daysSinceCreation/recencyDecayDays
	if boost < 0 {
		return 0
	}
	return boost
}

// RecommendationWeight blends similarity with the recency boost
func RecommendationWeight(similarity, daysSinceCreation float64) float64 {
	return similarity*similarityShare + RecencyBoost(daysSinceCreation)*recencyShare
}

// BuildUserEmbedding recomputes and upserts the embedding for a user
func (es *EmbeddingService) BuildUserEmbedding(ctx context.Context, userID string) (*models.UserEmbedding, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}

	sessions, err := es.Behavior.getUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	mixesByID := map[string]models.Mix{}
	for i := range sessions {
		mixID := sessions[i].MixID
		if _, ok := mixesByID[mixID]; ok {
			continue
		}
		mix, err := es.getMix(ctx, mixID)
		if err != nil {
			return nil, err
		}
		if mix != nil {
			mixesByID[mixID] = *mix
		}
	}

	embedding := ComputeUserEmbedding(userID, sessions, mixesByID)

	// Location context comes from the profile, not the sessions
	if profile, err := es.getUserProfile(ctx, userID); err == nil && profile != nil {
		embedding.GeographicSignals = models.GeographicSignals{
			City:    profile.City,
			Country: profile.Country,
		}
	}

	if err := es.Dynamo.PutItem(ctx, models.UserEmbeddingsTable, embedding); err != nil {
		return nil, fmt.Errorf("failed to upsert user embedding: %w", err)
	}
	return &embedding, nil
}

// BuildMixEmbedding recomputes and upserts the embedding for a mix
func (es *EmbeddingService) BuildMixEmbedding(ctx context.Context, mixID string) (*models.MixEmbedding, error) {
	if mixID == "" {
		return nil, &ValidationError{Field: "mixId"}
	}

	mix, err := es.getMix(ctx, mixID)
	if err != nil {
		return nil, err
	}
	if mix == nil {
		return nil, fmt.Errorf("mix not found: %s", mixID)
	}

	creator, err := es.getUserProfile(ctx, mix.UserID)
	if err != nil {
		log.Printf("Could not load creator profile for mix %s: %v", mixID, err)
	}

	embedding := ComputeMixEmbedding(*mix, creator)
	if err := es.Dynamo.PutItem(ctx, models.MixEmbeddingsTable, embedding); err != nil {
		return nil, fmt.Errorf("failed to upsert mix embedding: %w", err)
	}
	return &embedding, nil
}

// CalculateSimilarity scores a (user, mix) pair and caches the result.
// The cache is last-write-wins with no TTL; callers wanting freshness
// re-invoke rather than trusting lastCalculated.
func (es *EmbeddingService) CalculateSimilarity(ctx context.Context, userID, mixID string) (float64, error) {
	userEmbedding, err := es.GetUserEmbedding(ctx, userID)
	if err != nil {
		return 0, err
	}
	mixEmbedding, err := es.GetMixEmbedding(ctx, mixID)
	if err != nil {
		return 0, err
	}
	if userEmbedding == nil || mixEmbedding == nil {
		return 0, nil
	}

	similarity := SimilarityScore(userEmbedding, mixEmbedding)

	daysSinceCreation := 365.0
	if mix, err := es.getMix(ctx, mixID); err == nil && mix != nil {
		if createdAt, err := time.Parse(time.RFC3339, mix.CreatedAt); err == nil {
			daysSinceCreation = time.Since(createdAt).Hours() / 24
		}
	}

	weight := RecommendationWeight(similarity, daysSinceCreation)

	cached := models.UserMixSimilarity{
		UserID:               userID,
		MixID:                mixID,
		SimilarityScore:      similarity,
		RecommendationWeight: weight,
		LastCalculated:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := es.Dynamo.PutItem(ctx, models.UserMixSimilarityTable, cached); err != nil {
		log.Printf("Failed to cache similarity for %s/%s: %v", userID, mixID, err)
	}

	return weight, nil
}

// MixSimilarity pairs a mix id with its recommendation weight
type MixSimilarity struct {
	MixID      string  `json:"mixId"`
	Similarity float64 `json:"similarity"`
}

// BatchCalculateSimilarities scores a user against a set of mixes
// concurrently. The computations share no mutable state; output order
// follows the input mix id order.
func (es *EmbeddingService) BatchCalculateSimilarities(ctx context.Context, userID string, mixIDs []string) ([]MixSimilarity, error) {
	results := make([]MixSimilarity, len(mixIDs))
	var wg sync.WaitGroup

	for i, mixID := range mixIDs {
		wg.Add(1)
		go func(i int, mixID string) {
			defer wg.Done()
			similarity, err := es.CalculateSimilarity(ctx, userID, mixID)
			if err != nil {
				log.Printf("Similarity calculation failed for %s/%s: %v", userID, mixID, err)
				similarity = 0
			}
			results[i] = MixSimilarity{MixID: mixID, Similarity: similarity}
		}(i, mixID)
	}
	wg.Wait()

	return results, nil
}

// GetUserEmbedding loads the cached embedding for a user, or nil when
// none has been computed
func (es *EmbeddingService) GetUserEmbedding(ctx context.Context, userID string) (*models.UserEmbedding, error) {
	item, err := es.Dynamo.GetItem(ctx, models.UserEmbeddingsTable, map[string]types.AttributeValue{
		"userId": utils.StringAttr(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user embedding: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var embedding models.UserEmbedding
	if err := attributevalue.UnmarshalMap(item, &embedding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user embedding: %w", err)
	}
	return &embedding, nil
}

// GetMixEmbedding loads the cached embedding for a mix, building it on
// demand when absent
func (es *EmbeddingService) GetMixEmbedding(ctx context.Context, mixID string) (*models.MixEmbedding, error) {
	item, err := es.Dynamo.GetItem(ctx, models.MixEmbeddingsTable, map[string]types.AttributeValue{
		"mixId": utils.StringAttr(mixID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mix embedding: %w", err)
	}
	if item == nil {
		return es.BuildMixEmbedding(ctx, mixID)
	}

	var embedding models.MixEmbedding
	if err := attributevalue.UnmarshalMap(item, &embedding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mix embedding: %w", err)
	}
	return &embedding, nil
}

func (es *EmbeddingService) getMix(ctx context.Context, mixID string) (*models.Mix, error) {
	item, err := es.Dynamo.GetItem(ctx, models.MixesTable, map[string]types.AttributeValue{
		"id": utils.StringAttr(mixID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mix: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var mix models.Mix
	if err := attributevalue.UnmarshalMap(item, &mix); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mix: %w", err)
	}
	return &mix, nil
}

func (es *EmbeddingService) getUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := es.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
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
