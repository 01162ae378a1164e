package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"rhood_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// RecommendationService ranks mixes for a user's feed. Personalized
// ranking uses the embedding similarity pipeline; users without
// embeddings fall back to simple behavior scoring, and users without
// any history get pure recency ordering.
type RecommendationService struct {
	Dynamo     DynamoAPI
	Embeddings *EmbeddingService
	Behavior   *BehaviorService
}

// GetRecommendations returns mixes ordered strictly descending by
// recommendation weight, ties broken by creation time (newest first).
// Mixes the user has liked are excluded unless includePlayed is set.
func (rs *RecommendationService) GetRecommendations(ctx context.Context, userID string, limit int, includePlayed bool) ([]models.RecommendedMix, error) {
	if limit <= 0 {
		limit = 10
	}

	mixes, err := rs.getAllMixes(ctx)
	if err != nil {
		return nil, err
	}

	// Anonymous feed: newest first
	if userID == "" {
		return recentMixes(mixes, limit), nil
	}

	sessions, err := rs.Behavior.getUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked := map[string]bool{}
	for i := range sessions {
		if sessions[i].WasLiked {
			liked[sessions[i].MixID] = true
		}
	}

	userEmbedding, err := rs.Embeddings.GetUserEmbedding(ctx, userID)
	if err != nil {
		return nil, err
	}

	var scored []models.RecommendedMix
	switch {
	case userEmbedding != nil && len(userEmbedding.GenreWeights) > 0:
		scored = rs.scoreByEmbedding(ctx, userEmbedding, mixes)
	case len(liked) > 0:
		// No embedding yet, but enough like history for the simple scorer
		behavior := behaviorFromSessions(sessions, rs.mixGenres(ctx, sessions))
		scored = scoreMixesSimple(mixes, behavior, liked)
	default:
		// Cold start: no personalization signal at all
		return recentMixes(mixes, limit), nil
	}

	if !includePlayed {
		filtered := scored[:0]
		for _, m := range scored {
			if !liked[m.ID] {
				filtered = append(filtered, m)
			}
		}
		scored = filtered
	}

	sortRecommendations(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (rs *RecommendationService) scoreByEmbedding(ctx context.Context, userEmbedding *models.UserEmbedding, mixes []models.Mix) []models.RecommendedMix {
	scored := make([]models.RecommendedMix, 0, len(mixes))
	now := time.Now()

	for _, mix := range mixes {
		mixEmbedding, err := rs.Embeddings.GetMixEmbedding(ctx, mix.ID)
		if err != nil || mixEmbedding == nil {
			log.Printf("No embedding for mix %s, skipping: %v", mix.ID, err)
			continue
		}

		similarity := SimilarityScore(userEmbedding, mixEmbedding)

		daysSinceCreation := 365.0
		if createdAt, err := time.Parse(time.RFC3339, mix.CreatedAt); err == nil {
			daysSinceCreation = now.Sub(createdAt).Hours() / 24
		}

		scored = append(scored, models.RecommendedMix{
			Mix:                 mix,
			RecommendationScore: RecommendationWeight(similarity, daysSinceCreation),
			SimilarityScore:     similarity,
		})
	}
	return scored
}

// userBehavior summarizes like history for the simple scorer
type userBehavior struct {
	PreferredGenres   []string
	GenreDistribution map[string]int
	LikedArtists      map[string]bool
}

func behaviorFromSessions(sessions []models.ListeningSession, genresByMix map[string]string) userBehavior {
	counts := map[string]int{}
	for i := range sessions {
		if !sessions[i].WasLiked {
			continue
		}
		if genre := genresByMix[sessions[i].MixID]; genre != "" {
			counts[genre]++
		}
	}

	type genreCount struct {
		genre string
		count int
	}
	ordered := make([]genreCount, 0, len(counts))
	for g, c := range counts {
		ordered = append(ordered, genreCount{g, c})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].genre < ordered[j].genre
	})

	preferred := make([]string, 0, 3)
	for _, gc := range ordered {
		preferred = append(preferred, gc.genre)
		if len(preferred) == 3 {
			break
		}
	}

	return userBehavior{PreferredGenres: preferred, GenreDistribution: counts}
}

// scoreMixesSimple is the behavior-based fallback scorer used before a
// user has an embedding: genre match 40, artist familiarity 30 (small
// boost for new artists), popularity 20, recency 10
func scoreMixesSimple(mixes []models.Mix, behavior userBehavior, liked map[string]bool) []models.RecommendedMix {
	likedArtists := map[string]bool{}
	for _, mix := range mixes {
		if liked[mix.ID] && mix.UserID != "" {
			likedArtists[mix.UserID] = true
		}
	}

	now := time.Now()
	scored := make([]models.RecommendedMix, 0, len(mixes))
	for _, mix := range mixes {
		var score float64

		// Genre matching (40% weight)
		if mix.Genre != "" && len(behavior.PreferredGenres) > 0 {
			matched := false
			for _, g := range behavior.PreferredGenres {
				if strings.EqualFold(g, mix.Genre) {
					matched = true
					break
				}
			}
			if matched {
				score += 40
			} else {
				score += genreSimilarity(mix.Genre, behavior.PreferredGenres) * 40
			}
		}

		// Artist familiarity (30% weight), slight boost for new artists
		if likedArtists[mix.UserID] {
			score += 30
		} else {
			score += 10
		}

		// Popularity (20% weight), like count capped
		popularity := float64(mix.LikesCount) / 10
		if popularity > 1 {
			popularity = 1
		}
		score += popularity * 20

		// Recency (10% weight), 30-day decay
		if createdAt, err := time.Parse(time.RFC3339, mix.CreatedAt); err == nil {
			days := now.Sub(createdAt).Hours() / 24
			recency := 10 - (days/30)*10
			if recency > 0 {
				score += recency
			}
		}

		scored = append(scored, models.RecommendedMix{Mix: mix, RecommendationScore: score})
	}
	return scored
}

// genreKeywords groups related genre terms for partial matching
var genreKeywords = map[string][]string{
	"house":       {"house", "deep house", "tech house", "progressive house"},
	"techno":      {"techno", "tech", "industrial"},
	"trance":      {"trance", "progressive", "uplifting"},
	"drum & bass": {"drum", "bass", "dnb", "jungle"},
	"afro house":  {"afro", "house", "tribal"},
}

func genreSimilarity(genre string, preferredGenres []string) float64 {
	genreLower := strings.ToLower(genre)
	var maxSimilarity float64

	for _, preferred := range preferredGenres {
		prefLower := strings.ToLower(preferred)
		keywords, ok := genreKeywords[prefLower]
		if !ok {
			keywords = []string{prefLower}
		}
		for _, keyword := range keywords {
			if strings.Contains(genreLower, keyword) || strings.Contains(keyword, genreLower) {
				if maxSimilarity < 0.7 {
					maxSimilarity = 0.7
				}
			}
		}
	}
	return maxSimilarity
}

// sortRecommendations orders by weight descending, ties broken by
// creation time descending for determinism
func sortRecommendations(mixes []models.RecommendedMix) {
	sort.SliceStable(mixes, func(i, j int) bool {
		if mixes[i].RecommendationScore != mixes[j].RecommendationScore {
			return mixes[i].RecommendationScore > mixes[j].RecommendationScore
		}
		return mixes[i].CreatedAt > mixes[j].CreatedAt
	})
}

func recentMixes(mixes []models.Mix, limit int) []models.RecommendedMix {
	ordered := make([]models.RecommendedMix, 0, len(mixes))
	for _, mix := range mixes {
		ordered = append(ordered, models.RecommendedMix{Mix: mix})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt > ordered[j].CreatedAt
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

func (rs *RecommendationService) mixGenres(ctx context.Context, sessions []models.ListeningSession) map[string]string {
	genres := map[string]string{}
	for i := range sessions {
		mixID := sessions[i].MixID
		if _, ok := genres[mixID]; ok {
			continue
		}
		mix, err := rs.Embeddings.getMix(ctx, mixID)
		if err != nil || mix == nil {
			continue
		}
		genres[mixID] = mix.Genre
	}
	return genres
}

func (rs *RecommendationService) getAllMixes(ctx context.Context) ([]models.Mix, error) {
	items, err := rs.Dynamo.ScanItems(ctx, models.MixesTable, "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mixes: %w", err)
	}

	var mixes []models.Mix
	if err := attributevalue.UnmarshalListOfMaps(items, &mixes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mixes: %w", err)
	}
	return mixes, nil
}
