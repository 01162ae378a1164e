package services

import (
	"context"
	"testing"

	"rhood_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestComputeUserEmbeddingNoSessions(t *testing.T) {
	embedding := ComputeUserEmbedding("user-1", nil, nil)

	assert.Equal(t, "user-1", embedding.UserID)
	assert.Empty(t, embedding.GenreWeights)
	assert.Empty(t, embedding.SkipRateWeights)
	assert.Nil(t, embedding.PreferredBPMRange)
	assert.Zero(t, embedding.CompletionRate)
	assert.NotEmpty(t, embedding.LastCalculated)
}

func TestComputeUserEmbeddingGenreWeights(t *testing.T) {
	mixes := map[string]models.Mix{
		"mix-house":  {ID: "mix-house", Genre: "House", BPM: intPtr(124)},
		"mix-techno": {ID: "mix-techno", Genre: "Techno", BPM: intPtr(135)},
	}
	skipTime := 5.0
	sessions := []models.ListeningSession{
		{MixID: "mix-house", CompletionPercentage: 90, ListenDurationSeconds: 300},
		{MixID: "mix-house", CompletionPercentage: 70, ListenDurationSeconds: 200},
		{MixID: "mix-techno", CompletionPercentage: 20, ListenDurationSeconds: 30,
			WasSkipped: true, SkipTimeSeconds: &skipTime},
		{MixID: "mix-unknown", CompletionPercentage: 50, ListenDurationSeconds: 100},
	}

	embedding := ComputeUserEmbedding("user-1", sessions, mixes)

	// House: 2 of 4 listens, average completion 80%
	assert.InDelta(t, 0.5*0.8, embedding.GenreWeights["House"], 1e-9)
	// Techno: 1 of 4 listens, average completion 20%
	assert.InDelta(t, 0.25*0.2, embedding.GenreWeights["Techno"], 1e-9)

	// The techno session was skipped before 10 seconds
	assert.InDelta(t, 0.0, embedding.SkipRateWeights["House"], 1e-9)
	assert.InDelta(t, 1.0, embedding.SkipRateWeights["Techno"], 1e-9)

	// Only the 90% house session clears the BPM completion threshold
	require.Len(t, embedding.PreferredBPMRange, 2)
	assert.Equal(t, []int{124, 124}, embedding.PreferredBPMRange)

	assert.InDelta(t, 57.5, embedding.CompletionRate, 1e-9)
	assert.Equal(t, 158, embedding.AvgListenDuration)
}

func TestComputeUserEmbeddingBPMRangeSpansHighCompletionSessions(t *testing.T) {
	mixes := map[string]models.Mix{
		"a": {ID: "a", Genre: "House", BPM: intPtr(120)},
		"b": {ID: "b", Genre: "House", BPM: intPtr(128)},
		"c": {ID: "c", Genre: "House", BPM: intPtr(160)},
	}
	sessions := []models.ListeningSession{
		{MixID: "a", CompletionPercentage: 95},
		{MixID: "b", CompletionPercentage: 85},
		{MixID: "c", CompletionPercentage: 40}, // below threshold, excluded
	}

	embedding := ComputeUserEmbedding("user-1", sessions, mixes)
	assert.Equal(t, []int{120, 128}, embedding.PreferredBPMRange)
}

func TestComputeMixEmbeddingQualityScore(t *testing.T) {
	mix := models.Mix{
		ID:         "mix-1",
		Genre:      "House",
		LikesCount: 50,
		PlayCount:  500,
	}
	creator := &models.UserProfile{Credits: 500, GigsCompleted: 20}

	embedding := ComputeMixEmbedding(mix, creator)

	// 0.3*(500/1000) + 0.3*(20/100) + 0.2*(50/100) + 0.2*(500/1000)
	assert.InDelta(t, 0.41, embedding.DJQualityScore, 1e-9)
	assert.Equal(t, "House", embedding.GenreVector.Genre)
}

func TestComputeMixEmbeddingQualityScoreUnclamped(t *testing.T) {
	mix := models.Mix{ID: "mix-1", LikesCount: 5000, PlayCount: 50000}
	creator := &models.UserProfile{Credits: 100000, GigsCompleted: 2000}

	embedding := ComputeMixEmbedding(mix, creator)
	assert.Greater(t, embedding.DJQualityScore, 1.0)
}

func TestSimilarityScoreAllTermsActive(t *testing.T) {
	user := &models.UserEmbedding{
		GenreWeights:      map[string]float64{"House": 0.6},
		SkipRateWeights:   map[string]float64{"House": 0.1},
		PreferredBPMRange: []int{120, 128},
	}
	mix := &models.MixEmbedding{
		GenreVector:    models.GenreVector{Genre: "House"},
		BPM:            intPtr(124),
		DJQualityScore: 0.5,
	}

	assert.InDelta(t, 0.72, SimilarityScore(user, mix), 1e-9)
}

func TestSimilarityScoreBPMOutOfRange(t *testing.T) {
	user := &models.UserEmbedding{
		GenreWeights:      map[string]float64{"House": 0.6},
		SkipRateWeights:   map[string]float64{"House": 0.1},
		PreferredBPMRange: []int{120, 128},
	}
	mix := &models.MixEmbedding{
		GenreVector:    models.GenreVector{Genre: "House"},
		BPM:            intPtr(200),
		DJQualityScore: 0.5,
	}

	// (0.24 + 0.18 + 0.10) / 0.8
	assert.InDelta(t, 0.65, SimilarityScore(user, mix), 1e-9)
}

func TestSimilarityScoreQualityOnly(t *testing.T) {
	// A user with no history with the mix's genre is scored on
	// creator quality alone, normalized by the quality weight
	user := &models.UserEmbedding{
		GenreWeights:    map[string]float64{},
		SkipRateWeights: map[string]float64{},
	}
	mix := &models.MixEmbedding{
		GenreVector:    models.GenreVector{Genre: "Trance"},
		DJQualityScore: 0.5,
	}

	assert.InDelta(t, 0.5, SimilarityScore(user, mix), 1e-9)
}

func TestSimilarityScoreHighSkipRateDeactivatesTerm(t *testing.T) {
	user := &models.UserEmbedding{
		GenreWeights:    map[string]float64{"House": 0.6},
		SkipRateWeights: map[string]float64{"House": 0.5},
	}
	mix := &models.MixEmbedding{
		GenreVector:    models.GenreVector{Genre: "House"},
		DJQualityScore: 0.5,
	}

	// Genre and quality terms only: (0.24 + 0.10) / 0.6
	assert.InDelta(t, (0.24+0.10)/0.6, SimilarityScore(user, mix), 1e-9)
}

func TestSimilarityScoreNilInputs(t *testing.T) {
	assert.Zero(t, SimilarityScore(nil, &models.MixEmbedding{}))
	assert.Zero(t, SimilarityScore(&models.UserEmbedding{}, nil))
}

func TestRecencyBoost(t *testing.T) {
	assert.InDelta(t, 1.0, RecencyBoost(0), 1e-9)
	assert.InDelta(t, 0.5, RecencyBoost(15), 1e-9)
	assert.InDelta(t, 0.0, RecencyBoost(30), 1e-9)
	assert.InDelta(t, 0.0, RecencyBoost(400), 1e-9)

	// Monotonically non-increasing
	prev := RecencyBoost(0)
	for d := 1.0; d <= 60; d++ {
		cur := RecencyBoost(d)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestRecommendationWeightBlend(t *testing.T) {
	assert.InDelta(t, 0.72*0.8+1.0*0.2, RecommendationWeight(0.72, 0), 1e-9)
	assert.InDelta(t, 0.72*0.8, RecommendationWeight(0.72, 365), 1e-9)
}

func TestBuildUserEmbeddingPersists(t *testing.T) {
	fake := newFakeDynamo()
	behavior := &BehaviorService{Dynamo: fake}
	service := &EmbeddingService{Dynamo: fake, Behavior: behavior}

	fake.seed(models.UserProfilesTable, models.UserProfile{
		ID: "user-1", DJName: "DJ Test", City: "Berlin", Country: "Germany",
	})
	fake.seed(models.MixesTable, models.Mix{ID: "mix-1", Genre: "House", BPM: intPtr(124)})
	fake.seed(models.ListeningSessionsTable, models.ListeningSession{
		UserID: "user-1", StartedAt: "2026-08-01T10:00:00Z", SessionID: "s1",
		MixID: "mix-1", CompletionPercentage: 90, ListenDurationSeconds: 300,
	})

	embedding, err := service.BuildUserEmbedding(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", embedding.GeographicSignals.City)
	assert.Contains(t, embedding.GenreWeights, "House")

	stored, err := service.GetUserEmbedding(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, embedding.GenreWeights["House"], stored.GenreWeights["House"], 1e-9)
}

func TestGetMixEmbeddingBuildsOnDemand(t *testing.T) {
	fake := newFakeDynamo()
	service := &EmbeddingService{Dynamo: fake, Behavior: &BehaviorService{Dynamo: fake}}

	fake.seed(models.UserProfilesTable, models.UserProfile{ID: "creator-1", Credits: 1000})
	fake.seed(models.MixesTable, models.Mix{
		ID: "mix-1", UserID: "creator-1", Genre: "Techno", LikesCount: 10,
	})

	embedding, err := service.GetMixEmbedding(context.Background(), "mix-1")
	require.NoError(t, err)
	require.NotNil(t, embedding)
	assert.Equal(t, "Techno", embedding.GenreVector.Genre)
	assert.Equal(t, 1, fake.count(models.MixEmbeddingsTable))
}

func TestBatchCalculateSimilaritiesPreservesOrder(t *testing.T) {
	fake := newFakeDynamo()
	behavior := &BehaviorService{Dynamo: fake}
	service := &EmbeddingService{Dynamo: fake, Behavior: behavior}

	fake.seed(models.UserEmbeddingsTable, models.UserEmbedding{
		UserID:          "user-1",
		GenreWeights:    map[string]float64{"House": 0.6},
		SkipRateWeights: map[string]float64{"House": 0.1},
	})
	for _, id := range []string{"mix-a", "mix-b", "mix-c"} {
		fake.seed(models.MixesTable, models.Mix{ID: id, Genre: "House"})
	}

	mixIDs := []string{"mix-c", "mix-a", "mix-b"}
	results, err := service.BatchCalculateSimilarities(context.Background(), "user-1", mixIDs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, id := range mixIDs {
		assert.Equal(t, id, results[i].MixID)
	}
}
