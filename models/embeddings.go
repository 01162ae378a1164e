package models

// UserEmbedding is the derived listening profile for a user.
// "Embedding" here is a small structured feature aggregate, not a
// dense vector. Rows are recomputed wholesale and upserted by user id;
// genre weights are intentionally not normalized to sum to 1.
type UserEmbedding struct {
	UserID            string             `dynamodbav:"userId" json:"userId"`
	GenreWeights      map[string]float64 `dynamodbav:"genreWeights" json:"genreWeights"`
	SkipRateWeights   map[string]float64 `dynamodbav:"skipRateWeights" json:"skipRateWeights"`
	AvgListenDuration int                `dynamodbav:"avgListenDuration" json:"avgListenDuration"`
	CompletionRate    float64            `dynamodbav:"completionRate" json:"completionRate"`
	PreferredBPMRange []int              `dynamodbav:"preferredBpmRange,omitempty" json:"preferredBpmRange,omitempty"` // [min, max], nil when unknown
	GeographicSignals GeographicSignals  `dynamodbav:"geographicSignals" json:"geographicSignals"`
	LastCalculated    string             `dynamodbav:"lastCalculated" json:"lastCalculated"`
}

// GeographicSignals carries optional location context for an embedding
type GeographicSignals struct {
	City    string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Country string `dynamodbav:"country,omitempty" json:"country,omitempty"`
}

// UserEmbeddingsTable is the DynamoDB table name for user embeddings
const UserEmbeddingsTable = "UserEmbeddings"

// MixEmbedding is the derived feature row for a mix. The quality score
// is nominally in [0,1] but is deliberately unclamped: extreme creator
// credits or play counts push it above 1. That matches the scoring the
// rest of the pipeline was tuned against, so it is preserved here.
type MixEmbedding struct {
	MixID          string             `dynamodbav:"mixId" json:"mixId"`
	BPM            *int               `dynamodbav:"bpm,omitempty" json:"bpm,omitempty"`
	GenreVector    GenreVector        `dynamodbav:"genreVector" json:"genreVector"`
	MoodVector     []string           `dynamodbav:"moodVector,omitempty" json:"moodVector,omitempty"`
	AudioFeatures  map[string]float64 `dynamodbav:"audioFeatures,omitempty" json:"audioFeatures,omitempty"`
	DJQualityScore float64            `dynamodbav:"djQualityScore" json:"djQualityScore"`
	LastCalculated string             `dynamodbav:"lastCalculated" json:"lastCalculated"`
}

// GenreVector holds the genre classification of a mix
type GenreVector struct {
	Genre    string `dynamodbav:"genre,omitempty" json:"genre,omitempty"`
	SubGenre string `dynamodbav:"subGenre,omitempty" json:"subGenre,omitempty"`
}

// MixEmbeddingsTable is the DynamoDB table name for mix embeddings
const MixEmbeddingsTable = "MixEmbeddings"

// UserMixSimilarity caches a computed similarity between a user and a
// mix. Last write wins; callers needing freshness recompute instead of
// trusting LastCalculated.
type UserMixSimilarity struct {
	UserID               string  `dynamodbav:"userId" json:"userId"`
	MixID                string  `dynamodbav:"mixId" json:"mixId"`
	SimilarityScore      float64 `dynamodbav:"similarityScore" json:"similarityScore"`
	RecommendationWeight float64 `dynamodbav:"recommendationWeight" json:"recommendationWeight"`
	LastCalculated       string  `dynamodbav:"lastCalculated" json:"lastCalculated"`
}

// UserMixSimilarityTable is the DynamoDB table name for cached similarities
const UserMixSimilarityTable = "UserMixSimilarity"
