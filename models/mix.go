package models

// Mix represents an uploaded DJ mix
type Mix struct {
	ID              string             `dynamodbav:"id" json:"id"`
	UserID          string             `dynamodbav:"userId" json:"userId"` // Creator of the mix
	Title           string             `dynamodbav:"title" json:"title"`
	Artist          string             `dynamodbav:"artist,omitempty" json:"artist,omitempty"`
	Genre           string             `dynamodbav:"genre,omitempty" json:"genre,omitempty"`
	SubGenre        string             `dynamodbav:"subGenre,omitempty" json:"subGenre,omitempty"`
	BPM             *int               `dynamodbav:"bpm,omitempty" json:"bpm,omitempty"`
	DurationSeconds int                `dynamodbav:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	MoodTags        []string           `dynamodbav:"moodTags,omitempty" json:"moodTags,omitempty"`
	AudioFeatures   map[string]float64 `dynamodbav:"audioFeatures,omitempty" json:"audioFeatures,omitempty"`
	ImageURL        string             `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	LikesCount      int                `dynamodbav:"likesCount,omitempty" json:"likesCount,omitempty"`
	PlayCount       int                `dynamodbav:"playCount,omitempty" json:"playCount,omitempty"`
	CreatedAt       string             `dynamodbav:"createdAt" json:"createdAt"`
}

// MixesTable is the DynamoDB table name for mixes
const MixesTable = "Mixes"

// RecommendedMix is a mix with its recommendation score attached,
// as returned to the feed
type RecommendedMix struct {
	Mix
	RecommendationScore float64 `json:"recommendationScore"`
	SimilarityScore     float64 `json:"similarityScore,omitempty"`
}
