package models

// ListeningSession is one observed interaction of a user with a mix.
// Sessions are append-only; only the like/save flags may be amended
// onto the most recent session for a (user, mix) pair.
type ListeningSession struct {
	UserID                string   `dynamodbav:"userId" json:"userId"`       // Partition key
	StartedAt             string   `dynamodbav:"startedAt" json:"startedAt"` // Sort key (RFC3339)
	SessionID             string   `dynamodbav:"sessionId" json:"sessionId"`
	MixID                 string   `dynamodbav:"mixId" json:"mixId"`
	ListenDurationSeconds int      `dynamodbav:"listenDurationSeconds" json:"listenDurationSeconds"`
	CompletionPercentage  float64  `dynamodbav:"completionPercentage" json:"completionPercentage"`
	WasSkipped            bool     `dynamodbav:"wasSkipped" json:"wasSkipped"`
	SkipTimeSeconds       *float64 `dynamodbav:"skipTimeSeconds,omitempty" json:"skipTimeSeconds,omitempty"`
	WasLiked              bool     `dynamodbav:"wasLiked" json:"wasLiked"`
	WasSaved              bool     `dynamodbav:"wasSaved" json:"wasSaved"`
	DeviceType            string   `dynamodbav:"deviceType,omitempty" json:"deviceType,omitempty"`
	City                  string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Country               string   `dynamodbav:"country,omitempty" json:"country,omitempty"`
}

// ListeningSessionsTable is the DynamoDB table name for listening sessions
const ListeningSessionsTable = "MixListeningSessions"

// EarlySkipThresholdSeconds marks a skip within the first seconds of
// playback as a strong negative preference signal
const EarlySkipThresholdSeconds = 10

// IsEarlySkip reports whether the session was abandoned within the
// early-skip window
func (s *ListeningSession) IsEarlySkip() bool {
	return s.WasSkipped && s.SkipTimeSeconds != nil && *s.SkipTimeSeconds < EarlySkipThresholdSeconds
}

// ListeningStats summarizes a user's listening history
type ListeningStats struct {
	TotalListens      int            `json:"totalListens"`
	AvgCompletionRate float64        `json:"avgCompletionRate"`
	AvgListenDuration float64        `json:"avgListenDuration"`
	SkipRate          float64        `json:"skipRate"`
	EarlySkipRate     float64        `json:"earlySkipRate"`
	TotalLikes        int            `json:"totalLikes"`
	TotalSaves        int            `json:"totalSaves"`
	GenresListened    map[string]int `json:"genresListened"`
}
