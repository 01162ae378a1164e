package models

// Match is a scored (user, opportunity) pairing produced by the
// rule-based scorer. One row per pair; status is mutated by user
// action or the organizer approval workflow.
type Match struct {
	UserID        string   `dynamodbav:"userId" json:"userId"`               // Partition key
	OpportunityID string   `dynamodbav:"opportunityId" json:"opportunityId"` // Sort key
	MatchID       string   `dynamodbav:"matchId" json:"matchId"`
	MatchScore    float64  `dynamodbav:"matchScore" json:"matchScore"` // 0-100
	Status        string   `dynamodbav:"status" json:"status"`
	MatchReasons  []string `dynamodbav:"matchReasons,omitempty" json:"matchReasons,omitempty"`
	CreatedAt     string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Application records a user applying to an opportunity
type Application struct {
	UserID        string `dynamodbav:"userId" json:"userId"`               // Partition key
	OpportunityID string `dynamodbav:"opportunityId" json:"opportunityId"` // Sort key
	ApplicationID string `dynamodbav:"applicationId" json:"applicationId"`
	Status        string `dynamodbav:"status" json:"status"`
	Message       string `dynamodbav:"message,omitempty" json:"message,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
}

// ApplicationsTable is the DynamoDB table name for applications
const ApplicationsTable = "Applications"

// MatchFeedback is user feedback on a generated match
type MatchFeedback struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"` // Partition key
	UserID    string `dynamodbav:"userId" json:"userId"`   // Sort key
	Rating    int    `dynamodbav:"rating" json:"rating"`   // 1-5
	Comment   string `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchFeedbackTable is the DynamoDB table name for match feedback
const MatchFeedbackTable = "MatchFeedback"

// Performance is one entry in a DJ's performance history
type Performance struct {
	UserID          string  `dynamodbav:"userId" json:"userId"`                   // Partition key
	PerformanceDate string  `dynamodbav:"performanceDate" json:"performanceDate"` // Sort key (RFC3339)
	OpportunityID   string  `dynamodbav:"opportunityId,omitempty" json:"opportunityId,omitempty"`
	VenueName       string  `dynamodbav:"venueName,omitempty" json:"venueName,omitempty"`
	Rating          float64 `dynamodbav:"rating,omitempty" json:"rating,omitempty"` // 0-5
	Feedback        string  `dynamodbav:"feedback,omitempty" json:"feedback,omitempty"`
}

// PerformanceHistoryTable is the DynamoDB table name for performance history
const PerformanceHistoryTable = "DJPerformanceHistory"

// MatchmakingAnalytics aggregates a user's matchmaking activity
type MatchmakingAnalytics struct {
	TotalMatches             int     `json:"totalMatches"`
	AppliedMatches           int     `json:"appliedMatches"`
	PendingApplications      int     `json:"pendingApplications"`
	AcceptedApplications     int     `json:"acceptedApplications"`
	AverageMatchScore        float64 `json:"averageMatchScore"`
	RecentPerformances       int     `json:"recentPerformances"`
	AveragePerformanceRating float64 `json:"averagePerformanceRating"`
}
