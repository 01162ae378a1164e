package models

// UserProfile defines the structure for DJ user profiles
type UserProfile struct {
	ID              string   `dynamodbav:"id" json:"id"`
	DJName          string   `dynamodbav:"djName,omitempty" json:"djName,omitempty"`
	FullName        string   `dynamodbav:"fullName,omitempty" json:"fullName,omitempty"`
	Email           string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Bio             string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	City            string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Country         string   `dynamodbav:"country,omitempty" json:"country,omitempty"`
	Genres          []string `dynamodbav:"genres,omitempty" json:"genres,omitempty"`
	SkillLevel      string   `dynamodbav:"skillLevel,omitempty" json:"skillLevel,omitempty"`
	Credits         int      `dynamodbav:"credits,omitempty" json:"credits,omitempty"`
	GigsCompleted   int      `dynamodbav:"gigsCompleted,omitempty" json:"gigsCompleted,omitempty"`
	ProfileImageURL string   `dynamodbav:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	CreatedAt       string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
