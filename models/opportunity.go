package models

// Opportunity is a bookable DJ gig listing. The authoritative store is
// managed by the organizer flow; this service only reads.
type Opportunity struct {
	ID            string                   `dynamodbav:"id" json:"id"`
	Title         string                   `dynamodbav:"title" json:"title"`
	Description   string                   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	EventDate     string                   `dynamodbav:"eventDate" json:"eventDate"` // RFC3339
	Location      string                   `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Genre         string                   `dynamodbav:"genre,omitempty" json:"genre,omitempty"`
	SkillLevel    string                   `dynamodbav:"skillLevel,omitempty" json:"skillLevel,omitempty"`
	Payment       float64                  `dynamodbav:"payment,omitempty" json:"payment,omitempty"`
	OrganizerName string                   `dynamodbav:"organizerName,omitempty" json:"organizerName,omitempty"`
	Requirements  []OpportunityRequirement `dynamodbav:"requirements,omitempty" json:"requirements,omitempty"`
	IsActive      bool                     `dynamodbav:"isActive" json:"isActive"`
	CreatedAt     string                   `dynamodbav:"createdAt" json:"createdAt"`
}

// OpportunityRequirement is a typed requirement attached to a listing
type OpportunityRequirement struct {
	RequirementType  string `dynamodbav:"requirementType" json:"requirementType"`
	RequirementValue string `dynamodbav:"requirementValue" json:"requirementValue"`
}

// OpportunitiesTable is the DynamoDB table name for opportunities
const OpportunitiesTable = "Opportunities"
