package models

// Known preference types. Unknown types are still accepted and carried
// through as opaque payloads.
const (
	PreferenceTypeGenres       = "genres"
	PreferenceTypeMinPayment   = "min_payment"
	PreferenceTypeTravelRadius = "travel_radius"
	PreferenceTypeVenueTypes   = "venue_types"
)

// PreferenceValue is a variant over the known preference kinds. At most
// one field is set for a known kind; forward-compatible payloads from
// newer clients land in Opaque instead of being rejected.
type PreferenceValue struct {
	Genres         []string               `dynamodbav:"genres,omitempty" json:"genres,omitempty"`
	MinPayment     *float64               `dynamodbav:"minPayment,omitempty" json:"minPayment,omitempty"`
	TravelRadiusKm *float64               `dynamodbav:"travelRadiusKm,omitempty" json:"travelRadiusKm,omitempty"`
	VenueTypes     []string               `dynamodbav:"venueTypes,omitempty" json:"venueTypes,omitempty"`
	Text           string                 `dynamodbav:"text,omitempty" json:"text,omitempty"`
	Opaque         map[string]interface{} `dynamodbav:"opaque,omitempty" json:"opaque,omitempty"`
}

// DJPreference is a typed preference record for a user. One row per
// preference type; updates replace the full set, never patch.
type DJPreference struct {
	UserID          string          `dynamodbav:"userId" json:"userId"`                 // Partition key
	PreferenceType  string          `dynamodbav:"preferenceType" json:"preferenceType"` // Sort key
	PreferenceValue PreferenceValue `dynamodbav:"preferenceValue" json:"preferenceValue"`
	ImportanceScore float64         `dynamodbav:"importanceScore" json:"importanceScore"`
}

// DJPreferencesTable is the DynamoDB table name for DJ preferences
const DJPreferencesTable = "DJPreferences"

// Availability is a per-user date range with an availability flag.
// Ranges are stored as given: no non-overlap or from<=to validation is
// enforced, matching how the booking flow has always treated them.
type Availability struct {
	UserID      string `dynamodbav:"userId" json:"userId"`     // Partition key
	DateFrom    string `dynamodbav:"dateFrom" json:"dateFrom"` // Sort key (RFC3339)
	DateTo      string `dynamodbav:"dateTo" json:"dateTo"`
	IsAvailable bool   `dynamodbav:"isAvailable" json:"isAvailable"`
	Notes       string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
}

// DJAvailabilityTable is the DynamoDB table name for availability ranges
const DJAvailabilityTable = "DJAvailability"
