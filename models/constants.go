package models

// ✅ Match statuses
const (
	MatchStatusPending  = "pending"
	MatchStatusApplied  = "applied"
	MatchStatusRejected = "rejected"
	MatchStatusAccepted = "accepted"
)

// ✅ Application statuses
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// ✅ Skill levels, in ascending order of experience
const (
	SkillLevelBeginner     = "beginner"
	SkillLevelIntermediate = "intermediate"
	SkillLevelAdvanced     = "advanced"
	SkillLevelProfessional = "professional"
)

// DailyApplicationLimit caps how many opportunities a user can apply
// to per UTC day
const DailyApplicationLimit = 5
